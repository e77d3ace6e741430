package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/store"
)

// SettingsResponse carries the billing period and tariff values.
type SettingsResponse struct {
	BillingYear       int     `json:"billingYear"`
	BillingMonth      int     `json:"billingMonth"`
	AllowanceKg       float64 `json:"allowanceKg"`
	FuelSurchargeRate float64 `json:"fuelSurchargeRate"`
}

// GetSettings returns the current settings. Persisted tariff overrides
// win over the config defaults.
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	year, month, err := h.store.GetBillingPeriod()
	if err != nil {
		year, month = h.cfg.Business.DefaultYear, h.cfg.Business.DefaultMonth
	}

	allowance := h.cfg.Business.AllowanceKg
	if v, err := h.store.GetSettingFloat(store.SettingAllowanceKg); err == nil {
		allowance = v
	}
	fscRate := h.cfg.Business.FuelSurchargeRate
	if v, err := h.store.GetSettingFloat(store.SettingFuelSurchargeRate); err == nil {
		fscRate = v
	}

	c.JSON(http.StatusOK, SettingsResponse{
		BillingYear:       year,
		BillingMonth:      month,
		AllowanceKg:       allowance,
		FuelSurchargeRate: fscRate,
	})
}

// UpdateSettingsRequest is a partial settings update.
type UpdateSettingsRequest struct {
	BillingYear       *int     `json:"billingYear"`
	BillingMonth      *int     `json:"billingMonth"`
	AllowanceKg       *float64 `json:"allowanceKg"`
	FuelSurchargeRate *float64 `json:"fuelSurchargeRate"`
}

// UpdateSettings updates the billing period and tariff overrides.
// PATCH /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.BillingYear != nil || req.BillingMonth != nil {
		year, month, err := h.store.GetBillingPeriod()
		if err != nil {
			year, month = h.cfg.Business.DefaultYear, h.cfg.Business.DefaultMonth
		}
		if req.BillingYear != nil {
			year = *req.BillingYear
		}
		if req.BillingMonth != nil {
			month = *req.BillingMonth
		}
		if month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
			return
		}
		if err := h.store.SetBillingPeriod(year, month); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.AllowanceKg != nil {
		if *req.AllowanceKg < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "allowanceKg must not be negative"})
			return
		}
		if err := h.store.SetSettingFloat(store.SettingAllowanceKg, *req.AllowanceKg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.FuelSurchargeRate != nil {
		if *req.FuelSurchargeRate < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fuelSurchargeRate must not be negative"})
			return
		}
		if err := h.store.SetSettingFloat(store.SettingFuelSurchargeRate, *req.FuelSurchargeRate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	h.GetSettings(c)
}
