package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system status payload.
type StatusResponse struct {
	Initialized  bool `json:"initialized"` // at least one run recorded
	BillingYear  int  `json:"billingYear"`
	BillingMonth int  `json:"billingMonth"`
	RunCount     int  `json:"runCount"`
}

// GetStatus returns the system status.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	runCount, err := h.store.CountRuns()
	if err != nil {
		runCount = 0
	}

	year, month, err := h.store.GetBillingPeriod()
	if err != nil {
		year, month = h.cfg.Business.DefaultYear, h.cfg.Business.DefaultMonth
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  runCount > 0,
		BillingYear:  year,
		BillingMonth: month,
		RunCount:     runCount,
	})
}
