package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/config"
	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/store"
)

// Handler is the API handler set.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	downloads *downloadStore
}

// NewHandler creates the API handler set.
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// System status
	router.GET("/status", h.GetStatus)

	// Billing period / tariff settings
	router.GET("/settings", h.GetSettings)
	router.PATCH("/settings", h.UpdateSettings)

	// Summary generation (multipart upload, SSE progress)
	router.POST("/generate", h.Generate)

	// Run history
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)

	// Export downloads
	router.GET("/download/:token", h.Download)
}
