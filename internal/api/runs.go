package api

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns returns the run history, newest first.
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun returns one run with fresh download tokens for its files.
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.store.GetRun(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"run": run}
	if run.Status == "done" {
		resp["xlsxToken"] = h.downloads.put(run.XLSXPath, filepath.Base(run.XLSXPath), downloadTTL)
		resp["csvToken"] = h.downloads.put(run.CSVPath, filepath.Base(run.CSVPath), downloadTTL)
	}
	c.JSON(http.StatusOK, resp)
}
