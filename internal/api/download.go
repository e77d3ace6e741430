package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Download streams a generated file by token.
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or unknown"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file no longer available"})
		return
	}

	c.FileAttachment(item.filePath, item.filename)
}
