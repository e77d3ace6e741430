package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Komsan-Kongsuwan/transport-summary-billing/internal/importer"
)

const downloadTTL = 30 * time.Minute

// Generate runs the summary pipeline for an uploaded workbook and streams
// progress as SSE. The final event carries the totals and download tokens.
// POST /api/generate
func (h *Handler) Generate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	uploadedFile := files[0]

	year, _ := strconv.Atoi(c.DefaultPostForm("year", "0"))
	month, _ := strconv.Atoi(c.DefaultPostForm("month", "0"))
	if month < 0 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}

	// Unique temp name; concurrent uploads of the same file must not clash.
	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("billing_upload_%s_%s", uuid.New().String(), uploadedFile.Filename))
	if err := c.SaveUploadedFile(uploadedFile, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempPath)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	coordinator := importer.NewCoordinator(h.store, h.cfg)
	progress := coordinator.Run(importer.RunOptions{
		FilePath: tempPath,
		Filename: uploadedFile.Filename,
		Year:     year,
		Month:    month,
	})

	for event := range progress {
		// Attach download tokens to the final event so the client never
		// sees server paths.
		if event.Type == "done" {
			if result, ok := event.Data.(importer.RunResult); ok {
				event.Data = downloadableResult{
					RunResult: result,
					XLSXToken: h.downloads.put(result.XLSXPath, filepath.Base(result.XLSXPath), downloadTTL),
					CSVToken:  h.downloads.put(result.CSVPath, filepath.Base(result.CSVPath), downloadTTL),
				}
			}
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

type downloadableResult struct {
	importer.RunResult
	XLSXPath  string `json:"-"`
	CSVPath   string `json:"-"`
	XLSXToken string `json:"xlsxToken"`
	CSVToken  string `json:"csvToken"`
}
