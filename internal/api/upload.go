package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexliner/subtitles/internal/storage"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

// upload stores a poster, video or subtitle file.
// POST /api/upload (multipart field "file")
func (h *Handler) upload(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": h.tooLargeMessage()})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if h.maxUploadSize > 0 && fh.Size > h.maxUploadSize {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": h.tooLargeMessage()})
		return
	}

	contentType := storage.ContentTypeFor(fh.Filename, fh.Header.Get("Content-Type"))
	if !storage.IsAllowedContentType(contentType) || !storage.IsAllowedExtension(fh.Filename) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
		return
	}

	file, err := fh.Open()
	if err != nil {
		abortWithError(c, fmt.Errorf("open upload: %w", err), "Failed to upload file")
		return
	}
	defer file.Close()

	url, err := h.service.Upload(c.Request.Context(), fh.Filename, file, fh.Size, contentType)
	if err != nil {
		abortWithError(c, err, "Failed to upload file")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) tooLargeMessage() string {
	return fmt.Sprintf("File too large (maximum %d bytes)", h.maxUploadSize)
}
