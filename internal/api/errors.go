package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexliner/subtitles/internal/apperrors"
)

// abortWithError maps err to a status code and a client-facing message.
// Anything unexpected is answered with fallback and attached to the context
// for logging and error reporting.
func abortWithError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, &apperrors.ErrSubtitleResourceNotFound{}):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Subtitles not found"})
	case errors.Is(err, &apperrors.ErrNotFound{}):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Track not found"})
	case errors.Is(err, &apperrors.ErrInvalidSource{}):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid url"})
	case errors.Is(err, &apperrors.ErrEmptySubtitle{}):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Subtitle content is empty"})
	case errors.Is(err, &apperrors.ErrInvalidTrack{}):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
