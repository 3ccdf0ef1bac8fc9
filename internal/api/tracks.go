package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flexliner/subtitles/internal/models"
)

// listTracks returns the subtitle tracks of a content item or episode.
// GET /api/tracks/:owner
func (h *Handler) listTracks(c *gin.Context) {
	list, err := h.service.Tracks(c.Request.Context(), c.Param("owner"))
	if err != nil {
		abortWithError(c, err, "Failed to load tracks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracks": list})
}

// replaceTracks stores the complete track list of an owner.
// PUT /api/tracks/:owner
func (h *Handler) replaceTracks(c *gin.Context) {
	var req struct {
		Tracks []models.Track `json:"tracks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Expected a JSON body with tracks"})
		return
	}

	list, err := h.service.ReplaceTracks(c.Request.Context(), c.Param("owner"), req.Tracks)
	if err != nil {
		abortWithError(c, err, "Failed to save tracks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracks": list})
}

// saveTrackSubtitles saves edited subtitles and points the track at them.
// PUT /api/tracks/:owner/:index/subtitles
func (h *Handler) saveTrackSubtitles(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": invalidBodyMsg})
		return
	}
	doc, ok := req.document()
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": invalidBodyMsg})
		return
	}

	track, err := h.service.SaveTrack(c.Request.Context(), c.Param("owner"), index, doc)
	if err != nil {
		abortWithError(c, err, saveFailedMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"track": track})
}
