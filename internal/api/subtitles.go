package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexliner/subtitles/internal/client"
	"github.com/flexliner/subtitles/internal/subtitle"
)

const (
	vttContentType  = "text/vtt; charset=utf-8"
	vttCacheControl = "public, max-age=3600"
	loadFailedMsg   = "Failed to load subtitles"
	saveFailedMsg   = "Failed to save subtitles"
	missingURLMsg   = "Missing url"
	invalidURLMsg   = "Invalid url"
	invalidBodyMsg  = "Expected a JSON body with text or cues"
)

// saveRequest carries either raw text or a cue list. Cues win when both are set.
type saveRequest struct {
	Text *string        `json:"text"`
	Cues []subtitle.Cue `json:"cues"`
}

func (r saveRequest) document() (subtitle.Document, bool) {
	switch {
	case r.Cues != nil:
		return subtitle.CueList(r.Cues), true
	case r.Text != nil:
		return subtitle.RawText(*r.Text), true
	default:
		return nil, false
	}
}

// sourceParam reads and validates the url query parameter.
func sourceParam(c *gin.Context) (string, bool) {
	src := c.Query("url")
	if src == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": missingURLMsg})
		return "", false
	}
	if _, err := client.ClassifySource(src); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": invalidURLMsg})
		return "", false
	}
	return src, true
}

// renderSubtitles serves a subtitle source as WebVTT for the player.
// GET /api/subtitles?url=
func (h *Handler) renderSubtitles(c *gin.Context) {
	src, ok := sourceParam(c)
	if !ok {
		return
	}

	vtt, err := h.service.Render(c.Request.Context(), src)
	if err != nil {
		abortWithError(c, err, loadFailedMsg)
		return
	}

	c.Header("Cache-Control", vttCacheControl)
	c.Data(http.StatusOK, vttContentType, []byte(vtt))
}

// rawSubtitles serves the WebVTT text without RTL markers for raw editing.
// GET /api/subtitles/raw?url=
func (h *Handler) rawSubtitles(c *gin.Context) {
	src, ok := sourceParam(c)
	if !ok {
		return
	}

	raw, err := h.service.LoadRaw(c.Request.Context(), src)
	if err != nil {
		abortWithError(c, err, loadFailedMsg)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, vttContentType, []byte(raw))
}

// subtitleCues returns the cues of a subtitle source for the timing editor.
// GET /api/subtitles/cues?url=
func (h *Handler) subtitleCues(c *gin.Context) {
	src, ok := sourceParam(c)
	if !ok {
		return
	}

	cues, err := h.service.LoadCues(c.Request.Context(), src)
	if err != nil {
		abortWithError(c, err, loadFailedMsg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cues": cues})
}

// saveSubtitles stores edited subtitles as a new WebVTT file.
// POST /api/subtitles
func (h *Handler) saveSubtitles(c *gin.Context) {
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

	url, err := h.service.Save(c.Request.Context(), doc)
	if err != nil {
		abortWithError(c, err, saveFailedMsg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
