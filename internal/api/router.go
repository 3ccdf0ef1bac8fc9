package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flexliner/subtitles/internal/services"
	"github.com/flexliner/subtitles/internal/storage"
)

// Options tunes the HTTP API.
type Options struct {
	// MaxUploadSize caps POST /api/upload file sizes in bytes. Zero disables the cap.
	MaxUploadSize int64
	// PublicDir is served as static files at the root when non-empty.
	PublicDir string
}

// Handler serves the subtitle HTTP API.
type Handler struct {
	service       services.SubtitleService
	maxUploadSize int64
}

// NewRouter builds the gin engine with logging, recovery and error reporting.
func NewRouter(service services.SubtitleService, opts Options) *gin.Engine {
	h := &Handler{service: service, maxUploadSize: opts.MaxUploadSize}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), ErrorReporter())

	router.GET("/healthz", h.health)

	api := router.Group("/api")
	{
		api.GET("/subtitles", h.renderSubtitles)
		api.GET("/subtitles/raw", h.rawSubtitles)
		api.GET("/subtitles/cues", h.subtitleCues)
		api.POST("/subtitles", h.saveSubtitles)

		api.POST("/upload", h.upload)

		api.GET("/tracks/:owner", h.listTracks)
		api.PUT("/tracks/:owner", h.replaceTracks)
		api.PUT("/tracks/:owner/:index/subtitles", h.saveTrackSubtitles)
	}

	if opts.PublicDir != "" {
		router.NoRoute(staticFiles(opts.PublicDir))
	}

	return router
}

// staticFiles serves the public directory with a Content-Type derived from
// the file extension only, so uploaded bytes are never sniffed as markup.
func staticFiles(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Type", storage.ServeContentType(c.Request.URL.Path))
		files.ServeHTTP(c.Writer, c.Request)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
