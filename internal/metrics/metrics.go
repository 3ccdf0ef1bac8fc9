package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Subtitle pipeline metrics
var (
	// SubtitleFetchesTotal counts source fetches by origin (remote, local,
	// cache) and outcome (success, not_found, error).
	SubtitleFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_fetches_total",
			Help: "Total number of subtitle source fetches.",
		},
		[]string{"source", "status"},
	)

	// SubtitleDecodesTotal counts decoded buffers by winning encoding.
	SubtitleDecodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_decodes_total",
			Help: "Total number of subtitle buffers decoded, by detected encoding.",
		},
		[]string{"encoding"},
	)

	SubtitleRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_renders_total",
			Help: "Total number of subtitle renders, by source format and status.",
		},
		[]string{"format", "status"},
	)

	SubtitleUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_uploads_total",
			Help: "Total number of subtitle and media uploads.",
		},
		[]string{"status"},
	)
)

// Label values shared by the counters above.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

func init() {
	prometheus.MustRegister(
		SubtitleFetchesTotal,
		SubtitleDecodesTotal,
		SubtitleRendersTotal,
		SubtitleUploadsTotal,
	)
}
