// Package httpapi exposes the recording pipeline over HTTP.
package httpapi

import (
	"time"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"echoscore/pkg/resilience"
)

// RouterConfig carries the HTTP-level limits for the router.
type RouterConfig struct {
	MaxUploadBytes int64
	RatePerMinute  int
}

// NewRouter builds the gin engine with CORS open to any origin: the survey
// page that records and uploads audio is hosted cross-origin.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsConfig))

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	upload := r.Group("/")
	upload.Use(BodyLimit(cfg.MaxUploadBytes))
	if cfg.RatePerMinute > 0 {
		limiter := resilience.NewRateLimiter(cfg.RatePerMinute, time.Minute)
		upload.Use(RateLimit(limiter))
	}
	upload.POST("/upload-audio", h.UploadAudio)

	return r
}
