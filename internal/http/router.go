package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/singhankit6748/Water-Tracker/internal/core"
	"github.com/singhankit6748/Water-Tracker/internal/http/middleware"
	"github.com/singhankit6748/Water-Tracker/internal/rate"
)

type Options struct {
	Logger      *zap.Logger
	RateLimiter *rate.Limiter // used for POST endpoints only
	DailyGoalML float64       // default goal for /progress
	CORSOrigins []string
}

// NewRouter sets up all routes and middleware.
func NewRouter(svc *core.Service, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	// Treat all upstreams as untrusted (removes the warning).
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("SetTrustedProxies", zap.Error(err))
	}

	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.CORSOrigins))

	h := NewHandlers(svc, log, opts.DailyGoalML)

	// Health
	r.GET("/health", h.Health)

	// Tracker page (inline HTML)
	RegisterStatic(r)

	limited := middleware.RateLimit(opts.RateLimiter)
	r.POST("/log_intake", limited, h.LogIntake)
	r.POST("/analyze", limited, h.Analyze)

	r.GET("/history/:user_id", h.History)
	r.GET("/history/:user_id/export.csv", h.ExportCSV)
	r.GET("/progress/:user_id", h.Progress)

	return r
}
