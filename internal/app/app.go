package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/singhankit6748/Water-Tracker/internal/config"
	"github.com/singhankit6748/Water-Tracker/internal/core"
	"github.com/singhankit6748/Water-Tracker/internal/feedback"
	httpapi "github.com/singhankit6748/Water-Tracker/internal/http"
	"github.com/singhankit6748/Water-Tracker/internal/rate"
	"github.com/singhankit6748/Water-Tracker/internal/store/sqlite"
)

const shutdownTimeout = 30 * time.Second

// App wires config, storage, feedback, core service, rate limiter, and the HTTP router.
type App struct {
	Cfg     config.Config
	Log     *zap.Logger
	Store   *sqlite.Store
	Service *core.Service
	Limiter *rate.Limiter
	Router  *gin.Engine
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	feedback core.Feedback
	clock    func() time.Time
}

// WithFeedback overrides the feedback client built from config.
func WithFeedback(f core.Feedback) Option {
	return func(o *options) { o.feedback = f }
}

// WithClock sets the clock used by the store and service.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// New builds a fully-wired application instance. The schema is created or
// upgraded here, once, before any request is served.
func New(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithLogger(log), sqlite.WithClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	fb := o.feedback
	if fb == nil {
		client, err := feedback.New(feedback.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.GroqModel,
		})
		switch {
		case errors.Is(err, feedback.ErrMissingAPIKey):
			log.Warn("AI feedback disabled", zap.Error(err))
		case err != nil:
			_ = store.Close()
			return nil, err
		default:
			fb = client
		}
	}
	svc := core.NewService(store, fb).WithClock(o.clock)

	// In-memory rate limiter for POST endpoints
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(svc, httpapi.Options{
		Logger:      log,
		RateLimiter: limiter,
		DailyGoalML: float64(cfg.DailyGoalML),
		CORSOrigins: cfg.CORSOrigins,
	})

	return &App{
		Cfg:     cfg,
		Log:     log,
		Store:   store,
		Service: svc,
		Limiter: limiter,
		Router:  router,
	}, nil
}

// Addr returns the HTTP listen address, e.g. ":8080".
func (a *App) Addr() string {
	return fmt.Sprintf(":%d", a.Cfg.Port)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// Close releases resources.
func (a *App) Close() error {
	return a.Store.Close()
}
