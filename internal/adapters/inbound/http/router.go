package http

import (
	"fmt"
	"net/http"

	"github.com/architeacher/gadgets/internal/adapters/inbound/http/handlers"
	"github.com/architeacher/gadgets/internal/adapters/inbound/http/middleware"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/throttled/throttled/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type RouterConfig struct {
	App              *usecases.WebApplication
	Logger           logger.Logger
	MetricsClient    metrics.Client
	TracerProvider   otelTrace.TracerProvider
	Config           *config.ServiceConfig
	OpenAPI          *openapi3.T
	IdempotencyStore ports.IdempotencyStore
	RateLimitStore   throttled.GCRAStoreCtx
}

func NewRouter(cfg RouterConfig) (http.Handler, error) {
	router := chi.NewRouter()

	// Core middlewares - always applied
	router.Use(middleware.RequestID())
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(chimiddleware.Timeout(cfg.Config.HTTPServer.RequestTimeout))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Config.HTTPServer.AllowedOrigins))

	if cfg.Config.Telemetry.Traces.Enabled && cfg.TracerProvider != nil {
		router.Use(otelhttp.NewMiddleware(cfg.Config.App.ServiceName, otelhttp.WithTracerProvider(cfg.TracerProvider)))
		cfg.Logger.Info().Msg("distributed tracing enabled")
	}

	if cfg.Config.Telemetry.Metrics.Enabled && cfg.MetricsClient != nil {
		router.Use(middleware.Metrics(cfg.MetricsClient))
		cfg.Logger.Info().Msg("HTTP metrics collection enabled")
	}

	if cfg.Config.Logging.AccessLog.Enabled {
		router.Use(middleware.AccessLogger(cfg.Logger, cfg.Config.Logging.AccessLog))
		cfg.Logger.Info().
			Bool("log_health_checks", cfg.Config.Logging.AccessLog.LogHealthChecks).
			Msg("structured access logging enabled")
	}

	// Compression wraps the conditional GET so the ETag is computed on the identity body.
	if cfg.Config.Compression.Enabled {
		router.Use(middleware.Compression(cfg.Config.Compression, cfg.MetricsClient))
	}

	router.Use(middleware.ConditionalGET())

	if cfg.OpenAPI != nil {
		validator, err := middleware.RequestValidator(cfg.OpenAPI)
		if err != nil {
			return nil, err
		}

		router.Use(validator)
	}

	if cfg.Config.Idempotency.Enabled && cfg.IdempotencyStore != nil {
		router.Use(middleware.Idempotency(cfg.IdempotencyStore, cfg.Config.Idempotency, cfg.Logger))
	}

	uploadLimit := func(next http.Handler) http.Handler { return next }

	if cfg.Config.RateLimiting.Enabled && cfg.RateLimitStore != nil {
		limiter, err := middleware.RateLimit(cfg.Config.RateLimiting, cfg.RateLimitStore, cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("creating upload rate limiter: %w", err)
		}

		uploadLimit = limiter
	}

	handler := handlers.NewHandler(cfg.App, cfg.Logger, cfg.Config.PhotoStorage.MaxUploadBytes)

	router.Get("/", handler.Root)

	router.Route("/devices", func(r chi.Router) {
		r.Get("/", handler.ListDevices)
		r.Post("/", handler.CreateDevice)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetDevice)
			r.Put("/", handler.UpdateDevice)
			r.Delete("/", handler.DeleteDevice)
			r.Get("/specs", handler.GetDeviceSpecs)
			r.Get("/pairing-candidates", handler.ListPairingCandidates)
		})
	})

	router.Get("/collection", handler.GetCollection)
	router.Get("/stats", handler.GetStats)

	router.With(uploadLimit).Post("/upload-photo", handler.UploadPhoto)
	router.Get("/photos/{name}", handler.GetPhoto)
	router.Head("/photos/{name}", handler.GetPhoto)

	router.Get("/preferences", handler.GetPreferences)
	router.Put("/preferences", handler.SavePreferences)

	router.Get("/health", handler.HealthCheck)
	router.Get("/liveness", handler.LivenessCheck)
	router.Get("/readiness", handler.ReadinessCheck)

	return router, nil
}
