package runtime

import (
	"context"
	"fmt"
	"net/http"

	"github.com/architeacher/gadgets/internal/adapters/storage"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/infrastructure"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/throttled/throttled/v2"
	"go.opentelemetry.io/otel/sdk/resource"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	infrastructureDep struct {
		httpServer     *http.Server
		dbPool         *pgxpool.Pool
		cacheClient    *infrastructure.KeydbClient
		photoStorage   *storage.FilesystemPhotoStorage
		logger         logger.Logger
		resource       *resource.Resource
		metricsClient  metrics.Client
		tracerProvider otelTrace.TracerProvider
		openAPI        *openapi3.T
	}

	repositories struct {
		secretsRepo     ports.SecretsRepository
		devicesRepo     ports.DevicesRepository
		devicesCache    ports.DevicesCache
		preferencesRepo ports.PreferencesRepository
		idempotencyRepo ports.IdempotencyStore
		rateLimitStore  throttled.GCRAStoreCtx
	}

	servicesDep struct {
		devices ports.DevicesService
		photos  ports.PhotosService
		health  ports.HealthChecker
	}

	applications struct {
		webApp *usecases.WebApplication
	}

	dependencies struct {
		config       *config.ServiceConfig
		configLoader *config.Loader

		infra infrastructureDep

		repos repositories

		services servicesDep

		apps applications

		healthDeps   ports.Dependencies
		cleanupFuncs map[string]func(ctx context.Context) error
	}

	DependencyOption func(*dependencies) error
)

func initializeDependencies(opts ...DependencyOption) (*dependencies, error) {
	deps := &dependencies{
		healthDeps:   make(ports.Dependencies),
		cleanupFuncs: make(map[string]func(ctx context.Context) error),
	}

	for _, opt := range opts {
		if err := opt(deps); err != nil {
			return nil, fmt.Errorf("failed to apply dependency option: %w", err)
		}
	}

	return deps, nil
}

func (d *dependencies) addCleanup(name string, fn func(ctx context.Context) error) {
	d.cleanupFuncs[name] = fn
}
