package runtime

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	inboundhttp "github.com/architeacher/gadgets/internal/adapters/inbound/http"
	"github.com/architeacher/gadgets/internal/adapters/inbound/http/openapi"
	"github.com/architeacher/gadgets/internal/adapters/repos"
	"github.com/architeacher/gadgets/internal/adapters/storage"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/infrastructure"
	infraPostgres "github.com/architeacher/gadgets/internal/infrastructure/postgres"
	"github.com/architeacher/gadgets/internal/services"
	"github.com/architeacher/gadgets/internal/usecases"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics/noop"
	"github.com/architeacher/gadgets/pkg/metrics/otlp"
	"github.com/hashicorp/vault/api"
)

const cacheWriteTimeout = time.Second

func defaultOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithSecretsRepository(),
		WithConfigLoader(ctx),
		WithTelemetryResource(ctx),
		WithTracing(ctx),
		WithMetrics(ctx),
		WithDatabase(ctx),
		WithMigrations(ctx),
		WithCache(),
		WithRepositories(),
		WithPhotoStorage(),
		WithServices(),
		WithApplication(),
		WithOpenAPI(ctx),
		WithHTTPServer(),
	}
}

// migrationOptions prepares just enough to run the schema migrations.
func migrationOptions(ctx context.Context) []DependencyOption {
	return []DependencyOption{
		WithConfig(),
		WithLogger(),
		WithSecretsRepository(),
		WithConfigLoader(ctx),
		WithDatabase(ctx),
	}
}

func WithConfig() DependencyOption {
	return func(d *dependencies) error {
		cfg, err := config.Init()
		if err != nil {
			return fmt.Errorf("initializing configuration: %w", err)
		}

		d.config = cfg

		return nil
	}
}

func WithLogger() DependencyOption {
	return func(d *dependencies) error {
		d.infra.logger = logger.New(d.config.Logging.Level, d.config.Logging.Format)

		return nil
	}
}

func WithSecretsRepository() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.SecretsStorage.Enabled {
			return nil
		}

		vaultConfig := api.DefaultConfig()
		vaultConfig.Address = d.config.SecretsStorage.Address
		vaultConfig.Timeout = d.config.SecretsStorage.Timeout
		vaultConfig.MaxRetries = int(d.config.SecretsStorage.MaxRetries)

		if d.config.SecretsStorage.TLSSkipVerify {
			vaultConfig.HttpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}

		client, err := api.NewClient(vaultConfig)
		if err != nil {
			return fmt.Errorf("creating Vault client: %w", err)
		}

		if d.config.SecretsStorage.Namespace != "" {
			client.SetNamespace(d.config.SecretsStorage.Namespace)
		}

		d.repos.secretsRepo = repos.NewVaultRepository(client)

		return nil
	}
}

// WithConfigLoader overlays the Vault secrets before anything connects.
func WithConfigLoader(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if d.repos.secretsRepo == nil {
			return nil
		}

		loader := config.NewLoader(d.config, d.repos.secretsRepo, 0)

		version, err := loader.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading secrets from Vault: %w", err)
		}

		d.configLoader = config.NewLoader(d.config, d.repos.secretsRepo, version)

		d.infra.logger.Info().Uint("version", version).Msg("secrets loaded from Vault")

		return nil
	}
}

func WithTelemetryResource(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled {
			return nil
		}

		res, err := infrastructure.NewResource(ctx, d.config.App, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("creating telemetry resource: %w", err)
		}

		d.infra.resource = res

		return nil
	}
}

func WithTracing(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || !d.config.Telemetry.Traces.Enabled {
			d.infra.tracerProvider = infrastructure.NewNoopTracerProvider()

			return nil
		}

		tp, shutdown, err := infrastructure.NewTracerProvider(ctx, d.infra.resource, d.config.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}

		d.infra.tracerProvider = tp
		d.addCleanup("tracer", shutdown)

		return nil
	}
}

func WithMetrics(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Telemetry.Enabled || !d.config.Telemetry.Metrics.Enabled {
			d.infra.metricsClient = noop.NewMetricsClient()

			return nil
		}

		client, err := otlp.NewMetricsClient(ctx, otlp.Config{
			Endpoint:       d.config.Telemetry.OTLPEndpoint,
			Insecure:       d.config.Telemetry.Insecure,
			ExportInterval: d.config.Telemetry.Metrics.ExportInterval,
		}, d.infra.resource)
		if err != nil {
			return fmt.Errorf("initializing metrics: %w", err)
		}

		d.infra.metricsClient = client
		d.addCleanup("metrics", client.Shutdown)

		return nil
	}
}

func WithDatabase(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		pool, err := infraPostgres.NewPool(ctx, d.config.Database, d.config.Backoff, d.infra.logger)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}

		d.infra.dbPool = pool
		d.addCleanup("database", func(context.Context) error {
			pool.Close()

			return nil
		})

		return nil
	}
}

func WithMigrations(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Database.MigrateOnStart {
			return nil
		}

		if _, err := infraPostgres.Migrate(ctx, d.infra.dbPool, d.infra.logger); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		return nil
	}
}

// WithCache connects KeyDB. Without it the devices cache, idempotency and
// rate limiting are switched off, but preferences still need it.
func WithCache() DependencyOption {
	return func(d *dependencies) error {
		if !d.config.Cache.Enabled {
			return errors.New("cache must be enabled to store preferences")
		}

		client := infrastructure.NewKeyDBClient(d.config.Cache, d.infra.logger)

		d.infra.cacheClient = client
		d.healthDeps["cache"] = client
		d.addCleanup("cache", func(context.Context) error {
			return client.Close()
		})

		return nil
	}
}

func WithRepositories() DependencyOption {
	return func(d *dependencies) error {
		devicesRepo := repos.NewDevicesRepository(d.infra.dbPool, repos.NewPgxScanner(), d.infra.logger)

		d.repos.devicesRepo = devicesRepo
		d.healthDeps["database"] = devicesRepo

		d.repos.preferencesRepo = repos.NewPreferencesRepository(d.infra.cacheClient)

		if d.config.DevicesCache.Enabled {
			d.repos.devicesCache = repos.NewDevicesCacheRepository(d.infra.cacheClient, d.infra.logger)
		}

		if d.config.Idempotency.Enabled {
			d.repos.idempotencyRepo = repos.NewIdempotencyRepository(d.infra.cacheClient)
		}

		if d.config.RateLimiting.Enabled {
			d.repos.rateLimitStore = repos.NewRateLimitStore(d.infra.cacheClient)
		}

		return nil
	}
}

func WithPhotoStorage() DependencyOption {
	return func(d *dependencies) error {
		photoStorage, err := storage.NewFilesystemPhotoStorage(d.config.PhotoStorage, d.infra.logger)
		if err != nil {
			return fmt.Errorf("preparing photo storage: %w", err)
		}

		d.infra.photoStorage = photoStorage
		d.healthDeps["photo_storage"] = photoStorage

		return nil
	}
}

func WithServices() DependencyOption {
	return func(d *dependencies) error {
		d.services.devices = services.NewDevicesService(d.repos.devicesRepo)
		d.services.photos = services.NewPhotosService(d.infra.photoStorage, d.config.PhotoStorage.MaxUploadBytes)
		d.services.health = services.NewHealthService(
			d.healthDeps,
			d.config.App.APIVersion,
			config.ServiceVersion,
			config.CommitSHA,
		)

		return nil
	}
}

func WithApplication() DependencyOption {
	return func(d *dependencies) error {
		caching := usecases.Caching{
			Device: decorator.CacheConfig{
				Enabled:      d.config.DevicesCache.Enabled,
				TTL:          d.config.DevicesCache.DeviceTTL,
				WriteTimeout: cacheWriteTimeout,
			},
			List: decorator.CacheConfig{
				Enabled:      d.config.DevicesCache.Enabled,
				TTL:          d.config.DevicesCache.ListTTL,
				WriteTimeout: cacheWriteTimeout,
			},
		}

		if d.repos.devicesCache != nil {
			caching.Devices = d.repos.devicesCache
			caching.GetDevice = repos.NewGetDeviceCacheAdapter(d.repos.devicesCache)
			caching.ListDevices = repos.NewListDevicesCacheAdapter(d.repos.devicesCache)
		}

		d.apps.webApp = usecases.NewWebApplication(
			usecases.Services{
				Devices:     d.services.devices,
				Photos:      d.services.photos,
				Preferences: d.repos.preferencesRepo,
				Health:      d.services.health,
			},
			caching,
			d.infra.logger,
			d.infra.metricsClient,
			d.infra.tracerProvider,
		)

		return nil
	}
}

func WithOpenAPI(ctx context.Context) DependencyOption {
	return func(d *dependencies) error {
		doc, err := openapi.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading OpenAPI document: %w", err)
		}

		d.infra.openAPI = doc

		return nil
	}
}

func WithHTTPServer() DependencyOption {
	return func(d *dependencies) error {
		routerCfg := inboundhttp.RouterConfig{
			App:              d.apps.webApp,
			Logger:           d.infra.logger,
			MetricsClient:    d.infra.metricsClient,
			TracerProvider:   d.infra.tracerProvider,
			Config:           d.config,
			OpenAPI:          d.infra.openAPI,
			IdempotencyStore: d.repos.idempotencyRepo,
			RateLimitStore:   d.repos.rateLimitStore,
		}

		router, err := inboundhttp.NewRouter(routerCfg)
		if err != nil {
			return fmt.Errorf("building router: %w", err)
		}

		server := &http.Server{
			Addr:         net.JoinHostPort(d.config.HTTPServer.Host, strconv.FormatUint(uint64(d.config.HTTPServer.Port), 10)),
			Handler:      router,
			ReadTimeout:  d.config.HTTPServer.ReadTimeout,
			WriteTimeout: d.config.HTTPServer.WriteTimeout,
			IdleTimeout:  d.config.HTTPServer.IdleTimeout,
		}

		d.infra.httpServer = server

		return nil
	}
}
