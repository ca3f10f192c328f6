//go:build integration

package itest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	httpadapter "github.com/architeacher/gadgets/internal/adapters/inbound/http"
	"github.com/architeacher/gadgets/internal/adapters/inbound/http/openapi"
	"github.com/architeacher/gadgets/internal/adapters/outbound/devicesapi"
	"github.com/architeacher/gadgets/internal/adapters/repos"
	"github.com/architeacher/gadgets/internal/adapters/storage"
	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/dashboard"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/infrastructure"
	infraPostgres "github.com/architeacher/gadgets/internal/infrastructure/postgres"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/services"
	"github.com/architeacher/gadgets/internal/usecases"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics/noop"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

const (
	postgresImage    = "postgres:18-alpine"
	postgresDatabase = "gadgets_test"
	postgresUsername = "test"
	postgresPassword = "test"
)

type GadgetsIntegrationTestSuite struct {
	suite.Suite

	suiteCtx    context.Context
	suiteCancel context.CancelFunc
	container   *postgres.PostgresContainer
	pool        *pgxpool.Pool
	keydb       *miniredis.Miniredis
	server      *httptest.Server
	client      *devicesapi.Client
	log         logger.Logger
}

func TestGadgetsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite.Run(t, new(GadgetsIntegrationTestSuite))
}

func (s *GadgetsIntegrationTestSuite) SetupSuite() {
	s.suiteCtx, s.suiteCancel = context.WithTimeout(context.Background(), 5*time.Minute)
	s.log = logger.NewTestLogger()

	container, err := postgres.Run(s.suiteCtx,
		postgresImage,
		postgres.WithDatabase(postgresDatabase),
		postgres.WithUsername(postgresUsername),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.suiteCtx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(s.suiteCtx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	applied, err := infraPostgres.Migrate(s.suiteCtx, pool, s.log)
	s.Require().NoError(err)
	s.Require().NotEmpty(applied)

	s.keydb = miniredis.NewMiniRedis()
	s.Require().NoError(s.keydb.Start())

	s.server = httptest.NewServer(s.buildRouter())
	s.client = devicesapi.NewClient(config.DevicesAPI{BaseURL: s.server.URL, Timeout: 10 * time.Second})
}

func (s *GadgetsIntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}

	if s.keydb != nil {
		s.keydb.Close()
	}

	if s.pool != nil {
		s.pool.Close()
	}

	if s.container != nil {
		_ = s.container.Terminate(s.suiteCtx)
	}

	if s.suiteCancel != nil {
		s.suiteCancel()
	}
}

func (s *GadgetsIntegrationTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.T().Context(), "TRUNCATE TABLE devices")
	s.Require().NoError(err)

	s.keydb.FlushAll()
}

func (s *GadgetsIntegrationTestSuite) buildRouter() http.Handler {
	cfg := &config.ServiceConfig{
		App: config.App{ServiceName: "gadgets", APIVersion: "v1"},
		HTTPServer: config.HTTPServer{
			RequestTimeout: 10 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		DevicesCache: config.DevicesCache{Enabled: true, DeviceTTL: time.Minute, ListTTL: time.Minute},
		RateLimiting: config.RateLimiting{Enabled: true, RequestsPerMin: 60, BurstSize: 10, KeyTTL: time.Minute},
		Idempotency: config.Idempotency{
			Enabled:        true,
			CacheTTL:       time.Hour,
			LockTTL:        10 * time.Second,
			Methods:        []string{http.MethodPost, http.MethodPut, http.MethodDelete},
			ReplayedHeader: "Idempotent-Replayed",
		},
		Compression: config.Compression{Enabled: true, Level: 5, MinSize: 1024},
		PhotoStorage: config.PhotoStorage{
			Directory:      s.T().TempDir(),
			PublicBaseURL:  "/photos",
			MaxUploadBytes: services.MaxPhotoBytes,
		},
	}

	keydb := infrastructure.NewKeyDBClientFromRedis(redis.NewClient(&redis.Options{Addr: s.keydb.Addr()}), s.log)

	devicesRepo := repos.NewDevicesRepository(s.pool, repos.NewPgxScanner(), s.log)
	devicesCache := repos.NewDevicesCacheRepository(keydb, s.log)

	photoStorage, err := storage.NewFilesystemPhotoStorage(cfg.PhotoStorage, s.log)
	s.Require().NoError(err)

	app := usecases.NewWebApplication(
		usecases.Services{
			Devices:     services.NewDevicesService(devicesRepo),
			Photos:      services.NewPhotosService(photoStorage, cfg.PhotoStorage.MaxUploadBytes),
			Preferences: repos.NewPreferencesRepository(keydb),
			Health: services.NewHealthService(
				ports.Dependencies{"database": devicesRepo, "cache": keydb, "photo_storage": photoStorage},
				"v1", "test", "itest",
			),
		},
		usecases.Caching{
			Devices:     devicesCache,
			GetDevice:   repos.NewGetDeviceCacheAdapter(devicesCache),
			ListDevices: repos.NewListDevicesCacheAdapter(devicesCache),
			Device:      decorator.CacheConfig{Enabled: true, TTL: time.Minute, WriteTimeout: time.Second},
			List:        decorator.CacheConfig{Enabled: true, TTL: time.Minute, WriteTimeout: time.Second},
		},
		s.log,
		noop.NewMetricsClient(),
		otelNoop.NewTracerProvider(),
	)

	doc, err := openapi.Load(s.suiteCtx)
	s.Require().NoError(err)

	router, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		App:              app,
		Logger:           s.log,
		MetricsClient:    noop.NewMetricsClient(),
		TracerProvider:   otelNoop.NewTracerProvider(),
		Config:           cfg,
		OpenAPI:          doc,
		IdempotencyStore: repos.NewIdempotencyRepository(keydb),
		RateLimitStore:   repos.NewRateLimitStore(keydb),
	})
	s.Require().NoError(err)

	return router
}

func (s *GadgetsIntegrationTestSuite) newEditor(devices []model.Device) *dashboard.Editor {
	return dashboard.NewEditor(s.client, devices, s.log)
}

func (s *GadgetsIntegrationTestSuite) createCamera(nickname string) *model.Device {
	editor := s.newEditor(nil)
	editor.Form.Nickname = nickname
	editor.Form.Brand = "Leica"
	editor.Form.Model = "M6"
	editor.Form.DeviceType = "camera"
	editor.Form.AdoptedDate = "2021-03-04"
	editor.Form.PurchasePrice = "1800"
	editor.Form.Source = "eBay"
	editor.Form.FilmType = "35mm"
	editor.Form.Megapixels = "24"

	device, err := editor.Submit(s.T().Context())
	s.Require().NoError(err)
	s.Require().False(device.ID.IsZero())

	return device
}

func (s *GadgetsIntegrationTestSuite) TestDeviceLifecycle() {
	ctx := s.T().Context()

	created := s.createCamera("Darkroom camera")

	collection := dashboard.NewCollection(s.client, s.log)
	s.Require().NoError(collection.Load(ctx))
	s.Require().Len(collection.Devices(), 1)

	fetched, err := s.client.GetDevice(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Equal("Darkroom camera", fetched.Nickname)
	s.Require().Equal(model.NewDate(2021, time.March, 4), fetched.AdoptedDate)

	editor := s.newEditor(collection.Devices())
	s.Require().NoError(editor.Load(ctx, created.ID))

	editor.Form.Status = "repairing"
	editor.Form.Notes = "shutter sticks"

	updated, err := editor.Submit(ctx)
	s.Require().NoError(err)
	s.Require().Equal(model.StatusRepairing, updated.Status)
	s.Require().Equal("shutter sticks", updated.Notes)

	fetched, err = s.client.GetDevice(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Equal(model.StatusRepairing, fetched.Status)

	s.Require().NoError(editor.Delete(ctx, true))

	_, err = s.client.GetDevice(ctx, created.ID)
	s.Require().ErrorIs(err, model.ErrDeviceNotFound)

	s.Require().ErrorIs(s.newEditor(nil).Load(ctx, created.ID), model.ErrDeviceNotFound)
}

func (s *GadgetsIntegrationTestSuite) TestUnknownOpaqueIDIsNotFound() {
	ctx := s.T().Context()

	for _, id := range []model.DeviceID{"abc123", "507f1f77bcf86cd799439011"} {
		_, err := s.client.GetDevice(ctx, id)
		s.Require().ErrorIs(err, model.ErrDeviceNotFound)

		s.Require().ErrorIs(s.newEditor(nil).Load(ctx, id), model.ErrDeviceNotFound)
	}
}

func (s *GadgetsIntegrationTestSuite) TestPairingAndViews() {
	ctx := s.T().Context()

	first := s.createCamera("First")
	second := s.createCamera("Second")

	editor := s.newEditor([]model.Device{*first, *second})
	s.Require().NoError(editor.Load(ctx, first.ID))

	candidates := editor.SearchPairings("sec")
	s.Require().Len(candidates, 1)
	s.Require().True(editor.AddPairing(candidates[0]))

	updated, err := editor.Submit(ctx)
	s.Require().NoError(err)
	s.Require().Len(updated.PairedDevices, 1)
	s.Require().Equal(second.ID, updated.PairedDevices[0].DeviceID)

	collection := dashboard.NewCollection(s.client, s.log)
	s.Require().NoError(collection.Load(ctx))

	sorted := collection.Sorted(catalog.SortByNickname, catalog.SortAsc)
	s.Require().Equal("First", sorted[0].Nickname)

	stats := collection.Stats()
	s.Require().Equal(2, stats.Total)
	s.Require().InDelta(3600.0, stats.TotalInvestment, 0.001)
}

func (s *GadgetsIntegrationTestSuite) TestSelfPairingIsRejected() {
	ctx := s.T().Context()

	device := s.createCamera("Lonely")

	editor := s.newEditor([]model.Device{*device})
	s.Require().NoError(editor.Load(ctx, device.ID))
	s.Require().True(editor.AddPairing(*device))

	_, err := editor.Submit(ctx)

	var banner *dashboard.Banner
	s.Require().ErrorAs(err, &banner)
	s.Require().Equal(dashboard.MsgUpdateFailed, banner.Message)
	s.Require().ErrorIs(err, devicesapi.ErrRequestFailed)
}

func (s *GadgetsIntegrationTestSuite) TestPhotoUploadIsServed() {
	ctx := s.T().Context()

	editor := s.newEditor(nil)

	url, err := editor.UploadPhoto(ctx, dashboard.PhotoThumbnail, ports.PhotoUpload{
		Filename:    "leica.png",
		ContentType: "image/png",
		Size:        int64(len("pixels")),
		Content:     strings.NewReader("pixels"),
	})
	s.Require().NoError(err)
	s.Require().True(strings.HasPrefix(url, "/photos/thumbnail-"))
	s.Require().Equal(url, editor.Form.Thumbnail)

	resp, err := http.Get(s.server.URL + url)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().Equal("pixels", body.String())
}

func (s *GadgetsIntegrationTestSuite) TestPreferencesPersist() {
	ctx := s.T().Context()

	session := dashboard.Open(ctx, s.client, s.log)
	s.Require().False(session.DarkMode())
	s.Require().NoError(session.SetDarkMode(ctx, true))

	reopened := dashboard.Open(ctx, s.client, s.log)
	s.Require().True(reopened.DarkMode())
}

func (s *GadgetsIntegrationTestSuite) TestReadiness() {
	resp, err := http.Get(s.server.URL + "/readiness")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
}
