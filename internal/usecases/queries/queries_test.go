package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/mocks"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases/queries"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics/noop"
	"github.com/stretchr/testify/require"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

type (
	listCache struct {
		devices []model.Device
		hit     bool
		sets    int
	}

	healthChecker struct {
		readiness *model.ReadinessReport
	}
)

func (c *listCache) Get(context.Context, queries.ListDevicesQuery) ([]model.Device, bool, error) {
	return c.devices, c.hit, nil
}

func (c *listCache) Set(_ context.Context, _ queries.ListDevicesQuery, devices []model.Device, _ time.Duration) error {
	c.sets++
	c.devices, c.hit = devices, true

	return nil
}

func (h healthChecker) Liveness(context.Context) (*model.LivenessReport, error) {
	return &model.LivenessReport{Status: model.HealthStatusOK}, nil
}

func (h healthChecker) Readiness(context.Context) (*model.ReadinessReport, error) {
	return h.readiness, nil
}

func (h healthChecker) Health(context.Context) (*model.HealthReport, error) {
	return &model.HealthReport{Status: h.readiness.Status}, nil
}

func price(v float64) *float64 {
	return &v
}

func device(id, nickname string, deviceType model.DeviceType, status model.Status, adopted model.Date, amount float64) model.Device {
	return model.Device{
		ID: model.DeviceID(id),
		DeviceAttributes: model.DeviceAttributes{
			Nickname:      nickname,
			Model:         nickname + " model",
			Brand:         "Brand",
			Type:          deviceType,
			Status:        status,
			AdoptedDate:   adopted,
			PurchasePrice: price(amount),
			Source:        "shop",
		},
	}
}

func fixtures() []model.Device {
	return []model.Device{
		device("1", "Alpha", model.DeviceTypeComputer, model.StatusActive, model.NewDate(2020, time.January, 1), 100),
		device("2", "Bravo", model.DeviceTypeCamera, model.StatusRetired, model.NewDate(2022, time.January, 1), 50),
		device("3", "Charlie", model.DeviceTypeComputer, model.StatusRepairing, model.NewDate(2021, time.January, 1), 10),
	}
}

func listHandler(svc *mocks.FakeDevicesService, cache *listCache) queries.ListDevicesQueryHandler {
	cfg := decorator.CacheConfig{Enabled: cache != nil, TTL: time.Minute}

	var c decorator.Cache[queries.ListDevicesQuery, []model.Device]
	if cache != nil {
		c = cache
	}

	return queries.NewListDevicesQueryHandler(svc, c, cfg, nil, logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
}

func TestListDevicesQueryHandler_Caching(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeDevicesService{}
	svc.ListDevicesReturns(fixtures(), nil)
	cache := &listCache{}

	handler := listHandler(svc, cache)

	first, err := handler.Execute(context.Background(), queries.ListDevicesQuery{})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := handler.Execute(context.Background(), queries.ListDevicesQuery{})
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, 1, svc.ListDevicesCallCount())
	require.Equal(t, 1, cache.sets)
}

func TestGetCollectionQueryHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		query    queries.GetCollectionQuery
		expected []model.DeviceID
	}{
		{
			name:     "defaults sort newest adoption first",
			query:    queries.GetCollectionQuery{},
			expected: []model.DeviceID{"2", "3", "1"},
		},
		{
			name:     "filters before sorting",
			query:    queries.GetCollectionQuery{Category: "computer", Status: "all", Sort: catalog.SortByPurchasePrice, Order: catalog.SortAsc},
			expected: []model.DeviceID{"3", "1"},
		},
		{
			name:     "text query",
			query:    queries.GetCollectionQuery{Query: "brav"},
			expected: []model.DeviceID{"2"},
		},
		{
			name:     "no match",
			query:    queries.GetCollectionQuery{Status: "retired", Category: "appliance"},
			expected: []model.DeviceID{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.FakeDevicesService{}
			svc.ListDevicesReturns(fixtures(), nil)

			handler := queries.NewGetCollectionQueryHandler(listHandler(svc, nil), logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
			devices, err := handler.Execute(context.Background(), tc.query)
			require.NoError(t, err)

			ids := make([]model.DeviceID, 0, len(devices))
			for _, d := range devices {
				ids = append(ids, d.ID)
			}

			require.Equal(t, tc.expected, ids)
		})
	}
}

func TestGetCollectionQueryHandler_ListFailure(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeDevicesService{}
	svc.ListDevicesReturns(nil, model.ErrDatabaseQuery)

	handler := queries.NewGetCollectionQueryHandler(listHandler(svc, nil), logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
	_, err := handler.Execute(context.Background(), queries.GetCollectionQuery{})
	require.ErrorIs(t, err, model.ErrDatabaseQuery)
}

func getHandler(svc *mocks.FakeDevicesService) queries.GetDeviceQueryHandler {
	return queries.NewGetDeviceQueryHandler(svc, nil, decorator.CacheConfig{}, nil, logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
}

func TestGetDeviceSpecsQueryHandler(t *testing.T) {
	t.Parallel()

	t.Run("builds the detail view", func(t *testing.T) {
		t.Parallel()

		d := fixtures()[0]
		svc := &mocks.FakeDevicesService{}
		svc.GetDeviceReturns(&d, nil)

		handler := queries.NewGetDeviceSpecsQueryHandler(getHandler(svc), logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
		detail, err := handler.Execute(context.Background(), queries.GetDeviceSpecsQuery{ID: d.ID})
		require.NoError(t, err)
		require.Equal(t, "Alpha", detail.Title)
		require.Contains(t, detail.Specs, catalog.Spec{Label: "Purchase Price", Value: "$100"})
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc := &mocks.FakeDevicesService{}
		svc.GetDeviceReturns(nil, model.ErrDeviceNotFound)

		handler := queries.NewGetDeviceSpecsQueryHandler(getHandler(svc), logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
		_, err := handler.Execute(context.Background(), queries.GetDeviceSpecsQuery{ID: "missing"})
		require.ErrorIs(t, err, model.ErrDeviceNotFound)
	})
}

func TestListPairingCandidatesQueryHandler(t *testing.T) {
	t.Parallel()

	all := fixtures()
	self := all[0]
	self.PairedDevices = []model.PairedDevice{all[1].PairingReference()}

	cases := []struct {
		name     string
		query    queries.ListPairingCandidatesQuery
		expected []model.DeviceID
	}{
		{
			name:     "excludes self and current pairings",
			query:    queries.ListPairingCandidatesQuery{ID: self.ID},
			expected: []model.DeviceID{"3"},
		},
		{
			name:     "new device sees everything",
			query:    queries.ListPairingCandidatesQuery{},
			expected: []model.DeviceID{"1", "2", "3"},
		},
		{
			name:     "query narrows candidates",
			query:    queries.ListPairingCandidatesQuery{Query: "char"},
			expected: []model.DeviceID{"3"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mocks.FakeDevicesService{}
			svc.GetDeviceReturns(&self, nil)
			svc.ListDevicesReturns(all, nil)

			handler := queries.NewListPairingCandidatesQueryHandler(
				getHandler(svc), listHandler(svc, nil),
				logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider(),
			)

			candidates, err := handler.Execute(context.Background(), tc.query)
			require.NoError(t, err)

			ids := make([]model.DeviceID, 0, len(candidates))
			for _, d := range candidates {
				ids = append(ids, d.ID)
			}

			require.Equal(t, tc.expected, ids)
		})
	}
}

func TestGetStatsQueryHandler(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakeDevicesService{}
	svc.ListDevicesReturns(fixtures(), nil)

	handler := queries.NewGetStatsQueryHandler(listHandler(svc, nil), logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
	stats, err := handler.Execute(context.Background(), queries.GetStatsQuery{})
	require.NoError(t, err)

	require.Equal(t, 3, stats.Total)
	require.InDelta(t, 160, stats.TotalInvestment, 0.001)
	require.Equal(t, 2, stats.ByType[model.DeviceTypeComputer])
}

func TestGetPreferencesQueryHandler(t *testing.T) {
	t.Parallel()

	repo := &mocks.FakePreferencesRepository{}
	repo.GetReturns(model.Preferences{DarkMode: true}, nil)

	handler := queries.NewGetPreferencesQueryHandler(repo, logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
	prefs, err := handler.Execute(context.Background(), queries.GetPreferencesQuery{})
	require.NoError(t, err)
	require.True(t, prefs.DarkMode)

	repo.GetReturns(model.Preferences{}, errors.New("keydb down"))
	_, err = handler.Execute(context.Background(), queries.GetPreferencesQuery{})
	require.Error(t, err)
}

func TestOpenPhotoQueryHandler(t *testing.T) {
	t.Parallel()

	svc := &mocks.FakePhotosService{}
	svc.OpenPhotoReturns(&ports.Photo{Name: "main-1.jpg", ContentType: "image/jpeg"}, nil)

	handler := queries.NewOpenPhotoQueryHandler(svc, logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider())
	photo, err := handler.Execute(context.Background(), queries.OpenPhotoQuery{Name: "main-1.jpg"})
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", photo.ContentType)
	require.Equal(t, "main-1.jpg", svc.OpenPhotoArgsForCall(0))

	svc.OpenPhotoReturns(nil, model.ErrPhotoNotFound)
	_, err = handler.Execute(context.Background(), queries.OpenPhotoQuery{Name: "gone.jpg"})
	require.ErrorIs(t, err, model.ErrPhotoNotFound)
}

func TestHealthQueryHandlers(t *testing.T) {
	t.Parallel()

	checker := healthChecker{readiness: &model.ReadinessReport{Status: model.HealthStatusDegraded}}
	log, mc, tp := logger.NewTestLogger(), noop.NewMetricsClient(), otelNoop.NewTracerProvider()

	liveness, err := queries.NewFetchLivenessQueryHandler(checker, log, mc, tp).Execute(context.Background(), queries.FetchLivenessQuery{})
	require.NoError(t, err)
	require.Equal(t, model.HealthStatusOK, liveness.Status)

	readiness, err := queries.NewFetchReadinessQueryHandler(checker, log, mc, tp).Execute(context.Background(), queries.FetchReadinessQuery{})
	require.NoError(t, err)
	require.Equal(t, model.HealthStatusDegraded, readiness.Status)

	health, err := queries.NewFetchHealthReportQueryHandler(checker, log, mc, tp).Execute(context.Background(), queries.FetchHealthReportQuery{})
	require.NoError(t, err)
	require.Equal(t, model.HealthStatusDegraded, health.Status)
}
