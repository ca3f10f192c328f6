package usecases

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases/commands"
	"github.com/architeacher/gadgets/internal/usecases/queries"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Commands struct {
		CreateDevice    commands.CreateDeviceCommandHandler
		UpdateDevice    commands.UpdateDeviceCommandHandler
		DeleteDevice    commands.DeleteDeviceCommandHandler
		UploadPhoto     commands.UploadPhotoCommandHandler
		SavePreferences commands.SavePreferencesCommandHandler
	}

	Queries struct {
		GetDevice             queries.GetDeviceQueryHandler
		ListDevices           queries.ListDevicesQueryHandler
		GetCollection         queries.GetCollectionQueryHandler
		GetDeviceSpecs        queries.GetDeviceSpecsQueryHandler
		ListPairingCandidates queries.ListPairingCandidatesQueryHandler
		GetStats              queries.GetStatsQueryHandler
		GetPreferences        queries.GetPreferencesQueryHandler
		OpenPhoto             queries.OpenPhotoQueryHandler
		FetchLiveness         queries.FetchLivenessQueryHandler
		FetchReadiness        queries.FetchReadinessQueryHandler
		FetchHealthReport     queries.FetchHealthReportQueryHandler
	}

	// Caching carries the query caches. Nil caches bypass caching.
	Caching struct {
		Devices     ports.DevicesCache
		GetDevice   decorator.Cache[queries.GetDeviceQuery, *model.Device]
		ListDevices decorator.Cache[queries.ListDevicesQuery, []model.Device]
		Device      decorator.CacheConfig
		List        decorator.CacheConfig
	}

	Services struct {
		Devices     ports.DevicesService
		Photos      ports.PhotosService
		Preferences ports.PreferencesRepository
		Health      ports.HealthChecker
	}

	WebApplication struct {
		Commands Commands
		Queries  Queries
	}
)

func NewWebApplication(
	svcs Services,
	caching Caching,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) *WebApplication {
	observer := cacheObserver(metricsClient)

	getDevice := queries.NewGetDeviceQueryHandler(svcs.Devices, caching.GetDevice, caching.Device, observer, log, metricsClient, tracerProvider)
	listDevices := queries.NewListDevicesQueryHandler(svcs.Devices, caching.ListDevices, caching.List, observer, log, metricsClient, tracerProvider)

	return &WebApplication{
		Commands: Commands{
			CreateDevice:    commands.NewCreateDeviceCommandHandler(svcs.Devices, caching.Devices, log, metricsClient, tracerProvider),
			UpdateDevice:    commands.NewUpdateDeviceCommandHandler(svcs.Devices, caching.Devices, log, metricsClient, tracerProvider),
			DeleteDevice:    commands.NewDeleteDeviceCommandHandler(svcs.Devices, caching.Devices, log, metricsClient, tracerProvider),
			UploadPhoto:     commands.NewUploadPhotoCommandHandler(svcs.Photos, log, metricsClient, tracerProvider),
			SavePreferences: commands.NewSavePreferencesCommandHandler(svcs.Preferences, log, metricsClient, tracerProvider),
		},
		Queries: Queries{
			GetDevice:             getDevice,
			ListDevices:           listDevices,
			GetCollection:         queries.NewGetCollectionQueryHandler(listDevices, log, metricsClient, tracerProvider),
			GetDeviceSpecs:        queries.NewGetDeviceSpecsQueryHandler(getDevice, log, metricsClient, tracerProvider),
			ListPairingCandidates: queries.NewListPairingCandidatesQueryHandler(getDevice, listDevices, log, metricsClient, tracerProvider),
			GetStats:              queries.NewGetStatsQueryHandler(listDevices, log, metricsClient, tracerProvider),
			GetPreferences:        queries.NewGetPreferencesQueryHandler(svcs.Preferences, log, metricsClient, tracerProvider),
			OpenPhoto:             queries.NewOpenPhotoQueryHandler(svcs.Photos, log, metricsClient, tracerProvider),
			FetchLiveness:         queries.NewFetchLivenessQueryHandler(svcs.Health, log, metricsClient, tracerProvider),
			FetchReadiness:        queries.NewFetchReadinessQueryHandler(svcs.Health, log, metricsClient, tracerProvider),
			FetchHealthReport:     queries.NewFetchHealthReportQueryHandler(svcs.Health, log, metricsClient, tracerProvider),
		},
	}
}

func cacheObserver(metricsClient metrics.Client) decorator.CacheObserver {
	if metricsClient == nil {
		return nil
	}

	return func(ctx context.Context, status decorator.CacheStatus) {
		metricsClient.Inc(ctx, "cache.lookups", 1, attribute.String("status", string(status)))
	}
}
