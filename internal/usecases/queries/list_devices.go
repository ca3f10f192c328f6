package queries

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	ListDevicesQuery struct{}

	ListDevicesQueryHandler = decorator.QueryHandler[ListDevicesQuery, []model.Device]

	listDevicesQueryHandler struct {
		devicesService ports.DevicesService
	}
)

func NewListDevicesQueryHandler(
	svc ports.DevicesService,
	cache decorator.Cache[ListDevicesQuery, []model.Device],
	cacheConfig decorator.CacheConfig,
	cacheObserver decorator.CacheObserver,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListDevicesQueryHandler {
	return decorator.ApplyQueryDecorators[ListDevicesQuery, []model.Device](
		decorator.NewQueryCachingDecorator[ListDevicesQuery, []model.Device](
			listDevicesQueryHandler{devicesService: svc},
			cache,
			cacheConfig,
			cacheObserver,
		),
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listDevicesQueryHandler) Execute(ctx context.Context, _ ListDevicesQuery) ([]model.Device, error) {
	return h.devicesService.ListDevices(ctx)
}
