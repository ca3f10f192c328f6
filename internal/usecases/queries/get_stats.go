package queries

import (
	"context"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	GetStatsQuery struct{}

	GetStatsQueryHandler = decorator.QueryHandler[GetStatsQuery, catalog.Stats]

	getStatsQueryHandler struct {
		listDevices ListDevicesQueryHandler
	}
)

func NewGetStatsQueryHandler(
	listDevices ListDevicesQueryHandler,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetStatsQueryHandler {
	return decorator.ApplyQueryDecorators[GetStatsQuery, catalog.Stats](
		getStatsQueryHandler{listDevices: listDevices},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getStatsQueryHandler) Execute(ctx context.Context, _ GetStatsQuery) (catalog.Stats, error) {
	devices, err := h.listDevices.Execute(ctx, ListDevicesQuery{})
	if err != nil {
		return catalog.Stats{}, err
	}

	return catalog.Summarize(devices), nil
}
