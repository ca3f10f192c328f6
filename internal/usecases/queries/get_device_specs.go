package queries

import (
	"context"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	GetDeviceSpecsQuery struct {
		ID model.DeviceID
	}

	GetDeviceSpecsQueryHandler = decorator.QueryHandler[GetDeviceSpecsQuery, catalog.Detail]

	getDeviceSpecsQueryHandler struct {
		getDevice GetDeviceQueryHandler
	}
)

func NewGetDeviceSpecsQueryHandler(
	getDevice GetDeviceQueryHandler,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetDeviceSpecsQueryHandler {
	return decorator.ApplyQueryDecorators[GetDeviceSpecsQuery, catalog.Detail](
		getDeviceSpecsQueryHandler{getDevice: getDevice},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getDeviceSpecsQueryHandler) Execute(ctx context.Context, query GetDeviceSpecsQuery) (catalog.Detail, error) {
	device, err := h.getDevice.Execute(ctx, GetDeviceQuery{ID: query.ID})
	if err != nil {
		return catalog.Detail{}, err
	}

	return catalog.BuildDetail(*device), nil
}
