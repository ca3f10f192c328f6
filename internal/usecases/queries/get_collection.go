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
	// GetCollectionQuery filters first, then sorts. Empty fields take their defaults.
	GetCollectionQuery struct {
		Query    string
		Category string
		Status   string
		Sort     catalog.SortKey
		Order    catalog.SortOrder
	}

	GetCollectionQueryHandler = decorator.QueryHandler[GetCollectionQuery, []model.Device]

	getCollectionQueryHandler struct {
		listDevices ListDevicesQueryHandler
	}
)

func NewGetCollectionQueryHandler(
	listDevices ListDevicesQueryHandler,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetCollectionQueryHandler {
	return decorator.ApplyQueryDecorators[GetCollectionQuery, []model.Device](
		getCollectionQueryHandler{listDevices: listDevices},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getCollectionQueryHandler) Execute(ctx context.Context, query GetCollectionQuery) ([]model.Device, error) {
	devices, err := h.listDevices.Execute(ctx, ListDevicesQuery{})
	if err != nil {
		return nil, err
	}

	key, order := query.Sort, query.Order
	if key == "" {
		key = catalog.DefaultSortKey
	}

	if order == "" {
		order = catalog.DefaultSortOrder
	}

	visible := catalog.Filter(devices, query.Query, orAll(query.Category), orAll(query.Status))

	return catalog.Sort(visible, key, order), nil
}

func orAll(filter string) string {
	if filter == "" {
		return catalog.FilterAll
	}

	return filter
}
