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
	// ListPairingCandidatesQuery lists devices that ID could still be paired with.
	// An empty ID lists candidates for a device that is being created.
	ListPairingCandidatesQuery struct {
		ID    model.DeviceID
		Query string
	}

	ListPairingCandidatesQueryHandler = decorator.QueryHandler[ListPairingCandidatesQuery, []model.Device]

	listPairingCandidatesQueryHandler struct {
		getDevice   GetDeviceQueryHandler
		listDevices ListDevicesQueryHandler
	}
)

func NewListPairingCandidatesQueryHandler(
	getDevice GetDeviceQueryHandler,
	listDevices ListDevicesQueryHandler,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) ListPairingCandidatesQueryHandler {
	return decorator.ApplyQueryDecorators[ListPairingCandidatesQuery, []model.Device](
		listPairingCandidatesQueryHandler{getDevice: getDevice, listDevices: listDevices},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h listPairingCandidatesQueryHandler) Execute(ctx context.Context, query ListPairingCandidatesQuery) ([]model.Device, error) {
	var current []model.PairedDevice

	if !query.ID.IsZero() {
		device, err := h.getDevice.Execute(ctx, GetDeviceQuery{ID: query.ID})
		if err != nil {
			return nil, err
		}

		current = device.PairedDevices
	}

	all, err := h.listDevices.Execute(ctx, ListDevicesQuery{})
	if err != nil {
		return nil, err
	}

	return catalog.NewPairingSelector(current).Search(all, query.ID, query.Query), nil
}
