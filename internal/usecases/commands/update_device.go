package commands

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
	// UpdateDeviceCommand replaces every attribute of the device.
	UpdateDeviceCommand struct {
		ID         model.DeviceID
		Attributes model.DeviceAttributes
	}

	UpdateDeviceCommandHandler = decorator.CommandHandler[UpdateDeviceCommand, *model.Device]

	updateDeviceCommandHandler struct {
		devicesService ports.DevicesService
		invalidator    cacheInvalidator
	}
)

func NewUpdateDeviceCommandHandler(
	svc ports.DevicesService,
	cache ports.DevicesCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) UpdateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[UpdateDeviceCommand, *model.Device](
		updateDeviceCommandHandler{
			devicesService: svc,
			invalidator:    cacheInvalidator{cache: cache, logger: log},
		},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h updateDeviceCommandHandler) Handle(ctx context.Context, cmd UpdateDeviceCommand) (*model.Device, error) {
	device, err := h.devicesService.UpdateDevice(ctx, cmd.ID, cmd.Attributes)
	if err != nil {
		return nil, err
	}

	h.invalidator.invalidate(ctx, cmd.ID)

	return device, nil
}
