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
	CreateDeviceCommand struct {
		Attributes model.DeviceAttributes
	}

	CreateDeviceCommandHandler = decorator.CommandHandler[CreateDeviceCommand, *model.Device]

	createDeviceCommandHandler struct {
		devicesService ports.DevicesService
		invalidator    cacheInvalidator
	}
)

func NewCreateDeviceCommandHandler(
	svc ports.DevicesService,
	cache ports.DevicesCache,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CreateDeviceCommandHandler {
	return decorator.ApplyCommandDecorators[CreateDeviceCommand, *model.Device](
		createDeviceCommandHandler{
			devicesService: svc,
			invalidator:    cacheInvalidator{cache: cache, logger: log},
		},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h createDeviceCommandHandler) Handle(ctx context.Context, cmd CreateDeviceCommand) (*model.Device, error) {
	device, err := h.devicesService.CreateDevice(ctx, cmd.Attributes)
	if err != nil {
		return nil, err
	}

	h.invalidator.invalidate(ctx, "")

	return device, nil
}
