package commands

import (
	"context"

	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	UploadPhotoCommand struct {
		Upload ports.PhotoUpload
	}

	// UploadPhotoCommandHandler returns the public URL of the stored photo.
	UploadPhotoCommandHandler = decorator.CommandHandler[UploadPhotoCommand, string]

	uploadPhotoCommandHandler struct {
		photosService ports.PhotosService
	}
)

func NewUploadPhotoCommandHandler(
	svc ports.PhotosService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) UploadPhotoCommandHandler {
	return decorator.ApplyCommandDecorators[UploadPhotoCommand, string](
		uploadPhotoCommandHandler{photosService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h uploadPhotoCommandHandler) Handle(ctx context.Context, cmd UploadPhotoCommand) (string, error) {
	return h.photosService.UploadPhoto(ctx, cmd.Upload)
}
