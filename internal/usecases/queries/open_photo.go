package queries

import (
	"context"

	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/decorator"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	OpenPhotoQuery struct {
		Name string
	}

	// OpenPhotoQueryHandler hands back an open photo; callers close its Content.
	OpenPhotoQueryHandler = decorator.QueryHandler[OpenPhotoQuery, *ports.Photo]

	openPhotoQueryHandler struct {
		photosService ports.PhotosService
	}
)

func NewOpenPhotoQueryHandler(
	svc ports.PhotosService,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) OpenPhotoQueryHandler {
	return decorator.ApplyQueryDecorators[OpenPhotoQuery, *ports.Photo](
		openPhotoQueryHandler{photosService: svc},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h openPhotoQueryHandler) Execute(ctx context.Context, query OpenPhotoQuery) (*ports.Photo, error) {
	return h.photosService.OpenPhoto(ctx, query.Name)
}
