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
	GetPreferencesQuery struct{}

	GetPreferencesQueryHandler = decorator.QueryHandler[GetPreferencesQuery, model.Preferences]

	getPreferencesQueryHandler struct {
		repo ports.PreferencesRepository
	}
)

func NewGetPreferencesQueryHandler(
	repo ports.PreferencesRepository,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) GetPreferencesQueryHandler {
	return decorator.ApplyQueryDecorators[GetPreferencesQuery, model.Preferences](
		getPreferencesQueryHandler{repo: repo},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h getPreferencesQueryHandler) Execute(ctx context.Context, _ GetPreferencesQuery) (model.Preferences, error) {
	return h.repo.Get(ctx)
}
