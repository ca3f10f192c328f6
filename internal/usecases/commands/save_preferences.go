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
	SavePreferencesCommand struct {
		Preferences model.Preferences
	}

	SavePreferencesCommandHandler = decorator.CommandHandler[SavePreferencesCommand, model.Preferences]

	savePreferencesCommandHandler struct {
		repo ports.PreferencesRepository
	}
)

func NewSavePreferencesCommandHandler(
	repo ports.PreferencesRepository,
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) SavePreferencesCommandHandler {
	return decorator.ApplyCommandDecorators[SavePreferencesCommand, model.Preferences](
		savePreferencesCommandHandler{repo: repo},
		log,
		metricsClient,
		tracerProvider,
	)
}

func (h savePreferencesCommandHandler) Handle(ctx context.Context, cmd SavePreferencesCommand) (model.Preferences, error) {
	if err := h.repo.Save(ctx, cmd.Preferences); err != nil {
		return model.Preferences{}, err
	}

	return cmd.Preferences, nil
}
