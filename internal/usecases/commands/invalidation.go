package commands

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/logger"
)

// cacheInvalidator drops cached reads after a write. A nil cache is a no-op.
type cacheInvalidator struct {
	cache  ports.DevicesCache
	logger logger.Logger
}

func (i cacheInvalidator) invalidate(ctx context.Context, id model.DeviceID) {
	if i.cache == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	log := i.logger.WithContext(ctx)

	if !id.IsZero() {
		if err := i.cache.InvalidateDevice(ctx, id); err != nil {
			log.Warn().Err(err).Str("device_id", id.String()).Msg("failed to invalidate cached device")
		}
	}

	if err := i.cache.InvalidateAllLists(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached device lists")
	}
}
