package repos

import (
	"context"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases/queries"
)

type (
	// GetDeviceCacheAdapter adapts DevicesCache for GetDeviceQuery.
	GetDeviceCacheAdapter struct {
		cache ports.DevicesCache
	}

	// ListDevicesCacheAdapter adapts DevicesCache for ListDevicesQuery.
	ListDevicesCacheAdapter struct {
		cache ports.DevicesCache
	}
)

func NewGetDeviceCacheAdapter(cache ports.DevicesCache) *GetDeviceCacheAdapter {
	return &GetDeviceCacheAdapter{cache: cache}
}

func (a *GetDeviceCacheAdapter) Get(ctx context.Context, query queries.GetDeviceQuery) (*model.Device, bool, error) {
	return a.cache.GetDevice(ctx, query.ID)
}

func (a *GetDeviceCacheAdapter) Set(ctx context.Context, _ queries.GetDeviceQuery, result *model.Device, ttl time.Duration) error {
	if result == nil {
		return nil
	}

	return a.cache.SetDevice(ctx, result, ttl)
}

func NewListDevicesCacheAdapter(cache ports.DevicesCache) *ListDevicesCacheAdapter {
	return &ListDevicesCacheAdapter{cache: cache}
}

func (a *ListDevicesCacheAdapter) Get(ctx context.Context, _ queries.ListDevicesQuery) ([]model.Device, bool, error) {
	return a.cache.GetDeviceList(ctx)
}

func (a *ListDevicesCacheAdapter) Set(ctx context.Context, _ queries.ListDevicesQuery, result []model.Device, ttl time.Duration) error {
	return a.cache.SetDeviceList(ctx, result, ttl)
}
