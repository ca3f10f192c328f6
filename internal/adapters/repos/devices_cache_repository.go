package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/infrastructure"
	"github.com/architeacher/gadgets/pkg/logger"
)

const (
	deviceCacheVersion = "v1"
	deviceKeyPrefix    = "device:" + deviceCacheVersion + ":"
	deviceListPrefix   = "devices:list:" + deviceCacheVersion + ":"
	deviceListKey      = deviceListPrefix + "all"
)

// DevicesCacheRepository caches device records in KeyDB using their stored
// JSON shape.
type DevicesCacheRepository struct {
	client *infrastructure.KeydbClient
	logger logger.Logger
}

func NewDevicesCacheRepository(client *infrastructure.KeydbClient, log logger.Logger) *DevicesCacheRepository {
	return &DevicesCacheRepository{
		client: client,
		logger: log,
	}
}

func (r *DevicesCacheRepository) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, bool, error) {
	data, err := r.client.Get(ctx, deviceKeyPrefix+id.String())
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("getting cached device: %w", err)
	}

	var device model.Device
	if err := json.Unmarshal(data, &device); err != nil {
		return nil, false, fmt.Errorf("unmarshalling cached device: %w", err)
	}

	return &device, true, nil
}

func (r *DevicesCacheRepository) SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error {
	data, err := json.Marshal(device)
	if err != nil {
		return fmt.Errorf("marshalling device: %w", err)
	}

	if err := r.client.Set(ctx, deviceKeyPrefix+device.ID.String(), data, ttl); err != nil {
		return fmt.Errorf("setting cached device: %w", err)
	}

	return nil
}

func (r *DevicesCacheRepository) InvalidateDevice(ctx context.Context, id model.DeviceID) error {
	if err := r.client.Delete(ctx, deviceKeyPrefix+id.String()); err != nil {
		return fmt.Errorf("invalidating cached device: %w", err)
	}

	return nil
}

func (r *DevicesCacheRepository) GetDeviceList(ctx context.Context) ([]model.Device, bool, error) {
	data, err := r.client.Get(ctx, deviceListKey)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("getting cached device list: %w", err)
	}

	var devices []model.Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, false, fmt.Errorf("unmarshalling cached device list: %w", err)
	}

	if devices == nil {
		devices = []model.Device{}
	}

	return devices, true, nil
}

func (r *DevicesCacheRepository) SetDeviceList(ctx context.Context, devices []model.Device, ttl time.Duration) error {
	if devices == nil {
		devices = []model.Device{}
	}

	data, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("marshalling device list: %w", err)
	}

	if err := r.client.Set(ctx, deviceListKey, data, ttl); err != nil {
		return fmt.Errorf("setting cached device list: %w", err)
	}

	return nil
}

// InvalidateAllLists drops every cached list, whatever version wrote it.
func (r *DevicesCacheRepository) InvalidateAllLists(ctx context.Context) error {
	deleted, err := r.client.DeleteByPattern(ctx, deviceListPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating all device lists: %w", err)
	}

	r.logger.Debug().Int64("deleted", deleted).Msg("device lists invalidated")

	return nil
}

func (r *DevicesCacheRepository) IsHealthy(ctx context.Context) bool {
	return r.client.IsHealthy(ctx)
}
