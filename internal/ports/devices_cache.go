package ports

import (
	"context"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
)

// DevicesCache keeps device reads away from the database.
type DevicesCache interface {
	// GetDevice reports false when the device is not cached.
	GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, bool, error)

	SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error

	InvalidateDevice(ctx context.Context, id model.DeviceID) error

	// GetDeviceList reports false when the list is not cached.
	GetDeviceList(ctx context.Context) ([]model.Device, bool, error)

	SetDeviceList(ctx context.Context, devices []model.Device, ttl time.Duration) error

	InvalidateAllLists(ctx context.Context) error

	IsHealthy(ctx context.Context) bool
}
