package ports

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
)

type (
	Saver interface {
		// Create stores a new device.
		Create(ctx context.Context, device *model.Device) error
	}

	Fetcher interface {
		// FetchByID returns model.ErrDeviceNotFound when no device has the id.
		FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error)
	}

	Finder interface {
		// List returns every device, newest adoption first.
		List(ctx context.Context) ([]model.Device, error)
	}

	Updater interface {
		// Update replaces every attribute of an existing device.
		Update(ctx context.Context, device *model.Device) error
	}

	Deleter interface {
		Delete(ctx context.Context, id model.DeviceID) error
	}

	// DevicesRepository defines the interface for device persistence operations.
	DevicesRepository interface {
		Saver
		Fetcher
		Finder
		Updater
		Deleter
	}
)
