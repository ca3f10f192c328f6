package ports

import (
	"context"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
)

type (
	// DevicesAPI is the dashboard's view of the REST API.
	DevicesAPI interface {
		ListDevices(ctx context.Context) ([]model.Device, error)

		// GetDevice returns model.ErrDeviceNotFound for an unknown id.
		GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

		CreateDevice(ctx context.Context, payload catalog.Payload) (*model.Device, error)

		UpdateDevice(ctx context.Context, id model.DeviceID, payload catalog.Payload) (*model.Device, error)

		DeleteDevice(ctx context.Context, id model.DeviceID) error

		UploadPhoto(ctx context.Context, upload PhotoUpload) (string, error)
	}

	PreferencesAPI interface {
		GetPreferences(ctx context.Context) (model.Preferences, error)

		SavePreferences(ctx context.Context, prefs model.Preferences) error
	}
)
