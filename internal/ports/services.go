package ports

import (
	"context"
	"io"

	"github.com/architeacher/gadgets/internal/domain/model"
)

type (
	// DevicesService defines the device business operations.
	DevicesService interface {
		CreateDevice(ctx context.Context, attrs model.DeviceAttributes) (*model.Device, error)

		GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error)

		ListDevices(ctx context.Context) ([]model.Device, error)

		// UpdateDevice replaces every attribute of the device.
		UpdateDevice(ctx context.Context, id model.DeviceID, attrs model.DeviceAttributes) (*model.Device, error)

		DeleteDevice(ctx context.Context, id model.DeviceID) error
	}

	PhotoUpload struct {
		Filename    string
		ContentType string
		Size        int64
		PhotoType   string
		Content     io.Reader
	}

	PhotosService interface {
		// UploadPhoto checks the image and stores it, returning its public URL.
		UploadPhoto(ctx context.Context, upload PhotoUpload) (string, error)

		OpenPhoto(ctx context.Context, name string) (*Photo, error)
	}
)
