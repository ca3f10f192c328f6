package dashboard

import (
	"context"
	"errors"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/logger"
)

var (
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrNothingToDelete    = errors.New("no saved device to delete")
	ErrUnknownPhotoField  = errors.New("unknown photo field")
)

// Photo fields a finished upload can be attached to.
const (
	PhotoThumbnail = "thumbnail"
	PhotoHover     = "hover_photo"
	PhotoMain      = "main_photo"
	PhotoGallery   = "gallery"
)

// Editor drives the add and edit pages. The form is edited in place by the
// caller; pairings are managed by the selector and merged on submit.
type Editor struct {
	Form catalog.FormState

	api     ports.DevicesAPI
	logger  logger.Logger
	mode    catalog.Mode
	id      model.DeviceID
	devices []model.Device
	pairing *catalog.PairingSelector
}

// NewEditor starts in create mode. devices are the pairing candidates.
func NewEditor(api ports.DevicesAPI, devices []model.Device, log logger.Logger) *Editor {
	form := catalog.NewFormState()

	return &Editor{
		Form:    form,
		api:     api,
		logger:  log.Component("dashboard.editor"),
		mode:    catalog.ModeCreate,
		devices: devices,
		pairing: catalog.NewPairingSelector(form.PairedDevices),
	}
}

// Load switches to edit mode for id. model.ErrDeviceNotFound is returned
// unwrapped so the page can render its empty state.
func (e *Editor) Load(ctx context.Context, id model.DeviceID) error {
	device, err := e.api.GetDevice(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDeviceNotFound) {
			return model.ErrDeviceNotFound
		}

		return newBanner(MsgDeviceFailed, err)
	}

	e.mode = catalog.ModeEdit
	e.id = device.ID
	e.Form = catalog.FormFromDevice(*device)
	e.pairing = catalog.NewPairingSelector(device.PairedDevices)

	return nil
}

func (e *Editor) Mode() catalog.Mode {
	return e.mode
}

func (e *Editor) DeviceID() model.DeviceID {
	return e.id
}

func (e *Editor) SearchPairings(query string) []model.Device {
	return e.pairing.Search(e.devices, e.id, query)
}

func (e *Editor) AddPairing(device model.Device) bool {
	return e.pairing.Add(device)
}

func (e *Editor) RemovePairing(id model.DeviceID) {
	e.pairing.Remove(id)
}

func (e *Editor) Pairings() []model.PairedDevice {
	return e.pairing.Current()
}

func (e *Editor) PairingsFull() bool {
	return e.pairing.IsFull()
}

// UploadPhoto sends the image and stores the returned URL in field. Local
// checks fail with the same messages the API uses.
func (e *Editor) UploadPhoto(ctx context.Context, field string, upload ports.PhotoUpload) (string, error) {
	if !isPhotoField(field) {
		return "", ErrUnknownPhotoField
	}

	if upload.PhotoType == "" {
		upload.PhotoType = photoType(field)
	}

	url, err := e.api.UploadPhoto(ctx, upload)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPhoto):
			return "", newBanner(MsgNotAnImage, err)
		case errors.Is(err, model.ErrPhotoTooLarge):
			return "", newBanner(MsgImageTooBig, err)
		default:
			log := e.logger.WithContext(ctx)
			log.Error().Err(err).Str("field", field).Msg("photo upload failed")

			return "", newBanner(MsgUploadFailed, err)
		}
	}

	e.AttachPhoto(field, url)

	return url, nil
}

func (e *Editor) AttachPhoto(field, url string) {
	switch field {
	case PhotoThumbnail:
		e.Form.Thumbnail = url
	case PhotoHover:
		e.Form.HoverPhoto = url
	case PhotoMain:
		e.Form.MainPhoto = url
	case PhotoGallery:
		e.Form.Gallery = append(e.Form.Gallery, model.GalleryPhoto{URL: url})
	}
}

// RemovePhoto clears a single photo field, or drops one gallery entry by URL.
func (e *Editor) RemovePhoto(field, url string) {
	switch field {
	case PhotoThumbnail:
		e.Form.Thumbnail = ""
	case PhotoHover:
		e.Form.HoverPhoto = ""
	case PhotoMain:
		e.Form.MainPhoto = ""
	case PhotoGallery:
		gallery := make([]model.GalleryPhoto, 0, len(e.Form.Gallery))
		for _, photo := range e.Form.Gallery {
			if photo.URL != url {
				gallery = append(gallery, photo)
			}
		}

		e.Form.Gallery = gallery
	}
}

// Submit validates and assembles the form, then creates or replaces the
// device. Validation failures are returned before any request is sent.
func (e *Editor) Submit(ctx context.Context) (*model.Device, error) {
	e.Form.PairedDevices = e.pairing.Current()

	payload, err := catalog.Assemble(e.Form, e.mode)
	if err != nil {
		return nil, err
	}

	if e.mode == catalog.ModeEdit {
		device, err := e.api.UpdateDevice(ctx, e.id, payload)
		if err != nil {
			return nil, e.fail(ctx, MsgUpdateFailed, err)
		}

		return device, nil
	}

	device, err := e.api.CreateDevice(ctx, payload)
	if err != nil {
		return nil, e.fail(ctx, MsgCreateFailed, err)
	}

	return device, nil
}

// Delete removes the loaded device once the user confirmed.
func (e *Editor) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}

	if e.mode != catalog.ModeEdit {
		return ErrNothingToDelete
	}

	if err := e.api.DeleteDevice(ctx, e.id); err != nil {
		return e.fail(ctx, MsgDeleteFailed, err)
	}

	return nil
}

func (e *Editor) fail(ctx context.Context, message string, err error) error {
	log := e.logger.WithContext(ctx)
	log.Error().Err(err).Str("mode", e.mode.String()).Str("device_id", e.id.String()).Msg(message)

	return newBanner(message, err)
}

func isPhotoField(field string) bool {
	switch field {
	case PhotoThumbnail, PhotoHover, PhotoMain, PhotoGallery:
		return true
	default:
		return false
	}
}

func photoType(field string) string {
	switch field {
	case PhotoHover:
		return "hover"
	case PhotoMain:
		return "main"
	default:
		return field
	}
}
