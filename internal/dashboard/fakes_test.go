package dashboard_test

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type fakeAPI struct {
	mu sync.Mutex

	ListDevicesFunc  func(context.Context) ([]model.Device, error)
	GetDeviceFunc    func(context.Context, model.DeviceID) (*model.Device, error)
	CreateDeviceFunc func(context.Context, catalog.Payload) (*model.Device, error)
	UpdateDeviceFunc func(context.Context, model.DeviceID, catalog.Payload) (*model.Device, error)
	DeleteDeviceFunc func(context.Context, model.DeviceID) error
	UploadPhotoFunc  func(context.Context, ports.PhotoUpload) (string, error)

	calls map[string]int
}

var _ ports.DevicesAPI = (*fakeAPI)(nil)

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = make(map[string]int)
	}

	f.calls[name]++
}

func (f *fakeAPI) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[name]
}

func (f *fakeAPI) ListDevices(ctx context.Context) ([]model.Device, error) {
	f.record("ListDevices")

	return f.ListDevicesFunc(ctx)
}

func (f *fakeAPI) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	f.record("GetDevice")

	return f.GetDeviceFunc(ctx, id)
}

func (f *fakeAPI) CreateDevice(ctx context.Context, payload catalog.Payload) (*model.Device, error) {
	f.record("CreateDevice")

	return f.CreateDeviceFunc(ctx, payload)
}

func (f *fakeAPI) UpdateDevice(ctx context.Context, id model.DeviceID, payload catalog.Payload) (*model.Device, error) {
	f.record("UpdateDevice")

	return f.UpdateDeviceFunc(ctx, id, payload)
}

func (f *fakeAPI) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	f.record("DeleteDevice")

	return f.DeleteDeviceFunc(ctx, id)
}

func (f *fakeAPI) UploadPhoto(ctx context.Context, upload ports.PhotoUpload) (string, error) {
	f.record("UploadPhoto")

	return f.UploadPhotoFunc(ctx, upload)
}

type fakePreferences struct {
	GetFunc  func(context.Context) (model.Preferences, error)
	SaveFunc func(context.Context, model.Preferences) error

	saved []model.Preferences
}

func (f *fakePreferences) GetPreferences(ctx context.Context) (model.Preferences, error) {
	return f.GetFunc(ctx)
}

func (f *fakePreferences) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	f.saved = append(f.saved, prefs)

	if f.SaveFunc == nil {
		return nil
	}

	return f.SaveFunc(ctx, prefs)
}

func price(v float64) *float64 {
	return &v
}

func sampleDevices() []model.Device {
	return []model.Device{
		{
			ID: "0190a5b2-1111-7222-8333-444455556666",
			DeviceAttributes: model.DeviceAttributes{
				Nickname:      "Leica",
				Model:         "M6",
				Brand:         "Leica",
				Type:          model.DeviceTypeCamera,
				Status:        model.StatusActive,
				AdoptedDate:   model.NewDate(2021, 3, 4),
				PurchasePrice: price(1800),
				Source:        "eBay",
			},
		},
		{
			ID: "0190a5b2-2222-7222-8333-444455556666",
			DeviceAttributes: model.DeviceAttributes{
				Nickname:      "Thinkpad",
				Model:         "X220",
				Brand:         "Lenovo",
				Type:          model.DeviceTypeComputer,
				Status:        model.StatusRetired,
				AdoptedDate:   model.NewDate(2019, 6, 1),
				PurchasePrice: price(250),
				Source:        "Craigslist",
			},
		},
		{
			ID: "0190a5b2-3333-7222-8333-444455556666",
			DeviceAttributes: model.DeviceAttributes{
				Nickname:      "Walkman",
				Model:         "WM-2",
				Brand:         "Sony",
				Type:          model.DeviceTypeMisc,
				Status:        model.StatusActive,
				AdoptedDate:   model.NewDate(2023, 1, 15),
				PurchasePrice: price(90),
				Source:        "Flea market",
			},
		},
	}
}
