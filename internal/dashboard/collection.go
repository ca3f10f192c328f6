package dashboard

import (
	"context"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/logger"
)

// Collection is the full device list fetched once per page visit. Views are
// derived from it locally. It is not safe for concurrent use.
type Collection struct {
	api     ports.DevicesAPI
	logger  logger.Logger
	devices []model.Device
	loaded  bool
}

func NewCollection(api ports.DevicesAPI, log logger.Logger) *Collection {
	return &Collection{
		api:    api,
		logger: log.Component("dashboard.collection"),
	}
}

// Load fetches the devices unless a previous call already succeeded. A
// failure leaves the collection empty so Load can simply be called again.
func (c *Collection) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	devices, err := c.api.ListDevices(ctx)
	if err != nil {
		log := c.logger.WithContext(ctx)
		log.Error().Err(err).Msg("failed to load devices")

		return newBanner(MsgLoadFailed, err)
	}

	c.devices = devices
	c.loaded = true

	return nil
}

// Reload drops the cached list and fetches it again.
func (c *Collection) Reload(ctx context.Context) error {
	c.loaded = false
	c.devices = nil

	return c.Load(ctx)
}

func (c *Collection) Loaded() bool {
	return c.loaded
}

func (c *Collection) Devices() []model.Device {
	return c.devices
}

func (c *Collection) Visible(filters Filters) []model.Device {
	return filters.Apply(c.devices)
}

func (c *Collection) Sorted(key catalog.SortKey, order catalog.SortOrder) []model.Device {
	return catalog.Sort(c.devices, key, order)
}

// View filters first and sorts what is left.
func (c *Collection) View(filters Filters, key catalog.SortKey, order catalog.SortOrder) []model.Device {
	return catalog.Sort(c.Visible(filters), key, order)
}

func (c *Collection) Stats() catalog.Stats {
	return catalog.Summarize(c.devices)
}

// Find looks a device up in the loaded list.
func (c *Collection) Find(id model.DeviceID) (model.Device, bool) {
	for _, device := range c.devices {
		if device.ID == id {
			return device, true
		}
	}

	return model.Device{}, false
}
