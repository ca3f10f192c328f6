package catalog_test

import (
	"github.com/architeacher/gadgets/internal/domain/model"
)

func ptr(v float64) *float64 {
	return &v
}

func device(id, nickname, brand string, deviceType model.DeviceType, status model.Status, price *float64) model.Device {
	return model.Device{
		ID: model.DeviceID(id),
		DeviceAttributes: model.DeviceAttributes{
			Nickname:      nickname,
			Model:         nickname + " model",
			Brand:         brand,
			Type:          deviceType,
			Status:        status,
			PurchasePrice: price,
		},
	}
}

func nicknames(devices []model.Device) []string {
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Nickname)
	}

	return names
}

func scenarioDevices() []model.Device {
	return []model.Device{
		device("1", "Old Mac", "Apple", model.DeviceTypeComputer, model.StatusRetired, ptr(800)),
		device("2", "Canon", "Canon", model.DeviceTypeCamera, model.StatusActive, ptr(450)),
	}
}
