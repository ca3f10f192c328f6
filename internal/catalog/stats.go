package catalog

import "github.com/architeacher/gadgets/internal/domain/model"

type Stats struct {
	Total           int                      `json:"total"`
	TotalInvestment float64                  `json:"total_investment"`
	Active          int                      `json:"active"`
	Retired         int                      `json:"retired"`
	Repairing       int                      `json:"repairing"`
	ByType          map[model.DeviceType]int `json:"by_type"`
}

// Summarize counts legacy misc records as miscellaneous.
func Summarize(devices []model.Device) Stats {
	stats := Stats{
		Total:  len(devices),
		ByType: make(map[model.DeviceType]int, len(model.AllDeviceTypes())),
	}

	for _, deviceType := range model.AllDeviceTypes() {
		stats.ByType[deviceType] = 0
	}

	for _, device := range devices {
		stats.TotalInvestment += priceOrZero(device.PurchasePrice)

		switch device.Status {
		case model.StatusActive:
			stats.Active++
		case model.StatusRetired:
			stats.Retired++
		case model.StatusRepairing:
			stats.Repairing++
		}

		if device.Type.IsValid() {
			stats.ByType[device.Type.Canonical()]++
		}
	}

	return stats
}
