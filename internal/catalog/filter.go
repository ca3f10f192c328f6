// Package catalog holds the pure transformations applied to the device
// collection: filtering, sorting, detail projection, form assembly and
// pairing selection. Nothing here performs I/O.
package catalog

import (
	"strings"

	"github.com/architeacher/gadgets/internal/domain/model"
)

// FilterAll disables the category or status predicate.
const FilterAll = "all"

// MatchesQuery reports whether query is a case-insensitive substring of the
// device nickname, model or brand. An empty query matches everything.
func MatchesQuery(device model.Device, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)

	return strings.Contains(strings.ToLower(device.Nickname), q) ||
		strings.Contains(strings.ToLower(device.Model), q) ||
		strings.Contains(strings.ToLower(device.Brand), q)
}

func MatchesCategory(device model.Device, category string) bool {
	switch category {
	case FilterAll:
		return true
	case model.DeviceTypeMiscellaneous.String():
		return device.Type.IsMiscellaneous()
	default:
		return device.Type.String() == category
	}
}

func MatchesStatus(device model.Device, status string) bool {
	return status == FilterAll || device.Status.String() == status
}

// Filter keeps the devices satisfying all three predicates, in input order.
// Unknown categories or statuses simply match nothing.
func Filter(devices []model.Device, query, category, status string) []model.Device {
	filtered := make([]model.Device, 0, len(devices))

	for _, device := range devices {
		if MatchesQuery(device, query) && MatchesCategory(device, category) && MatchesStatus(device, status) {
			filtered = append(filtered, device)
		}
	}

	return filtered
}
