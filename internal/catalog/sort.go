package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/architeacher/gadgets/internal/domain/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type (
	SortKey   string
	SortOrder string
)

const (
	SortByAdoptedDate   SortKey = "adopted_date"
	SortByPurchasePrice SortKey = "purchase_price"
	SortByNickname      SortKey = "nickname"
	SortByBrand         SortKey = "brand"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"

	DefaultSortKey   = SortByAdoptedDate
	DefaultSortOrder = SortDesc
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByAdoptedDate, SortByPurchasePrice, SortByNickname, SortByBrand:
		return true
	default:
		return false
	}
}

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// ParseSortKey returns the default key for an empty string.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return DefaultSortKey, nil
	}

	if !key.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidSortKey, s)
	}

	return key, nil
}

// ParseSortOrder returns the default order for an empty string.
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if order == "" {
		return DefaultSortOrder, nil
	}

	if !order.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidSortOrder, s)
	}

	return order, nil
}

// Sort returns a sorted copy of devices. Ties keep their input order in both
// directions; an unknown key leaves the order unchanged.
func Sort(devices []model.Device, key SortKey, order SortOrder) []model.Device {
	sorted := slices.Clone(devices)
	if sorted == nil {
		sorted = []model.Device{}
	}

	compare := comparator(key)

	slices.SortStableFunc(sorted, func(a, b model.Device) int {
		result := compare(a, b)
		if order == SortDesc {
			return -result
		}

		return result
	})

	return sorted
}

func comparator(key SortKey) func(a, b model.Device) int {
	switch key {
	case SortByAdoptedDate:
		return func(a, b model.Device) int {
			return a.AdoptedDate.Compare(b.AdoptedDate)
		}
	case SortByPurchasePrice:
		return func(a, b model.Device) int {
			return cmp.Compare(priceOrZero(a.PurchasePrice), priceOrZero(b.PurchasePrice))
		}
	case SortByNickname:
		// Collators carry scratch buffers and are not safe to share.
		collator := newCollator()

		return func(a, b model.Device) int {
			return collator.CompareString(a.DisplayName(), b.DisplayName())
		}
	case SortByBrand:
		collator := newCollator()

		return func(a, b model.Device) int {
			return collator.CompareString(a.Brand, b.Brand)
		}
	default:
		return func(model.Device, model.Device) int { return 0 }
	}
}

func newCollator() *collate.Collator {
	return collate.New(language.English)
}

func priceOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}
