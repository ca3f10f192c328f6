package dashboard

import (
	"net/url"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/domain/model"
)

const (
	paramCategory = "category"
	paramStatus   = "status"
)

// Filters is the search box plus the two selects. Category and status are
// mirrored in the page query string; the search text is not.
type Filters struct {
	Query    string
	Category string
	Status   string
}

func NewFilters() Filters {
	return Filters{Category: catalog.FilterAll, Status: catalog.FilterAll}
}

// FiltersFromQuery reads category and status, treating absent or empty
// parameters as all.
func FiltersFromQuery(values url.Values) Filters {
	filters := NewFilters()

	if category := values.Get(paramCategory); category != "" {
		filters.Category = category
	}

	if status := values.Get(paramStatus); status != "" {
		filters.Status = status
	}

	return filters
}

// Values holds only the filters that narrow the collection.
func (f Filters) Values() url.Values {
	values := url.Values{}

	if f.Category != "" && f.Category != catalog.FilterAll {
		values.Set(paramCategory, f.Category)
	}

	if f.Status != "" && f.Status != catalog.FilterAll {
		values.Set(paramStatus, f.Status)
	}

	return values
}

func (f Filters) Clear() Filters {
	return NewFilters()
}

func (f Filters) HasActive() bool {
	return f.Query != "" || len(f.Values()) > 0
}

func (f Filters) Apply(devices []model.Device) []model.Device {
	return catalog.Filter(devices, f.Query, orAll(f.Category), orAll(f.Status))
}

func orAll(s string) string {
	if s == "" {
		return catalog.FilterAll
	}

	return s
}
