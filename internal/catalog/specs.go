package catalog

import (
	"math"
	"strconv"

	"github.com/architeacher/gadgets/internal/domain/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder stands in for a value the device does not have.
const Placeholder = "—"

const displayDateLayout = "January 2, 2006"

type (
	Spec struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	// Detail is everything the detail panel shows for one device.
	Detail struct {
		ID            model.DeviceID       `json:"_id"`
		Title         string               `json:"title"`
		DeviceType    model.DeviceType     `json:"device_type"`
		Status        model.Status         `json:"status"`
		Specs         []Spec               `json:"specs"`
		MainPhoto     string               `json:"main_photo,omitempty"`
		HoverPhoto    string               `json:"hover_photo,omitempty"`
		HasMainPhoto  bool                 `json:"has_main_photo"`
		HasHoverPhoto bool                 `json:"has_hover_photo"`
		HasGallery    bool                 `json:"has_gallery"`
		Gallery       []model.GalleryPhoto `json:"gallery"`
		PairedDevices []model.PairedDevice `json:"paired_devices"`
		Notes         string               `json:"notes,omitempty"`
		RepairCount   int                  `json:"repair_count"`
	}

	specCollector struct {
		specs []Spec
	}
)

// BuildSpecs projects a device into labelled rows: the base rows first, then
// the rows of its type. Rows with an empty value are dropped after the two
// groups are joined.
func BuildSpecs(device model.Device) []Spec {
	rows := []Spec{
		{Label: "Brand", Value: orPlaceholder(device.Brand)},
		{Label: "Model", Value: orPlaceholder(device.Model)},
		{Label: "Adopted", Value: FormatDate(device.AdoptedDate)},
		{Label: "Source", Value: orPlaceholder(device.Source)},
		{Label: "Purchase Price", Value: FormatPrice(device.PurchasePrice)},
		{Label: "Current Value", Value: FormatPrice(device.CurrentValue)},
	}

	// Records with an unrecognised type get no type block.
	if device.Type.IsValid() {
		collector := &specCollector{}
		device.TypeDetails().Accept(collector)
		rows = append(rows, collector.specs...)
	}

	specs := make([]Spec, 0, len(rows))
	for _, row := range rows {
		if row.Value != "" {
			specs = append(specs, row)
		}
	}

	return specs
}

func BuildDetail(device model.Device) Detail {
	mainPhoto := device.MainPhoto
	if mainPhoto == "" {
		mainPhoto = device.Thumbnail
	}

	return Detail{
		ID:            device.ID,
		Title:         device.DisplayName(),
		DeviceType:    device.Type,
		Status:        device.Status,
		Specs:         BuildSpecs(device),
		MainPhoto:     mainPhoto,
		HoverPhoto:    device.HoverPhoto,
		HasMainPhoto:  mainPhoto != "",
		HasHoverPhoto: device.HoverPhoto != "",
		HasGallery:    len(device.Gallery) > 0,
		Gallery:       nonNil(device.Gallery),
		PairedDevices: nonNil(device.PairedDevices),
		Notes:         device.Notes,
		RepairCount:   len(device.Repairs),
	}
}

// FormatPrice renders whole US dollars. Absent and zero amounts are both
// shown as the placeholder.
func FormatPrice(amount *float64) string {
	if amount == nil || *amount == 0 || math.IsNaN(*amount) {
		return Placeholder
	}

	dollars := int64(math.Round(*amount))
	printer := message.NewPrinter(language.AmericanEnglish)

	if dollars < 0 {
		return printer.Sprintf("-$%d", -dollars)
	}

	return printer.Sprintf("$%d", dollars)
}

func FormatDate(date model.Date) string {
	if date.IsZero() {
		return Placeholder
	}

	return date.Time().Format(displayDateLayout)
}

// FormatMegapixels returns an empty string for absent or zero readings.
func FormatMegapixels(megapixels *float64) string {
	if megapixels == nil || *megapixels == 0 {
		return ""
	}

	return strconv.FormatFloat(*megapixels, 'f', -1, 64) + " MP"
}

func (c *specCollector) VisitComputer(d model.ComputerDetails) {
	c.specs = append(c.specs,
		Spec{Label: "CPU", Value: d.CPU},
		Spec{Label: "RAM", Value: d.RAM},
		Spec{Label: "Storage", Value: d.Storage},
		Spec{Label: "OS", Value: d.OS},
	)
}

func (c *specCollector) VisitCamera(d model.CameraDetails) {
	c.specs = append(c.specs,
		Spec{Label: "Sensor Type", Value: d.SensorType},
		Spec{Label: "Lens Mount", Value: d.LensMount},
		Spec{Label: "Megapixels", Value: FormatMegapixels(d.Megapixels)},
		Spec{Label: "Film Type", Value: d.FilmType},
	)
}

func (c *specCollector) VisitGeneral(d model.GeneralDetails) {
	c.specs = append(c.specs,
		Spec{Label: "Battery Life", Value: d.BatteryLife},
		Spec{Label: "Connectivity", Value: d.Connectivity},
	)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}

	return s
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
