package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// deviceDocument is the flat wire shape of a device. Type-specific fields
// live at the top level next to the common ones.
type deviceDocument struct {
	ID            DeviceID       `json:"_id,omitempty"`
	Nickname      string         `json:"nickname"`
	Model         string         `json:"model"`
	Brand         string         `json:"brand"`
	DeviceType    DeviceType     `json:"device_type"`
	Status        Status         `json:"status"`
	AdoptedDate   Date           `json:"adopted_date"`
	PurchasePrice *float64       `json:"purchase_price"`
	CurrentValue  *float64       `json:"current_value"`
	Source        string         `json:"source"`
	Notes         *string        `json:"notes"`
	Thumbnail     *string        `json:"thumbnail"`
	HoverPhoto    *string        `json:"hover_photo"`
	MainPhoto     *string        `json:"main_photo"`
	Gallery       []GalleryPhoto `json:"gallery"`
	PairedDevices []PairedDevice `json:"paired_devices"`
	Repairs       []RepairEvent  `json:"repairs"`

	CPU          string   `json:"cpu,omitempty"`
	RAM          string   `json:"ram,omitempty"`
	Storage      string   `json:"storage,omitempty"`
	OS           string   `json:"os,omitempty"`
	SensorType   string   `json:"sensor_type,omitempty"`
	LensMount    string   `json:"lens_mount,omitempty"`
	Megapixels   *float64 `json:"megapixels,omitempty"`
	FilmType     string   `json:"film_type,omitempty"`
	BatteryLife  string   `json:"battery_life,omitempty"`
	Connectivity string   `json:"connectivity,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (d Device) MarshalJSON() ([]byte, error) {
	fields := FieldsOf(d.TypeDetails())

	doc := deviceDocument{
		ID:            d.ID,
		Nickname:      d.Nickname,
		Model:         d.Model,
		Brand:         d.Brand,
		DeviceType:    d.Type,
		Status:        d.Status,
		AdoptedDate:   d.AdoptedDate,
		PurchasePrice: d.PurchasePrice,
		CurrentValue:  d.CurrentValue,
		Source:        d.Source,
		Notes:         nullableString(d.Notes),
		Thumbnail:     nullableString(d.Thumbnail),
		HoverPhoto:    nullableString(d.HoverPhoto),
		MainPhoto:     nullableString(d.MainPhoto),
		Gallery:       nonNil(d.Gallery),
		PairedDevices: nonNil(d.PairedDevices),
		Repairs:       nonNil(d.Repairs),
		CPU:           fields.CPU,
		RAM:           fields.RAM,
		Storage:       fields.Storage,
		OS:            fields.OS,
		SensorType:    fields.SensorType,
		LensMount:     fields.LensMount,
		Megapixels:    fields.Megapixels,
		FilmType:      fields.FilmType,
		BatteryLife:   fields.BatteryLife,
		Connectivity:  fields.Connectivity,
	}

	if !d.CreatedAt.IsZero() {
		doc.CreatedAt = &d.CreatedAt
	}

	if !d.UpdatedAt.IsZero() {
		doc.UpdatedAt = &d.UpdatedAt
	}

	return json.Marshal(doc)
}

// UnmarshalJSON accepts records as stored, including legacy device types and
// unknown statuses. Enum checks belong to validation, not decoding.
func (d *Device) UnmarshalJSON(data []byte) error {
	var doc deviceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding device: %w", err)
	}

	*d = Device{
		ID: doc.ID,
		DeviceAttributes: DeviceAttributes{
			Nickname:      doc.Nickname,
			Model:         doc.Model,
			Brand:         doc.Brand,
			Type:          doc.DeviceType,
			Status:        doc.Status,
			AdoptedDate:   doc.AdoptedDate,
			PurchasePrice: doc.PurchasePrice,
			CurrentValue:  doc.CurrentValue,
			Source:        doc.Source,
			Notes:         valueOf(doc.Notes),
			Thumbnail:     valueOf(doc.Thumbnail),
			HoverPhoto:    valueOf(doc.HoverPhoto),
			MainPhoto:     valueOf(doc.MainPhoto),
			Gallery:       doc.Gallery,
			PairedDevices: doc.PairedDevices,
			Repairs:       doc.Repairs,
			Details: NewDetails(doc.DeviceType, DetailFields{
				CPU:          doc.CPU,
				RAM:          doc.RAM,
				Storage:      doc.Storage,
				OS:           doc.OS,
				SensorType:   doc.SensorType,
				LensMount:    doc.LensMount,
				Megapixels:   doc.Megapixels,
				FilmType:     doc.FilmType,
				BatteryLife:  doc.BatteryLife,
				Connectivity: doc.Connectivity,
			}),
		},
	}

	if doc.CreatedAt != nil {
		d.CreatedAt = *doc.CreatedAt
	}

	if doc.UpdatedAt != nil {
		d.UpdatedAt = *doc.UpdatedAt
	}

	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
