package catalog

import (
	"strconv"
	"strings"

	"github.com/architeacher/gadgets/internal/domain/model"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}

	return "create"
}

type (
	// FormState is the raw text of the add/edit form.
	FormState struct {
		Nickname      string
		Model         string
		Brand         string
		DeviceType    string
		Status        string
		AdoptedDate   string
		PurchasePrice string
		CurrentValue  string
		Source        string
		Notes         string
		Thumbnail     string
		HoverPhoto    string
		MainPhoto     string
		Gallery       []model.GalleryPhoto
		PairedDevices []model.PairedDevice

		CPU          string
		RAM          string
		Storage      string
		OS           string
		SensorType   string
		LensMount    string
		Megapixels   string
		FilmType     string
		BatteryLife  string
		Connectivity string
	}

	// Payload is the body sent on create and on full replacement. Empty base
	// fields are sent as null while empty type-specific fields are left out.
	Payload struct {
		Nickname      string               `json:"nickname"`
		Model         string               `json:"model"`
		Brand         string               `json:"brand"`
		DeviceType    string               `json:"device_type"`
		Status        string               `json:"status"`
		AdoptedDate   string               `json:"adopted_date"`
		PurchasePrice float64              `json:"purchase_price"`
		CurrentValue  *float64             `json:"current_value,omitempty"`
		Source        string               `json:"source"`
		Notes         *string              `json:"notes"`
		Thumbnail     *string              `json:"thumbnail"`
		HoverPhoto    *string              `json:"hover_photo"`
		MainPhoto     *string              `json:"main_photo,omitempty"`
		Gallery       []model.GalleryPhoto `json:"gallery,omitempty"`
		PairedDevices []model.PairedDevice `json:"paired_devices"`

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
	}
)

// NewFormState is the blank add form.
func NewFormState() FormState {
	return FormState{
		DeviceType:    model.DeviceTypeComputer.String(),
		Status:        model.StatusActive.String(),
		PairedDevices: []model.PairedDevice{},
	}
}

// FormFromDevice pre-fills the edit form. The adopted date is kept as stored
// and only truncated when the form is assembled.
func FormFromDevice(device model.Device) FormState {
	fields := model.FieldsOf(device.TypeDetails())

	return FormState{
		Nickname:      device.Nickname,
		Model:         device.Model,
		Brand:         device.Brand,
		DeviceType:    device.Type.String(),
		Status:        device.Status.String(),
		AdoptedDate:   device.AdoptedDate.String(),
		PurchasePrice: formatNumber(device.PurchasePrice),
		CurrentValue:  formatNumber(device.CurrentValue),
		Source:        device.Source,
		Notes:         device.Notes,
		Thumbnail:     device.Thumbnail,
		HoverPhoto:    device.HoverPhoto,
		MainPhoto:     device.MainPhoto,
		Gallery:       device.Gallery,
		PairedDevices: nonNil(device.PairedDevices),
		CPU:           fields.CPU,
		RAM:           fields.RAM,
		Storage:       fields.Storage,
		OS:            fields.OS,
		SensorType:    fields.SensorType,
		LensMount:     fields.LensMount,
		Megapixels:    formatNumber(fields.Megapixels),
		FilmType:      fields.FilmType,
		BatteryLife:   fields.BatteryLife,
		Connectivity:  fields.Connectivity,
	}
}

// Validate reports every required field left blank and every number that
// does not parse.
func (f FormState) Validate() error {
	errs := model.NewValidationErrors()

	required := []struct {
		field string
		value string
	}{
		{"nickname", f.Nickname},
		{"brand", f.Brand},
		{"model", f.Model},
		{"device_type", f.DeviceType},
		{"adopted_date", f.AdoptedDate},
		{"purchase_price", f.PurchasePrice},
		{"source", f.Source},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, r.field+" is required", model.ValidationCodeRequired)
		}
	}

	numbers := []struct {
		field string
		value string
	}{
		{"purchase_price", f.PurchasePrice},
		{"current_value", f.CurrentValue},
		{"megapixels", f.Megapixels},
	}

	for _, n := range numbers {
		if n.value == "" {
			continue
		}

		if _, err := parseNumber(n.value); err != nil {
			errs.Add(n.field, n.field+" must be a number", model.ValidationCodeInvalid)
		}
	}

	return errs.OrNil()
}

// Assemble turns the form into the request body. Exactly one type-specific
// branch contributes fields, chosen by the device type.
func Assemble(form FormState, mode Mode) (Payload, error) {
	if err := form.Validate(); err != nil {
		return Payload{}, err
	}

	purchasePrice, _ := parseNumber(form.PurchasePrice)

	adoptedDate := form.AdoptedDate
	if mode == ModeEdit {
		adoptedDate, _, _ = strings.Cut(adoptedDate, "T")
	}

	payload := Payload{
		Nickname:      form.Nickname,
		Model:         form.Model,
		Brand:         form.Brand,
		DeviceType:    form.DeviceType,
		Status:        form.Status,
		AdoptedDate:   adoptedDate,
		PurchasePrice: purchasePrice,
		Source:        form.Source,
		Notes:         nullIfEmpty(form.Notes),
		Thumbnail:     nullIfEmpty(form.Thumbnail),
		HoverPhoto:    nullIfEmpty(form.HoverPhoto),
		MainPhoto:     nullIfEmpty(form.MainPhoto),
		Gallery:       form.Gallery,
		PairedDevices: nonNil(form.PairedDevices),
	}

	if form.CurrentValue != "" {
		value, _ := parseNumber(form.CurrentValue)
		payload.CurrentValue = &value
	}

	form.typeDetails().Accept(&payloadDetails{payload: &payload})

	return payload, nil
}

// typeDetails keeps only the fields of the variant picked by the device type.
func (f FormState) typeDetails() model.Details {
	fields := model.DetailFields{
		CPU:          f.CPU,
		RAM:          f.RAM,
		Storage:      f.Storage,
		OS:           f.OS,
		SensorType:   f.SensorType,
		LensMount:    f.LensMount,
		FilmType:     f.FilmType,
		BatteryLife:  f.BatteryLife,
		Connectivity: f.Connectivity,
	}

	if f.Megapixels != "" {
		megapixels, _ := parseNumber(f.Megapixels)
		fields.Megapixels = &megapixels
	}

	return model.NewDetails(model.DeviceType(f.DeviceType), fields)
}

// payloadDetails copies one variant into the type-specific payload fields.
type payloadDetails struct {
	payload *Payload
}

func (p *payloadDetails) VisitComputer(d model.ComputerDetails) {
	p.payload.CPU = d.CPU
	p.payload.RAM = d.RAM
	p.payload.Storage = d.Storage
	p.payload.OS = d.OS
}

func (p *payloadDetails) VisitCamera(d model.CameraDetails) {
	p.payload.SensorType = d.SensorType
	p.payload.LensMount = d.LensMount
	p.payload.Megapixels = d.Megapixels
	p.payload.FilmType = d.FilmType
}

func (p *payloadDetails) VisitGeneral(d model.GeneralDetails) {
	p.payload.BatteryLife = d.BatteryLife
	p.payload.Connectivity = d.Connectivity
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}

	return v, nil
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}

	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
