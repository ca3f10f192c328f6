package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPairings bounds the number of paired devices a record may reference.
const MaxPairings = 3

// DeviceID is opaque. New records get UUIDv7 strings, imported ones keep
// whatever identifier they came with.
type DeviceID string

func NewDeviceID() DeviceID {
	return DeviceID(uuid.Must(uuid.NewV7()).String())
}

// ParseDeviceID only rejects blank identifiers. Unknown ones are left to the
// store, which reports them as ErrDeviceNotFound.
func ParseDeviceID(s string) (DeviceID, error) {
	id := strings.TrimSpace(s)
	if id == "" {
		return "", ErrInvalidDeviceID
	}

	return DeviceID(id), nil
}

func (d DeviceID) String() string {
	return string(d)
}

func (d DeviceID) IsZero() bool {
	return d == ""
}

type (
	PairedDevice struct {
		DeviceID DeviceID `json:"device_id"`
		Nickname string   `json:"nickname"`
		Model    string   `json:"model"`
	}

	GalleryPhoto struct {
		URL            string   `json:"url"`
		Caption        string   `json:"caption,omitempty"`
		PairedDeviceID DeviceID `json:"paired_device_id,omitempty"`
	}

	RepairPart struct {
		Name string  `json:"name"`
		Cost float64 `json:"cost"`
	}

	RepairEvent struct {
		Date              time.Time    `json:"date"`
		Type              string       `json:"type"`
		Description       string       `json:"description"`
		PartsUsed         []RepairPart `json:"parts_used"`
		TimeSpent         float64      `json:"time_spent"`
		PhotosBeforeAfter []string     `json:"photos_before_after"`
	}

	// DeviceAttributes is everything a client may set on a device.
	DeviceAttributes struct {
		Nickname      string
		Model         string
		Brand         string
		Type          DeviceType
		Status        Status
		AdoptedDate   Date
		PurchasePrice *float64
		CurrentValue  *float64
		Source        string
		Notes         string
		Thumbnail     string
		HoverPhoto    string
		MainPhoto     string
		Gallery       []GalleryPhoto
		Details       Details
		PairedDevices []PairedDevice
		Repairs       []RepairEvent
	}

	Device struct {
		ID DeviceID
		DeviceAttributes
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

func NewDevice(attrs DeviceAttributes) *Device {
	now := time.Now().UTC()

	return &Device{
		ID:               NewDeviceID(),
		DeviceAttributes: attrs.normalized(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Replace overwrites every client-settable attribute. Edits are never partial.
func (d *Device) Replace(attrs DeviceAttributes) error {
	if err := ValidateAttributes(attrs, d.ID); err != nil {
		return err
	}

	// The edit form never carries the repair log.
	if attrs.Repairs == nil {
		attrs.Repairs = d.Repairs
	}

	d.DeviceAttributes = attrs.normalized()
	d.UpdatedAt = time.Now().UTC()

	return nil
}

// DisplayName is the nickname, falling back to the model.
func (d Device) DisplayName() string {
	if d.Nickname != "" {
		return d.Nickname
	}

	return d.Model
}

// TypeDetails never returns nil, so visitors can always be applied.
func (a DeviceAttributes) TypeDetails() Details {
	if a.Details == nil {
		return NewDetails(a.Type, DetailFields{})
	}

	return a.Details
}

// PairingReference is the lightweight reference stored on other devices.
func (d Device) PairingReference() PairedDevice {
	return PairedDevice{
		DeviceID: d.ID,
		Nickname: d.Nickname,
		Model:    d.Model,
	}
}

func (d Device) IsPairedWith(id DeviceID) bool {
	for _, p := range d.PairedDevices {
		if p.DeviceID == id {
			return true
		}
	}

	return false
}

func (a DeviceAttributes) normalized() DeviceAttributes {
	if a.Status == "" {
		a.Status = StatusActive
	}

	// Re-tagging drops any attribute that does not belong to the device type.
	a.Details = NewDetails(a.Type, FieldsOf(a.Details))

	if a.Gallery == nil {
		a.Gallery = []GalleryPhoto{}
	}

	if a.PairedDevices == nil {
		a.PairedDevices = []PairedDevice{}
	}

	if a.Repairs == nil {
		a.Repairs = []RepairEvent{}
	}

	return a
}

// ValidateAttributes checks the invariants every stored device satisfies.
// self is empty while the device is being created.
func ValidateAttributes(attrs DeviceAttributes, self DeviceID) error {
	errs := NewValidationErrors()

	required := []struct {
		field string
		value string
	}{
		{"nickname", attrs.Nickname},
		{"model", attrs.Model},
		{"brand", attrs.Brand},
		{"device_type", attrs.Type.String()},
		{"source", attrs.Source},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, r.field+" is required", ValidationCodeRequired)
		}
	}

	if attrs.Type != "" && !attrs.Type.IsValid() {
		errs.Add("device_type", ErrInvalidDeviceType.Error(), ValidationCodeInvalid)
	}

	if attrs.Status != "" && !attrs.Status.IsValid() {
		errs.Add("status", ErrInvalidStatus.Error(), ValidationCodeInvalid)
	}

	if attrs.AdoptedDate.IsZero() {
		errs.Add("adopted_date", "adopted_date is required", ValidationCodeRequired)
	}

	switch {
	case attrs.PurchasePrice == nil:
		errs.Add("purchase_price", "purchase_price is required", ValidationCodeRequired)
	case *attrs.PurchasePrice < 0:
		errs.Add("purchase_price", "purchase_price must not be negative", ValidationCodeMin)
	}

	if attrs.CurrentValue != nil && *attrs.CurrentValue < 0 {
		errs.Add("current_value", "current_value must not be negative", ValidationCodeMin)
	}

	if len(attrs.PairedDevices) > MaxPairings {
		errs.Add("paired_devices", ErrTooManyPairings.Error(), ValidationCodeMax)
	}

	for _, p := range attrs.PairedDevices {
		if p.DeviceID.IsZero() {
			errs.Add("paired_devices", "paired device_id is required", ValidationCodeRequired)

			continue
		}

		if !self.IsZero() && p.DeviceID == self {
			errs.Add("paired_devices", ErrSelfPairing.Error(), ValidationCodeInvalid)
		}
	}

	return errs.OrNil()
}
