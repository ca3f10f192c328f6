package model

import (
	"fmt"
	"strings"
)

type DeviceType string

const (
	DeviceTypeComputer      DeviceType = "computer"
	DeviceTypeCamera        DeviceType = "camera"
	DeviceTypeAppliance     DeviceType = "appliance"
	DeviceTypeMiscellaneous DeviceType = "miscellaneous"

	// DeviceTypeMisc is the legacy spelling of DeviceTypeMiscellaneous still
	// found on older records.
	DeviceTypeMisc DeviceType = "misc"
)

func (t DeviceType) String() string {
	return string(t)
}

func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypeComputer, DeviceTypeCamera, DeviceTypeAppliance, DeviceTypeMiscellaneous, DeviceTypeMisc:
		return true
	default:
		return false
	}
}

func (t DeviceType) IsMiscellaneous() bool {
	return t == DeviceTypeMiscellaneous || t == DeviceTypeMisc
}

// Canonical folds the legacy alias into its current spelling.
func (t DeviceType) Canonical() DeviceType {
	if t == DeviceTypeMisc {
		return DeviceTypeMiscellaneous
	}

	return t
}

func ParseDeviceType(s string) (DeviceType, error) {
	deviceType := DeviceType(strings.ToLower(strings.TrimSpace(s)))
	if !deviceType.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidDeviceType, s)
	}

	return deviceType, nil
}

// AllDeviceTypes lists the selectable categories; the legacy alias is not offered.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{DeviceTypeComputer, DeviceTypeCamera, DeviceTypeAppliance, DeviceTypeMiscellaneous}
}
