package model_test

import (
	"testing"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		input       string
		expected    model.Status
		expectError bool
	}{
		{name: "active", input: "active", expected: model.StatusActive},
		{name: "mixed case with spaces", input: " Retired ", expected: model.StatusRetired},
		{name: "repairing", input: "repairing", expected: model.StatusRepairing},
		{name: "unknown", input: "lost", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, err := model.ParseStatus(tc.input)

			if tc.expectError {
				require.ErrorIs(t, err, model.ErrInvalidStatus)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, status)
		})
	}
}

func TestParseDeviceType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		input       string
		expected    model.DeviceType
		expectError bool
	}{
		{name: "computer", input: "computer", expected: model.DeviceTypeComputer},
		{name: "legacy misc", input: "misc", expected: model.DeviceTypeMisc},
		{name: "upper case", input: "CAMERA", expected: model.DeviceTypeCamera},
		{name: "unknown", input: "robot", expectError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deviceType, err := model.ParseDeviceType(tc.input)

			if tc.expectError {
				require.ErrorIs(t, err, model.ErrInvalidDeviceType)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, deviceType)
		})
	}
}

func TestDeviceType_Canonical(t *testing.T) {
	t.Parallel()

	require.Equal(t, model.DeviceTypeMiscellaneous, model.DeviceTypeMisc.Canonical())
	require.Equal(t, model.DeviceTypeCamera, model.DeviceTypeCamera.Canonical())
	require.True(t, model.DeviceTypeMisc.IsMiscellaneous())
	require.False(t, model.DeviceTypeAppliance.IsMiscellaneous())
	require.NotContains(t, model.AllDeviceTypes(), model.DeviceTypeMisc)
}

func TestNewDetails(t *testing.T) {
	t.Parallel()

	mp := 24.2
	fields := model.DetailFields{
		CPU:          "M1",
		SensorType:   "APS-C",
		Megapixels:   &mp,
		BatteryLife:  "10h",
		Connectivity: "Bluetooth",
	}

	cases := []struct {
		name       string
		deviceType model.DeviceType
		expected   model.Details
	}{
		{
			name:       "computer keeps computer fields",
			deviceType: model.DeviceTypeComputer,
			expected:   model.ComputerDetails{CPU: "M1"},
		},
		{
			name:       "camera keeps camera fields",
			deviceType: model.DeviceTypeCamera,
			expected:   model.CameraDetails{SensorType: "APS-C", Megapixels: &mp},
		},
		{
			name:       "appliance is general",
			deviceType: model.DeviceTypeAppliance,
			expected:   model.GeneralDetails{BatteryLife: "10h", Connectivity: "Bluetooth"},
		},
		{
			name:       "legacy misc is general",
			deviceType: model.DeviceTypeMisc,
			expected:   model.GeneralDetails{BatteryLife: "10h", Connectivity: "Bluetooth"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			details := model.NewDetails(tc.deviceType, fields)

			require.Equal(t, tc.expected, details)
			require.Equal(t, details, model.NewDetails(tc.deviceType, model.FieldsOf(details)))
		})
	}
}

func TestFieldsOf_Nil(t *testing.T) {
	t.Parallel()

	require.Equal(t, model.DetailFields{}, model.FieldsOf(nil))
}
