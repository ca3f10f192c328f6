package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/mocks"
	"github.com/architeacher/gadgets/internal/services"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 {
	return &v
}

func attributes() model.DeviceAttributes {
	return model.DeviceAttributes{
		Nickname:      "Bondi",
		Model:         "iMac G3",
		Brand:         "Apple",
		Type:          model.DeviceTypeComputer,
		Status:        model.StatusActive,
		AdoptedDate:   model.NewDate(2021, time.March, 14),
		PurchasePrice: price(120),
		Source:        "flea market",
	}
}

func TestDevicesService_CreateDevice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		attrs       func() model.DeviceAttributes
		repoErr     error
		expectErr   bool
		expectSaved bool
	}{
		{
			name:        "valid device is stored",
			attrs:       attributes,
			expectSaved: true,
		},
		{
			name: "negative price is rejected before storing",
			attrs: func() model.DeviceAttributes {
				attrs := attributes()
				attrs.PurchasePrice = price(-1)

				return attrs
			},
			expectErr: true,
		},
		{
			name: "too many pairings are rejected",
			attrs: func() model.DeviceAttributes {
				attrs := attributes()
				for _, id := range []string{"a", "b", "c", "d"} {
					attrs.PairedDevices = append(attrs.PairedDevices, model.PairedDevice{DeviceID: model.DeviceID(id)})
				}

				return attrs
			},
			expectErr: true,
		},
		{
			name:        "repository failure is returned",
			attrs:       attributes,
			repoErr:     model.ErrDatabaseQuery,
			expectErr:   true,
			expectSaved: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := &mocks.FakeDevicesRepository{}
			repo.CreateReturns(tc.repoErr)

			device, err := services.NewDevicesService(repo).CreateDevice(context.Background(), tc.attrs())

			if tc.expectSaved {
				require.Equal(t, 1, repo.CreateCallCount())
			} else {
				require.Zero(t, repo.CreateCallCount())
			}

			if tc.expectErr {
				require.Error(t, err)
				require.Nil(t, device)

				return
			}

			require.NoError(t, err)
			require.False(t, device.ID.IsZero())
			require.Equal(t, "Bondi", device.Nickname)
			require.Equal(t, device, repo.CreateArgsForCall(0))
		})
	}
}

func TestDevicesService_UpdateDevice(t *testing.T) {
	t.Parallel()

	existing := model.NewDevice(attributes())

	cases := []struct {
		name      string
		fetchErr  error
		attrs     func() model.DeviceAttributes
		wantErr   error
		expectPut bool
	}{
		{
			name: "full replacement",
			attrs: func() model.DeviceAttributes {
				attrs := attributes()
				attrs.Nickname = "Blueberry"
				attrs.Status = model.StatusRepairing

				return attrs
			},
			expectPut: true,
		},
		{
			name:     "missing device",
			fetchErr: model.ErrDeviceNotFound,
			attrs:    attributes,
			wantErr:  model.ErrDeviceNotFound,
		},
		{
			name: "self pairing is rejected",
			attrs: func() model.DeviceAttributes {
				attrs := attributes()
				attrs.PairedDevices = []model.PairedDevice{{DeviceID: existing.ID}}

				return attrs
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stored := *existing
			repo := &mocks.FakeDevicesRepository{}
			repo.FetchByIDReturns(&stored, tc.fetchErr)

			device, err := services.NewDevicesService(repo).UpdateDevice(context.Background(), existing.ID, tc.attrs())

			require.Equal(t, 1, repo.FetchByIDCallCount())

			if !tc.expectPut {
				require.Error(t, err)
				require.Zero(t, repo.UpdateCallCount())

				if tc.wantErr != nil {
					require.ErrorIs(t, err, tc.wantErr)
				}

				return
			}

			require.NoError(t, err)
			require.Equal(t, 1, repo.UpdateCallCount())
			require.Equal(t, existing.ID, device.ID)
			require.Equal(t, "Blueberry", device.Nickname)
			require.Equal(t, model.StatusRepairing, device.Status)
		})
	}
}

func TestDevicesService_DeleteDevice(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing device", func(t *testing.T) {
		t.Parallel()

		repo := &mocks.FakeDevicesRepository{}
		repo.FetchByIDReturns(model.NewDevice(attributes()), nil)

		err := services.NewDevicesService(repo).DeleteDevice(context.Background(), "42")
		require.NoError(t, err)
		require.Equal(t, 1, repo.DeleteCallCount())
		require.Equal(t, model.DeviceID("42"), repo.DeleteArgsForCall(0))
	})

	t.Run("missing device is not deleted", func(t *testing.T) {
		t.Parallel()

		repo := &mocks.FakeDevicesRepository{}
		repo.FetchByIDReturns(nil, model.ErrDeviceNotFound)

		err := services.NewDevicesService(repo).DeleteDevice(context.Background(), "42")
		require.ErrorIs(t, err, model.ErrDeviceNotFound)
		require.Zero(t, repo.DeleteCallCount())
	})
}

func TestDevicesService_ListDevices(t *testing.T) {
	t.Parallel()

	repo := &mocks.FakeDevicesRepository{}
	repo.ListReturns(nil, errors.New("connection reset"))

	_, err := services.NewDevicesService(repo).ListDevices(context.Background())
	require.Error(t, err)
}

func TestDevicesService_PairedDevicesMustExist(t *testing.T) {
	t.Parallel()

	existing := model.NewDevice(attributes())
	partner := model.NewDevice(attributes())

	cases := []struct {
		name        string
		pairings    []model.PairedDevice
		lookupErr   error
		expectErr   error
		expectField bool
	}{
		{
			name:     "known partner is accepted",
			pairings: []model.PairedDevice{{DeviceID: partner.ID, Nickname: partner.Nickname}},
		},
		{
			name:        "unknown partner is a validation error",
			pairings:    []model.PairedDevice{{DeviceID: "ghost"}},
			expectField: true,
		},
		{
			name:      "lookup failure is returned",
			pairings:  []model.PairedDevice{{DeviceID: partner.ID}},
			lookupErr: model.ErrDatabaseQuery,
			expectErr: model.ErrDatabaseQuery,
		},
	}

	// fetchStub serves the edited device and the partner, and reports any other id as missing.
	fetchStub := func(lookupErr error) func(context.Context, model.DeviceID) (*model.Device, error) {
		return func(_ context.Context, id model.DeviceID) (*model.Device, error) {
			switch id {
			case existing.ID:
				stored := *existing

				return &stored, nil
			case partner.ID:
				if lookupErr != nil {
					return nil, lookupErr
				}

				return partner, nil
			default:
				return nil, model.ErrDeviceNotFound
			}
		}
	}

	for _, tc := range cases {
		t.Run(tc.name+" on create", func(t *testing.T) {
			t.Parallel()

			repo := &mocks.FakeDevicesRepository{FetchByIDStub: fetchStub(tc.lookupErr)}

			attrs := attributes()
			attrs.PairedDevices = tc.pairings

			_, err := services.NewDevicesService(repo).CreateDevice(context.Background(), attrs)
			assertPairingOutcome(t, err, tc.expectErr, tc.expectField)

			if err != nil {
				require.Zero(t, repo.CreateCallCount())
			}
		})

		t.Run(tc.name+" on update", func(t *testing.T) {
			t.Parallel()

			repo := &mocks.FakeDevicesRepository{FetchByIDStub: fetchStub(tc.lookupErr)}

			attrs := attributes()
			attrs.PairedDevices = tc.pairings

			_, err := services.NewDevicesService(repo).UpdateDevice(context.Background(), existing.ID, attrs)
			assertPairingOutcome(t, err, tc.expectErr, tc.expectField)

			if err != nil {
				require.Zero(t, repo.UpdateCallCount())
			}
		})
	}
}

func assertPairingOutcome(t *testing.T, err, expectErr error, expectField bool) {
	t.Helper()

	switch {
	case expectField:
		var verrs *model.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		require.Equal(t, []string{"paired_devices"}, verrs.Fields())
	case expectErr != nil:
		require.ErrorIs(t, err, expectErr)
	default:
		require.NoError(t, err)
	}
}
