package services

import (
	"context"
	"errors"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type DevicesService struct {
	repo ports.DevicesRepository
}

func NewDevicesService(repo ports.DevicesRepository) *DevicesService {
	return &DevicesService{repo: repo}
}

func (s *DevicesService) CreateDevice(ctx context.Context, attrs model.DeviceAttributes) (*model.Device, error) {
	device := model.NewDevice(attrs)

	if err := model.ValidateAttributes(device.DeviceAttributes, device.ID); err != nil {
		return nil, err
	}

	if err := s.checkPairings(ctx, device.PairedDevices); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	return s.repo.FetchByID(ctx, id)
}

func (s *DevicesService) ListDevices(ctx context.Context) ([]model.Device, error) {
	return s.repo.List(ctx)
}

func (s *DevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, attrs model.DeviceAttributes) (*model.Device, error) {
	device, err := s.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := device.Replace(attrs); err != nil {
		return nil, err
	}

	if err := s.checkPairings(ctx, device.PairedDevices); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

func (s *DevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	if _, err := s.repo.FetchByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// checkPairings reports every paired device that is not in the store.
func (s *DevicesService) checkPairings(ctx context.Context, pairings []model.PairedDevice) error {
	errs := model.NewValidationErrors()

	for _, pairing := range pairings {
		_, err := s.repo.FetchByID(ctx, pairing.DeviceID)
		if errors.Is(err, model.ErrDeviceNotFound) {
			errs.Add("paired_devices", "paired device "+pairing.DeviceID.String()+" does not exist", model.ValidationCodeInvalid)

			continue
		}

		if err != nil {
			return err
		}
	}

	return errs.OrNil()
}
