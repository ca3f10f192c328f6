package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type FakeDevicesService struct {
	CreateDeviceStub func(context.Context, model.DeviceAttributes) (*model.Device, error)

	createDeviceMutex sync.RWMutex

	createDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceAttributes
	}

	createDeviceReturns struct {
		result1 *model.Device
		result2 error
	}

	GetDeviceStub func(context.Context, model.DeviceID) (*model.Device, error)

	getDeviceMutex sync.RWMutex

	getDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	getDeviceReturns struct {
		result1 *model.Device
		result2 error
	}

	ListDevicesStub func(context.Context) ([]model.Device, error)

	listDevicesMutex sync.RWMutex

	listDevicesArgsForCall []struct {
		arg1 context.Context
	}

	listDevicesReturns struct {
		result1 []model.Device
		result2 error
	}

	UpdateDeviceStub func(context.Context, model.DeviceID, model.DeviceAttributes) (*model.Device, error)

	updateDeviceMutex sync.RWMutex

	updateDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
		arg3 model.DeviceAttributes
	}

	updateDeviceReturns struct {
		result1 *model.Device
		result2 error
	}

	DeleteDeviceStub func(context.Context, model.DeviceID) error

	deleteDeviceMutex sync.RWMutex

	deleteDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	deleteDeviceReturns struct {
		result1 error
	}
}

func (fake *FakeDevicesService) CreateDevice(ctx context.Context, attrs model.DeviceAttributes) (*model.Device, error) {
	fake.createDeviceMutex.Lock()
	ret := fake.createDeviceReturns
	fake.createDeviceArgsForCall = append(fake.createDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceAttributes
	}{ctx, attrs})
	stub := fake.CreateDeviceStub
	fake.createDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, attrs)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesService) CreateDeviceCallCount() int {
	fake.createDeviceMutex.RLock()
	defer fake.createDeviceMutex.RUnlock()

	return len(fake.createDeviceArgsForCall)
}

func (fake *FakeDevicesService) CreateDeviceArgsForCall(i int) model.DeviceAttributes {
	fake.createDeviceMutex.RLock()
	defer fake.createDeviceMutex.RUnlock()

	args := fake.createDeviceArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesService) CreateDeviceReturns(result1 *model.Device, result2 error) {
	fake.createDeviceMutex.Lock()
	defer fake.createDeviceMutex.Unlock()

	fake.CreateDeviceStub = nil
	fake.createDeviceReturns = struct {
		result1 *model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesService) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	fake.getDeviceMutex.Lock()
	ret := fake.getDeviceReturns
	fake.getDeviceArgsForCall = append(fake.getDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
	}{ctx, id})
	stub := fake.GetDeviceStub
	fake.getDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesService) GetDeviceCallCount() int {
	fake.getDeviceMutex.RLock()
	defer fake.getDeviceMutex.RUnlock()

	return len(fake.getDeviceArgsForCall)
}

func (fake *FakeDevicesService) GetDeviceArgsForCall(i int) model.DeviceID {
	fake.getDeviceMutex.RLock()
	defer fake.getDeviceMutex.RUnlock()

	args := fake.getDeviceArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesService) GetDeviceReturns(result1 *model.Device, result2 error) {
	fake.getDeviceMutex.Lock()
	defer fake.getDeviceMutex.Unlock()

	fake.GetDeviceStub = nil
	fake.getDeviceReturns = struct {
		result1 *model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesService) ListDevices(ctx context.Context) ([]model.Device, error) {
	fake.listDevicesMutex.Lock()
	ret := fake.listDevicesReturns
	fake.listDevicesArgsForCall = append(fake.listDevicesArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.ListDevicesStub
	fake.listDevicesMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesService) ListDevicesCallCount() int {
	fake.listDevicesMutex.RLock()
	defer fake.listDevicesMutex.RUnlock()

	return len(fake.listDevicesArgsForCall)
}

func (fake *FakeDevicesService) ListDevicesReturns(result1 []model.Device, result2 error) {
	fake.listDevicesMutex.Lock()
	defer fake.listDevicesMutex.Unlock()

	fake.ListDevicesStub = nil
	fake.listDevicesReturns = struct {
		result1 []model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesService) UpdateDevice(ctx context.Context, id model.DeviceID, attrs model.DeviceAttributes) (*model.Device, error) {
	fake.updateDeviceMutex.Lock()
	ret := fake.updateDeviceReturns
	fake.updateDeviceArgsForCall = append(fake.updateDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
		arg3 model.DeviceAttributes
	}{ctx, id, attrs})
	stub := fake.UpdateDeviceStub
	fake.updateDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, id, attrs)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesService) UpdateDeviceCallCount() int {
	fake.updateDeviceMutex.RLock()
	defer fake.updateDeviceMutex.RUnlock()

	return len(fake.updateDeviceArgsForCall)
}

func (fake *FakeDevicesService) UpdateDeviceArgsForCall(i int) (model.DeviceID, model.DeviceAttributes) {
	fake.updateDeviceMutex.RLock()
	defer fake.updateDeviceMutex.RUnlock()

	args := fake.updateDeviceArgsForCall[i]

	return args.arg2, args.arg3
}

func (fake *FakeDevicesService) UpdateDeviceReturns(result1 *model.Device, result2 error) {
	fake.updateDeviceMutex.Lock()
	defer fake.updateDeviceMutex.Unlock()

	fake.UpdateDeviceStub = nil
	fake.updateDeviceReturns = struct {
		result1 *model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesService) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	fake.deleteDeviceMutex.Lock()
	ret := fake.deleteDeviceReturns
	fake.deleteDeviceArgsForCall = append(fake.deleteDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
	}{ctx, id})
	stub := fake.DeleteDeviceStub
	fake.deleteDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}

	return ret.result1
}

func (fake *FakeDevicesService) DeleteDeviceCallCount() int {
	fake.deleteDeviceMutex.RLock()
	defer fake.deleteDeviceMutex.RUnlock()

	return len(fake.deleteDeviceArgsForCall)
}

func (fake *FakeDevicesService) DeleteDeviceArgsForCall(i int) model.DeviceID {
	fake.deleteDeviceMutex.RLock()
	defer fake.deleteDeviceMutex.RUnlock()

	args := fake.deleteDeviceArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesService) DeleteDeviceReturns(result1 error) {
	fake.deleteDeviceMutex.Lock()
	defer fake.deleteDeviceMutex.Unlock()

	fake.DeleteDeviceStub = nil
	fake.deleteDeviceReturns = struct {
		result1 error
	}{result1}
}

var _ ports.DevicesService = new(FakeDevicesService)
