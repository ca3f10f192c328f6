package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type FakeDevicesCache struct {
	GetDeviceStub func(context.Context, model.DeviceID) (*model.Device, bool, error)

	getDeviceMutex sync.RWMutex

	getDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	getDeviceReturns struct {
		result1 *model.Device
		result2 bool
		result3 error
	}

	SetDeviceStub func(context.Context, *model.Device, time.Duration) error

	setDeviceMutex sync.RWMutex

	setDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 *model.Device
		arg3 time.Duration
	}

	setDeviceReturns struct {
		result1 error
	}

	InvalidateDeviceStub func(context.Context, model.DeviceID) error

	invalidateDeviceMutex sync.RWMutex

	invalidateDeviceArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	invalidateDeviceReturns struct {
		result1 error
	}

	GetDeviceListStub func(context.Context) ([]model.Device, bool, error)

	getDeviceListMutex sync.RWMutex

	getDeviceListArgsForCall []struct {
		arg1 context.Context
	}

	getDeviceListReturns struct {
		result1 []model.Device
		result2 bool
		result3 error
	}

	SetDeviceListStub func(context.Context, []model.Device, time.Duration) error

	setDeviceListMutex sync.RWMutex

	setDeviceListArgsForCall []struct {
		arg1 context.Context
		arg2 []model.Device
		arg3 time.Duration
	}

	setDeviceListReturns struct {
		result1 error
	}

	InvalidateAllListsStub func(context.Context) error

	invalidateAllListsMutex sync.RWMutex

	invalidateAllListsArgsForCall []struct {
		arg1 context.Context
	}

	invalidateAllListsReturns struct {
		result1 error
	}

	IsHealthyStub func(context.Context) bool

	isHealthyMutex sync.RWMutex

	isHealthyArgsForCall []struct {
		arg1 context.Context
	}

	isHealthyReturns struct {
		result1 bool
	}
}

func (fake *FakeDevicesCache) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, bool, error) {
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

	return ret.result1, ret.result2, ret.result3
}

func (fake *FakeDevicesCache) GetDeviceCallCount() int {
	fake.getDeviceMutex.RLock()
	defer fake.getDeviceMutex.RUnlock()

	return len(fake.getDeviceArgsForCall)
}

func (fake *FakeDevicesCache) GetDeviceArgsForCall(i int) model.DeviceID {
	fake.getDeviceMutex.RLock()
	defer fake.getDeviceMutex.RUnlock()

	args := fake.getDeviceArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesCache) GetDeviceReturns(result1 *model.Device, result2 bool, result3 error) {
	fake.getDeviceMutex.Lock()
	defer fake.getDeviceMutex.Unlock()

	fake.GetDeviceStub = nil
	fake.getDeviceReturns = struct {
		result1 *model.Device
		result2 bool
		result3 error
	}{result1, result2, result3}
}

func (fake *FakeDevicesCache) SetDevice(ctx context.Context, device *model.Device, ttl time.Duration) error {
	fake.setDeviceMutex.Lock()
	ret := fake.setDeviceReturns
	fake.setDeviceArgsForCall = append(fake.setDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 *model.Device
		arg3 time.Duration
	}{ctx, device, ttl})
	stub := fake.SetDeviceStub
	fake.setDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, device, ttl)
	}

	return ret.result1
}

func (fake *FakeDevicesCache) SetDeviceCallCount() int {
	fake.setDeviceMutex.RLock()
	defer fake.setDeviceMutex.RUnlock()

	return len(fake.setDeviceArgsForCall)
}

func (fake *FakeDevicesCache) SetDeviceArgsForCall(i int) (*model.Device, time.Duration) {
	fake.setDeviceMutex.RLock()
	defer fake.setDeviceMutex.RUnlock()

	args := fake.setDeviceArgsForCall[i]

	return args.arg2, args.arg3
}

func (fake *FakeDevicesCache) SetDeviceReturns(result1 error) {
	fake.setDeviceMutex.Lock()
	defer fake.setDeviceMutex.Unlock()

	fake.SetDeviceStub = nil
	fake.setDeviceReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesCache) InvalidateDevice(ctx context.Context, id model.DeviceID) error {
	fake.invalidateDeviceMutex.Lock()
	ret := fake.invalidateDeviceReturns
	fake.invalidateDeviceArgsForCall = append(fake.invalidateDeviceArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
	}{ctx, id})
	stub := fake.InvalidateDeviceStub
	fake.invalidateDeviceMutex.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}

	return ret.result1
}

func (fake *FakeDevicesCache) InvalidateDeviceCallCount() int {
	fake.invalidateDeviceMutex.RLock()
	defer fake.invalidateDeviceMutex.RUnlock()

	return len(fake.invalidateDeviceArgsForCall)
}

func (fake *FakeDevicesCache) InvalidateDeviceArgsForCall(i int) model.DeviceID {
	fake.invalidateDeviceMutex.RLock()
	defer fake.invalidateDeviceMutex.RUnlock()

	args := fake.invalidateDeviceArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesCache) InvalidateDeviceReturns(result1 error) {
	fake.invalidateDeviceMutex.Lock()
	defer fake.invalidateDeviceMutex.Unlock()

	fake.InvalidateDeviceStub = nil
	fake.invalidateDeviceReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesCache) GetDeviceList(ctx context.Context) ([]model.Device, bool, error) {
	fake.getDeviceListMutex.Lock()
	ret := fake.getDeviceListReturns
	fake.getDeviceListArgsForCall = append(fake.getDeviceListArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.GetDeviceListStub
	fake.getDeviceListMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1, ret.result2, ret.result3
}

func (fake *FakeDevicesCache) GetDeviceListCallCount() int {
	fake.getDeviceListMutex.RLock()
	defer fake.getDeviceListMutex.RUnlock()

	return len(fake.getDeviceListArgsForCall)
}

func (fake *FakeDevicesCache) GetDeviceListReturns(result1 []model.Device, result2 bool, result3 error) {
	fake.getDeviceListMutex.Lock()
	defer fake.getDeviceListMutex.Unlock()

	fake.GetDeviceListStub = nil
	fake.getDeviceListReturns = struct {
		result1 []model.Device
		result2 bool
		result3 error
	}{result1, result2, result3}
}

func (fake *FakeDevicesCache) SetDeviceList(ctx context.Context, devices []model.Device, ttl time.Duration) error {
	fake.setDeviceListMutex.Lock()
	ret := fake.setDeviceListReturns
	fake.setDeviceListArgsForCall = append(fake.setDeviceListArgsForCall, struct {
		arg1 context.Context
		arg2 []model.Device
		arg3 time.Duration
	}{ctx, devices, ttl})
	stub := fake.SetDeviceListStub
	fake.setDeviceListMutex.Unlock()

	if stub != nil {
		return stub(ctx, devices, ttl)
	}

	return ret.result1
}

func (fake *FakeDevicesCache) SetDeviceListCallCount() int {
	fake.setDeviceListMutex.RLock()
	defer fake.setDeviceListMutex.RUnlock()

	return len(fake.setDeviceListArgsForCall)
}

func (fake *FakeDevicesCache) SetDeviceListArgsForCall(i int) ([]model.Device, time.Duration) {
	fake.setDeviceListMutex.RLock()
	defer fake.setDeviceListMutex.RUnlock()

	args := fake.setDeviceListArgsForCall[i]

	return args.arg2, args.arg3
}

func (fake *FakeDevicesCache) SetDeviceListReturns(result1 error) {
	fake.setDeviceListMutex.Lock()
	defer fake.setDeviceListMutex.Unlock()

	fake.SetDeviceListStub = nil
	fake.setDeviceListReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesCache) InvalidateAllLists(ctx context.Context) error {
	fake.invalidateAllListsMutex.Lock()
	ret := fake.invalidateAllListsReturns
	fake.invalidateAllListsArgsForCall = append(fake.invalidateAllListsArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.InvalidateAllListsStub
	fake.invalidateAllListsMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1
}

func (fake *FakeDevicesCache) InvalidateAllListsCallCount() int {
	fake.invalidateAllListsMutex.RLock()
	defer fake.invalidateAllListsMutex.RUnlock()

	return len(fake.invalidateAllListsArgsForCall)
}

func (fake *FakeDevicesCache) InvalidateAllListsReturns(result1 error) {
	fake.invalidateAllListsMutex.Lock()
	defer fake.invalidateAllListsMutex.Unlock()

	fake.InvalidateAllListsStub = nil
	fake.invalidateAllListsReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesCache) IsHealthy(ctx context.Context) bool {
	fake.isHealthyMutex.Lock()
	ret := fake.isHealthyReturns
	fake.isHealthyArgsForCall = append(fake.isHealthyArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.IsHealthyStub
	fake.isHealthyMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1
}

func (fake *FakeDevicesCache) IsHealthyCallCount() int {
	fake.isHealthyMutex.RLock()
	defer fake.isHealthyMutex.RUnlock()

	return len(fake.isHealthyArgsForCall)
}

func (fake *FakeDevicesCache) IsHealthyReturns(result1 bool) {
	fake.isHealthyMutex.Lock()
	defer fake.isHealthyMutex.Unlock()

	fake.IsHealthyStub = nil
	fake.isHealthyReturns = struct {
		result1 bool
	}{result1}
}

var _ ports.DevicesCache = new(FakeDevicesCache)
