package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type FakeDevicesRepository struct {
	CreateStub func(context.Context, *model.Device) error

	createMutex sync.RWMutex

	createArgsForCall []struct {
		arg1 context.Context
		arg2 *model.Device
	}

	createReturns struct {
		result1 error
	}

	FetchByIDStub func(context.Context, model.DeviceID) (*model.Device, error)

	fetchByIDMutex sync.RWMutex

	fetchByIDArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	fetchByIDReturns struct {
		result1 *model.Device
		result2 error
	}

	ListStub func(context.Context) ([]model.Device, error)

	listMutex sync.RWMutex

	listArgsForCall []struct {
		arg1 context.Context
	}

	listReturns struct {
		result1 []model.Device
		result2 error
	}

	UpdateStub func(context.Context, *model.Device) error

	updateMutex sync.RWMutex

	updateArgsForCall []struct {
		arg1 context.Context
		arg2 *model.Device
	}

	updateReturns struct {
		result1 error
	}

	DeleteStub func(context.Context, model.DeviceID) error

	deleteMutex sync.RWMutex

	deleteArgsForCall []struct {
		arg1 context.Context
		arg2 model.DeviceID
	}

	deleteReturns struct {
		result1 error
	}
}

func (fake *FakeDevicesRepository) Create(ctx context.Context, device *model.Device) error {
	fake.createMutex.Lock()
	ret := fake.createReturns
	fake.createArgsForCall = append(fake.createArgsForCall, struct {
		arg1 context.Context
		arg2 *model.Device
	}{ctx, device})
	stub := fake.CreateStub
	fake.createMutex.Unlock()

	if stub != nil {
		return stub(ctx, device)
	}

	return ret.result1
}

func (fake *FakeDevicesRepository) CreateCallCount() int {
	fake.createMutex.RLock()
	defer fake.createMutex.RUnlock()

	return len(fake.createArgsForCall)
}

func (fake *FakeDevicesRepository) CreateArgsForCall(i int) *model.Device {
	fake.createMutex.RLock()
	defer fake.createMutex.RUnlock()

	args := fake.createArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesRepository) CreateReturns(result1 error) {
	fake.createMutex.Lock()
	defer fake.createMutex.Unlock()

	fake.CreateStub = nil
	fake.createReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesRepository) FetchByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	fake.fetchByIDMutex.Lock()
	ret := fake.fetchByIDReturns
	fake.fetchByIDArgsForCall = append(fake.fetchByIDArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
	}{ctx, id})
	stub := fake.FetchByIDStub
	fake.fetchByIDMutex.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesRepository) FetchByIDCallCount() int {
	fake.fetchByIDMutex.RLock()
	defer fake.fetchByIDMutex.RUnlock()

	return len(fake.fetchByIDArgsForCall)
}

func (fake *FakeDevicesRepository) FetchByIDArgsForCall(i int) model.DeviceID {
	fake.fetchByIDMutex.RLock()
	defer fake.fetchByIDMutex.RUnlock()

	args := fake.fetchByIDArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesRepository) FetchByIDReturns(result1 *model.Device, result2 error) {
	fake.fetchByIDMutex.Lock()
	defer fake.fetchByIDMutex.Unlock()

	fake.FetchByIDStub = nil
	fake.fetchByIDReturns = struct {
		result1 *model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesRepository) List(ctx context.Context) ([]model.Device, error) {
	fake.listMutex.Lock()
	ret := fake.listReturns
	fake.listArgsForCall = append(fake.listArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.ListStub
	fake.listMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1, ret.result2
}

func (fake *FakeDevicesRepository) ListCallCount() int {
	fake.listMutex.RLock()
	defer fake.listMutex.RUnlock()

	return len(fake.listArgsForCall)
}

func (fake *FakeDevicesRepository) ListReturns(result1 []model.Device, result2 error) {
	fake.listMutex.Lock()
	defer fake.listMutex.Unlock()

	fake.ListStub = nil
	fake.listReturns = struct {
		result1 []model.Device
		result2 error
	}{result1, result2}
}

func (fake *FakeDevicesRepository) Update(ctx context.Context, device *model.Device) error {
	fake.updateMutex.Lock()
	ret := fake.updateReturns
	fake.updateArgsForCall = append(fake.updateArgsForCall, struct {
		arg1 context.Context
		arg2 *model.Device
	}{ctx, device})
	stub := fake.UpdateStub
	fake.updateMutex.Unlock()

	if stub != nil {
		return stub(ctx, device)
	}

	return ret.result1
}

func (fake *FakeDevicesRepository) UpdateCallCount() int {
	fake.updateMutex.RLock()
	defer fake.updateMutex.RUnlock()

	return len(fake.updateArgsForCall)
}

func (fake *FakeDevicesRepository) UpdateArgsForCall(i int) *model.Device {
	fake.updateMutex.RLock()
	defer fake.updateMutex.RUnlock()

	args := fake.updateArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesRepository) UpdateReturns(result1 error) {
	fake.updateMutex.Lock()
	defer fake.updateMutex.Unlock()

	fake.UpdateStub = nil
	fake.updateReturns = struct {
		result1 error
	}{result1}
}

func (fake *FakeDevicesRepository) Delete(ctx context.Context, id model.DeviceID) error {
	fake.deleteMutex.Lock()
	ret := fake.deleteReturns
	fake.deleteArgsForCall = append(fake.deleteArgsForCall, struct {
		arg1 context.Context
		arg2 model.DeviceID
	}{ctx, id})
	stub := fake.DeleteStub
	fake.deleteMutex.Unlock()

	if stub != nil {
		return stub(ctx, id)
	}

	return ret.result1
}

func (fake *FakeDevicesRepository) DeleteCallCount() int {
	fake.deleteMutex.RLock()
	defer fake.deleteMutex.RUnlock()

	return len(fake.deleteArgsForCall)
}

func (fake *FakeDevicesRepository) DeleteArgsForCall(i int) model.DeviceID {
	fake.deleteMutex.RLock()
	defer fake.deleteMutex.RUnlock()

	args := fake.deleteArgsForCall[i]

	return args.arg2
}

func (fake *FakeDevicesRepository) DeleteReturns(result1 error) {
	fake.deleteMutex.Lock()
	defer fake.deleteMutex.Unlock()

	fake.DeleteStub = nil
	fake.deleteReturns = struct {
		result1 error
	}{result1}
}

var _ ports.DevicesRepository = new(FakeDevicesRepository)
