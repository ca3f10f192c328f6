package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

type FakePreferencesRepository struct {
	GetStub func(context.Context) (model.Preferences, error)

	getMutex sync.RWMutex

	getArgsForCall []struct {
		arg1 context.Context
	}

	getReturns struct {
		result1 model.Preferences
		result2 error
	}

	SaveStub func(context.Context, model.Preferences) error

	saveMutex sync.RWMutex

	saveArgsForCall []struct {
		arg1 context.Context
		arg2 model.Preferences
	}

	saveReturns struct {
		result1 error
	}
}

func (fake *FakePreferencesRepository) Get(ctx context.Context) (model.Preferences, error) {
	fake.getMutex.Lock()
	ret := fake.getReturns
	fake.getArgsForCall = append(fake.getArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.GetStub
	fake.getMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1, ret.result2
}

func (fake *FakePreferencesRepository) GetCallCount() int {
	fake.getMutex.RLock()
	defer fake.getMutex.RUnlock()

	return len(fake.getArgsForCall)
}

func (fake *FakePreferencesRepository) GetReturns(result1 model.Preferences, result2 error) {
	fake.getMutex.Lock()
	defer fake.getMutex.Unlock()

	fake.GetStub = nil
	fake.getReturns = struct {
		result1 model.Preferences
		result2 error
	}{result1, result2}
}

func (fake *FakePreferencesRepository) Save(ctx context.Context, preferences model.Preferences) error {
	fake.saveMutex.Lock()
	ret := fake.saveReturns
	fake.saveArgsForCall = append(fake.saveArgsForCall, struct {
		arg1 context.Context
		arg2 model.Preferences
	}{ctx, preferences})
	stub := fake.SaveStub
	fake.saveMutex.Unlock()

	if stub != nil {
		return stub(ctx, preferences)
	}

	return ret.result1
}

func (fake *FakePreferencesRepository) SaveCallCount() int {
	fake.saveMutex.RLock()
	defer fake.saveMutex.RUnlock()

	return len(fake.saveArgsForCall)
}

func (fake *FakePreferencesRepository) SaveArgsForCall(i int) model.Preferences {
	fake.saveMutex.RLock()
	defer fake.saveMutex.RUnlock()

	args := fake.saveArgsForCall[i]

	return args.arg2
}

func (fake *FakePreferencesRepository) SaveReturns(result1 error) {
	fake.saveMutex.Lock()
	defer fake.saveMutex.Unlock()

	fake.SaveStub = nil
	fake.saveReturns = struct {
		result1 error
	}{result1}
}

var _ ports.PreferencesRepository = new(FakePreferencesRepository)
