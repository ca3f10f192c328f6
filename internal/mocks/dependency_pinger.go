package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/ports"
)

type FakeDependencyPinger struct {
	PingStub func(context.Context) error

	pingMutex sync.RWMutex

	pingArgsForCall []struct {
		arg1 context.Context
	}

	pingReturns struct {
		result1 error
	}
}

func (fake *FakeDependencyPinger) Ping(ctx context.Context) error {
	fake.pingMutex.Lock()
	ret := fake.pingReturns
	fake.pingArgsForCall = append(fake.pingArgsForCall, struct {
		arg1 context.Context
	}{ctx})
	stub := fake.PingStub
	fake.pingMutex.Unlock()

	if stub != nil {
		return stub(ctx)
	}

	return ret.result1
}

func (fake *FakeDependencyPinger) PingCallCount() int {
	fake.pingMutex.RLock()
	defer fake.pingMutex.RUnlock()

	return len(fake.pingArgsForCall)
}

func (fake *FakeDependencyPinger) PingReturns(result1 error) {
	fake.pingMutex.Lock()
	defer fake.pingMutex.Unlock()

	fake.PingStub = nil
	fake.pingReturns = struct {
		result1 error
	}{result1}
}

var _ ports.DependencyPinger = new(FakeDependencyPinger)
