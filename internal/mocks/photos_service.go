package mocks

import (
	"context"
	"sync"

	"github.com/architeacher/gadgets/internal/ports"
)

type FakePhotosService struct {
	UploadPhotoStub func(context.Context, ports.PhotoUpload) (string, error)

	uploadPhotoMutex sync.RWMutex

	uploadPhotoArgsForCall []struct {
		arg1 context.Context
		arg2 ports.PhotoUpload
	}

	uploadPhotoReturns struct {
		result1 string
		result2 error
	}

	OpenPhotoStub func(context.Context, string) (*ports.Photo, error)

	openPhotoMutex sync.RWMutex

	openPhotoArgsForCall []struct {
		arg1 context.Context
		arg2 string
	}

	openPhotoReturns struct {
		result1 *ports.Photo
		result2 error
	}
}

func (fake *FakePhotosService) UploadPhoto(ctx context.Context, upload ports.PhotoUpload) (string, error) {
	fake.uploadPhotoMutex.Lock()
	ret := fake.uploadPhotoReturns
	fake.uploadPhotoArgsForCall = append(fake.uploadPhotoArgsForCall, struct {
		arg1 context.Context
		arg2 ports.PhotoUpload
	}{ctx, upload})
	stub := fake.UploadPhotoStub
	fake.uploadPhotoMutex.Unlock()

	if stub != nil {
		return stub(ctx, upload)
	}

	return ret.result1, ret.result2
}

func (fake *FakePhotosService) UploadPhotoCallCount() int {
	fake.uploadPhotoMutex.RLock()
	defer fake.uploadPhotoMutex.RUnlock()

	return len(fake.uploadPhotoArgsForCall)
}

func (fake *FakePhotosService) UploadPhotoArgsForCall(i int) ports.PhotoUpload {
	fake.uploadPhotoMutex.RLock()
	defer fake.uploadPhotoMutex.RUnlock()

	args := fake.uploadPhotoArgsForCall[i]

	return args.arg2
}

func (fake *FakePhotosService) UploadPhotoReturns(result1 string, result2 error) {
	fake.uploadPhotoMutex.Lock()
	defer fake.uploadPhotoMutex.Unlock()

	fake.UploadPhotoStub = nil
	fake.uploadPhotoReturns = struct {
		result1 string
		result2 error
	}{result1, result2}
}

func (fake *FakePhotosService) OpenPhoto(ctx context.Context, name string) (*ports.Photo, error) {
	fake.openPhotoMutex.Lock()
	ret := fake.openPhotoReturns
	fake.openPhotoArgsForCall = append(fake.openPhotoArgsForCall, struct {
		arg1 context.Context
		arg2 string
	}{ctx, name})
	stub := fake.OpenPhotoStub
	fake.openPhotoMutex.Unlock()

	if stub != nil {
		return stub(ctx, name)
	}

	return ret.result1, ret.result2
}

func (fake *FakePhotosService) OpenPhotoCallCount() int {
	fake.openPhotoMutex.RLock()
	defer fake.openPhotoMutex.RUnlock()

	return len(fake.openPhotoArgsForCall)
}

func (fake *FakePhotosService) OpenPhotoArgsForCall(i int) string {
	fake.openPhotoMutex.RLock()
	defer fake.openPhotoMutex.RUnlock()

	args := fake.openPhotoArgsForCall[i]

	return args.arg2
}

func (fake *FakePhotosService) OpenPhotoReturns(result1 *ports.Photo, result2 error) {
	fake.openPhotoMutex.Lock()
	defer fake.openPhotoMutex.Unlock()

	fake.OpenPhotoStub = nil
	fake.openPhotoReturns = struct {
		result1 *ports.Photo
		result2 error
	}{result1, result2}
}

var _ ports.PhotosService = new(FakePhotosService)
