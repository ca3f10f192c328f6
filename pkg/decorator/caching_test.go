package decorator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/architeacher/gadgets/pkg/decorator"
)

type (
	testQuery struct {
		ID string
	}

	testResult struct {
		Value string
	}

	fakeCache struct {
		mu     sync.Mutex
		data   map[string]testResult
		gets   int
		sets   int
		getErr error
		setErr error
	}

	fakeQueryHandler struct {
		calls  int
		result testResult
		err    error
	}
)

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]testResult)}
}

func (c *fakeCache) Get(_ context.Context, query testQuery) (testResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++

	if c.getErr != nil {
		return testResult{}, false, c.getErr
	}

	result, ok := c.data[query.ID]

	return result, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, query testQuery, result testResult, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets++

	if _, ok := ctx.Deadline(); !ok {
		return errors.New("cache write without deadline")
	}

	if c.setErr != nil {
		return c.setErr
	}

	c.data[query.ID] = result

	return nil
}

func (h *fakeQueryHandler) Execute(_ context.Context, _ testQuery) (testResult, error) {
	h.calls++

	return h.result, h.err
}

func TestQueryCachingDecorator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		enabled        bool
		nilCache       bool
		seeded         map[string]testResult
		getErr         error
		setErr         error
		handlerErr     error
		expectedValue  string
		expectedErr    bool
		expectedCalls  int
		expectedGets   int
		expectedSets   int
		expectedStatus decorator.CacheStatus
	}{
		{
			name:           "hit skips the handler",
			enabled:        true,
			seeded:         map[string]testResult{"id": {Value: "cached"}},
			expectedValue:  "cached",
			expectedGets:   1,
			expectedStatus: decorator.CacheStatusHit,
		},
		{
			name:           "miss stores the fresh result",
			enabled:        true,
			expectedValue:  "fresh",
			expectedCalls:  1,
			expectedGets:   1,
			expectedSets:   1,
			expectedStatus: decorator.CacheStatusMiss,
		},
		{
			name:           "disabled bypasses the cache",
			enabled:        false,
			seeded:         map[string]testResult{"id": {Value: "cached"}},
			expectedValue:  "fresh",
			expectedCalls:  1,
			expectedStatus: decorator.CacheStatusBypass,
		},
		{
			name:           "nil cache bypasses",
			enabled:        true,
			nilCache:       true,
			expectedValue:  "fresh",
			expectedCalls:  1,
			expectedStatus: decorator.CacheStatusBypass,
		},
		{
			name:           "handler error is not cached",
			enabled:        true,
			handlerErr:     errors.New("boom"),
			expectedErr:    true,
			expectedCalls:  1,
			expectedGets:   1,
			expectedStatus: decorator.CacheStatusMiss,
		},
		{
			name:           "get error falls through to the handler",
			enabled:        true,
			getErr:         errors.New("redis down"),
			expectedValue:  "fresh",
			expectedCalls:  1,
			expectedGets:   1,
			expectedSets:   1,
			expectedStatus: decorator.CacheStatusError,
		},
		{
			name:           "set error does not fail the query",
			enabled:        true,
			setErr:         errors.New("redis down"),
			expectedValue:  "fresh",
			expectedCalls:  1,
			expectedGets:   1,
			expectedSets:   1,
			expectedStatus: decorator.CacheStatusMiss,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cache := newFakeCache()
			cache.getErr = tc.getErr
			cache.setErr = tc.setErr

			for k, v := range tc.seeded {
				cache.data[k] = v
			}

			handler := &fakeQueryHandler{result: testResult{Value: "fresh"}, err: tc.handlerErr}

			var backing decorator.Cache[testQuery, testResult] = cache
			if tc.nilCache {
				backing = nil
			}

			var observed decorator.CacheStatus

			decorated := decorator.NewQueryCachingDecorator[testQuery, testResult](
				handler,
				backing,
				decorator.CacheConfig{Enabled: tc.enabled, TTL: time.Minute},
				func(_ context.Context, status decorator.CacheStatus) { observed = status },
			)

			result, err := decorated.Execute(context.Background(), testQuery{ID: "id"})

			if tc.expectedErr {
				require.ErrorIs(t, err, tc.handlerErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.expectedValue, result.Value)
			}

			require.Equal(t, tc.expectedCalls, handler.calls)
			require.Equal(t, tc.expectedGets, cache.gets)
			require.Equal(t, tc.expectedSets, cache.sets)
			require.Equal(t, tc.expectedStatus, observed)
		})
	}
}

func TestQueryCachingDecorator_SecondCallHits(t *testing.T) {
	t.Parallel()

	cache := newFakeCache()
	handler := &fakeQueryHandler{result: testResult{Value: "fresh"}}

	decorated := decorator.NewQueryCachingDecorator[testQuery, testResult](
		handler,
		cache,
		decorator.CacheConfig{Enabled: true, TTL: time.Minute},
	)

	for range 3 {
		result, err := decorated.Execute(context.Background(), testQuery{ID: "id"})
		require.NoError(t, err)
		require.Equal(t, "fresh", result.Value)
	}

	require.Equal(t, 1, handler.calls)
}

func TestCacheStatus_Context(t *testing.T) {
	t.Parallel()

	require.Equal(t, decorator.CacheStatusBypass, decorator.GetCacheStatus(context.Background()))

	ctx := decorator.WithCacheStatus(context.Background(), decorator.CacheStatusHit)
	require.Equal(t, decorator.CacheStatusHit, decorator.GetCacheStatus(ctx))
}
