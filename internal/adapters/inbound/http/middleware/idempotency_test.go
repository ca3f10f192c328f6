package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/idempotency"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/stretchr/testify/require"
)

const testIdempotencyKey = "create-device-0001"

type memoryIdempotencyStore struct {
	mu      sync.Mutex
	records map[string]idempotency.Record
	locks   map[string]bool
	err     error
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{
		records: make(map[string]idempotency.Record),
		locks:   make(map[string]bool),
	}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (*idempotency.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}

	return &record, nil
}

func (s *memoryIdempotencyStore) Set(_ context.Context, key string, record idempotency.Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = record

	return nil
}

func (s *memoryIdempotencyStore) SetLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks[key] {
		return false, nil
	}

	s.locks[key] = true

	return true, nil
}

func (s *memoryIdempotencyStore) ReleaseLock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)

	return nil
}

func idempotencyConfig() config.Idempotency {
	return config.Idempotency{
		Enabled:          true,
		CacheTTL:         time.Hour,
		LockTTL:          time.Second,
		Methods:          []string{http.MethodPost, http.MethodPut, http.MethodDelete},
		ReplayedHeader:   "Idempotent-Replayed",
		GracefulDegraded: true,
	}
}

func countingCreateHandler(calls *atomic.Int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		body, _ := io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/devices/1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	})
}

func sendIdempotent(handler http.Handler, method, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/devices", strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotency.HeaderName, key)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	store := newMemoryIdempotencyStore()
	handler := Idempotency(store, idempotencyConfig(), logger.NewTestLogger())(countingCreateHandler(&calls))

	first := sendIdempotent(handler, http.MethodPost, testIdempotencyKey, `{"nickname":"Darkroom camera"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Empty(t, first.Header().Get("Idempotent-Replayed"))

	second := sendIdempotent(handler, http.MethodPost, testIdempotencyKey, `{"nickname":"Darkroom camera"}`)
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	require.Equal(t, "/devices/1", second.Header().Get("Location"))
	require.Equal(t, first.Body.String(), second.Body.String())

	require.Equal(t, int32(1), calls.Load())
	require.Empty(t, store.locks)
}

func TestIdempotency_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		prepare        func(store *memoryIdempotencyStore)
		key            string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "key too short",
			key:            "short",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_IDEMPOTENCY_KEY",
		},
		{
			name: "key reused with another body",
			prepare: func(store *memoryIdempotencyStore) {
				cacheKey := idempotency.BuildCacheKey(http.MethodPost, "/devices", testIdempotencyKey)
				store.records[cacheKey] = idempotency.NewRecord(idempotency.Fingerprint([]byte("other")), http.StatusCreated, http.Header{}, nil)
			},
			key:            testIdempotencyKey,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "IDEMPOTENCY_KEY_REUSED",
		},
		{
			name: "request in progress",
			prepare: func(store *memoryIdempotencyStore) {
				store.locks[idempotency.BuildCacheKey(http.MethodPost, "/devices", testIdempotencyKey)] = true
			},
			key:            testIdempotencyKey,
			expectedStatus: http.StatusConflict,
			expectedCode:   "REQUEST_IN_PROGRESS",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			store := newMemoryIdempotencyStore()
			if tc.prepare != nil {
				tc.prepare(store)
			}

			handler := Idempotency(store, idempotencyConfig(), logger.NewTestLogger())(countingCreateHandler(&calls))
			rec := sendIdempotent(handler, http.MethodPost, tc.key, `{"nickname":"Darkroom camera"}`)

			require.Equal(t, tc.expectedStatus, rec.Code)
			require.Contains(t, rec.Body.String(), tc.expectedCode)
			require.Zero(t, calls.Load())
		})
	}
}

func TestIdempotency_PassThrough(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	store := newMemoryIdempotencyStore()
	handler := Idempotency(store, idempotencyConfig(), logger.NewTestLogger())(countingCreateHandler(&calls))

	sendIdempotent(handler, http.MethodPost, "", `{}`)
	sendIdempotent(handler, http.MethodPost, "", `{}`)
	sendIdempotent(handler, http.MethodGet, testIdempotencyKey, "")

	require.Equal(t, int32(3), calls.Load())
	require.Empty(t, store.records)
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		degraded       bool
		expectedStatus int
		expectedCalls  int32
	}{
		{name: "graceful degradation serves the request", degraded: true, expectedStatus: http.StatusCreated, expectedCalls: 1},
		{name: "strict mode refuses the request", degraded: false, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			store := newMemoryIdempotencyStore()
			store.err = errors.New("keydb down")

			cfg := idempotencyConfig()
			cfg.GracefulDegraded = tc.degraded

			handler := Idempotency(store, cfg, logger.NewTestLogger())(countingCreateHandler(&calls))
			rec := sendIdempotent(handler, http.MethodPost, testIdempotencyKey, `{}`)

			require.Equal(t, tc.expectedStatus, rec.Code)
			require.Equal(t, tc.expectedCalls, calls.Load())
		})
	}
}

func TestIdempotency_ServerErrorsAreNotStored(t *testing.T) {
	t.Parallel()

	store := newMemoryIdempotencyStore()
	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
	})

	rec := sendIdempotent(Idempotency(store, idempotencyConfig(), logger.NewTestLogger())(failing), http.MethodPost, testIdempotencyKey, `{}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, store.records)
}
