package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/architeacher/gadgets/internal/adapters/inbound/http/openapi"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

type recordingMetrics struct {
	mu       sync.Mutex
	counters map[string][]attribute.KeyValue
	observed map[string]float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		counters: make(map[string][]attribute.KeyValue),
		observed: make(map[string]float64),
	}
}

func (m *recordingMetrics) Inc(_ context.Context, key string, _ int64, attrs ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[key] = attrs
}

func (m *recordingMetrics) Observe(_ context.Context, key string, value float64, _ ...attribute.KeyValue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observed[key] = value
}

func (m *recordingMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (m *recordingMetrics) Shutdown(context.Context) error {
	return nil
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{name: "issued when absent", incoming: ""},
		{name: "reused when present", incoming: "req-123", reused: true},
		{name: "replaced when too long", incoming: strings.Repeat("x", 200)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var seen string

			handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = logger.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/devices", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			require.Equal(t, seen, rec.Header().Get(RequestIDHeader))

			if tc.reused {
				require.Equal(t, tc.incoming, seen)
			} else {
				require.NotEqual(t, tc.incoming, seen)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := Recovery(logger.NewBufferedTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("collator exploded")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/collection", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	require.Contains(t, buf.String(), "collator exploded")
	require.Contains(t, buf.String(), "panic recovered")
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SecurityHeaders()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	require.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		allowed        []string
		origin         string
		method         string
		expectedStatus int
		expectedOrigin string
	}{
		{name: "allowed origin", allowed: []string{"http://localhost:5173"}, origin: "http://localhost:5173", method: http.MethodGet, expectedStatus: http.StatusOK, expectedOrigin: "http://localhost:5173"},
		{name: "preflight", allowed: []string{"http://localhost:5173"}, origin: "http://localhost:5173", method: http.MethodOptions, expectedStatus: http.StatusNoContent, expectedOrigin: "http://localhost:5173"},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://example.test", method: http.MethodGet, expectedStatus: http.StatusOK, expectedOrigin: "http://example.test"},
		{name: "foreign origin", allowed: []string{"http://localhost:5173"}, origin: "http://evil.test", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "no origin", allowed: []string{"*"}, method: http.MethodGet, expectedStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/devices", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}

			rec := httptest.NewRecorder()
			CORS(tc.allowed)(okHandler()).ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code)
			require.Equal(t, tc.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAccessLogger(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		cfg           config.AccessLog
		path          string
		status        int
		expectLogged  bool
		expectedLevel string
	}{
		{name: "success at info", cfg: config.AccessLog{Enabled: true}, path: "/devices", status: http.StatusOK, expectLogged: true, expectedLevel: `"level":"info"`},
		{name: "client error at warn", cfg: config.AccessLog{Enabled: true}, path: "/devices", status: http.StatusNotFound, expectLogged: true, expectedLevel: `"level":"warn"`},
		{name: "server error at error", cfg: config.AccessLog{Enabled: true}, path: "/devices", status: http.StatusInternalServerError, expectLogged: true, expectedLevel: `"level":"error"`},
		{name: "health skipped", cfg: config.AccessLog{Enabled: true}, path: "/health", status: http.StatusOK},
		{name: "health logged on demand", cfg: config.AccessLog{Enabled: true, LogHealthChecks: true}, path: "/readiness", status: http.StatusOK, expectLogged: true, expectedLevel: `"level":"info"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := AccessLogger(logger.NewBufferedTestLogger(&buf), tc.cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			if !tc.expectLogged {
				require.Empty(t, buf.String())

				return
			}

			require.Contains(t, buf.String(), "request handled")
			require.Contains(t, buf.String(), tc.expectedLevel)
			require.Contains(t, buf.String(), `"component":"http"`)
		})
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	t.Parallel()

	client := newRecordingMetrics()

	router := chi.NewRouter()
	router.Use(Metrics(client))
	router.Get("/devices/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/devices/0190a5b2-1111-7222-8333-444455556666", nil))

	require.Contains(t, client.counters[httpRequestTotal], attribute.String("http.route", "/devices/{id}"))
	require.Contains(t, client.counters[httpRequestTotal], attribute.String("http.status_code", "200"))
	require.Equal(t, float64(2), client.observed[httpResponseSize])
}

func TestRequestValidator(t *testing.T) {
	t.Parallel()

	doc, err := openapi.Load(context.Background())
	require.NoError(t, err)

	validator, err := RequestValidator(doc)
	require.NoError(t, err)

	handler := validator(okHandler())

	valid := `{"nickname":"Darkroom camera","model":"M6","brand":"Leica","device_type":"camera","status":"active",` +
		`"adopted_date":"2023-05-01","purchase_price":1200,"source":"eBay","notes":null,"paired_devices":[]}`

	cases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{name: "valid create", method: http.MethodPost, path: "/devices", body: valid, expectedStatus: http.StatusOK},
		{name: "legacy misc type", method: http.MethodPost, path: "/devices", body: strings.Replace(valid, `"camera"`, `"misc"`, 1), expectedStatus: http.StatusOK},
		{name: "malformed json", method: http.MethodPost, path: "/devices", body: `{"nickname":`, expectedStatus: http.StatusBadRequest, expectedCode: "INVALID_JSON"},
		{name: "missing required field", method: http.MethodPost, path: "/devices", body: strings.Replace(valid, `"source":"eBay",`, "", 1), expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_FAILED"},
		{name: "negative price", method: http.MethodPost, path: "/devices", body: strings.Replace(valid, `1200`, `-1`, 1), expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_FAILED"},
		{name: "unknown device type", method: http.MethodPut, path: "/devices/0190a5b2-1111-7222-8333-444455556666", body: strings.Replace(valid, `"camera"`, `"drone"`, 1), expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_FAILED"},
		{
			name:   "too many pairings",
			method: http.MethodPost,
			path:   "/devices",
			body: strings.Replace(valid, `"paired_devices":[]`,
				`"paired_devices":[{"device_id":"a"},{"device_id":"b"},{"device_id":"c"},{"device_id":"d"}]`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{name: "undocumented path passes", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "preflight passes", method: http.MethodOptions, path: "/devices", expectedStatus: http.StatusOK},
		{name: "invalid sort order", method: http.MethodGet, path: "/collection?order=sideways", expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_FAILED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())

			if tc.expectedCode != "" {
				require.Contains(t, rec.Body.String(), tc.expectedCode)
			}
		})
	}
}
