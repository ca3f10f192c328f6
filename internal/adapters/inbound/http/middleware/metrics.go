package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/architeacher/gadgets/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

const (
	httpRequestTotal    = "http_requests_total"
	httpRequestDuration = "http_request_duration_seconds"
	httpResponseSize    = "http_response_size_bytes"
)

// Metrics records request counts, latency and response size per route
// pattern, so ids do not explode the label set.
func Metrics(client metrics.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.status_code", strconv.Itoa(recorder.statusCode)),
			}

			ctx := r.Context()
			client.Inc(ctx, httpRequestTotal, 1, attrs...)
			client.Observe(ctx, httpRequestDuration, time.Since(start).Seconds(), attrs...)
			client.Observe(ctx, httpResponseSize, float64(recorder.bytesWritten), attrs...)
		})
	}
}
