package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/logger"
)

var healthEndpoints = map[string]struct{}{
	"/health":    {},
	"/liveness":  {},
	"/readiness": {},
}

// AccessLogger logs one line per request at a level picked from the status.
// Health probes are skipped unless configured otherwise.
func AccessLogger(log logger.Logger, cfg config.AccessLog) func(http.Handler) http.Handler {
	accessLog := log.Component("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.LogHealthChecks && isHealthEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)

				return
			}

			start := time.Now()
			recorder := newStatusRecorder(w)

			next.ServeHTTP(recorder, r)

			reqLogger := accessLog.WithContext(r.Context())

			event := reqLogger.Info()

			switch {
			case recorder.statusCode >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case recorder.statusCode >= http.StatusBadRequest:
				event = reqLogger.Warn()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Int("status", recorder.statusCode).
				Uint64("bytes", recorder.bytesWritten).
				Int64("duration_ms", time.Since(start).Milliseconds())

			if cfg.IncludeQueryParams && r.URL.RawQuery != "" {
				event.Str("query", r.URL.RawQuery)
			}

			event.Msg("request handled")
		})
	}
}

func isHealthEndpoint(path string) bool {
	_, ok := healthEndpoints[strings.TrimSuffix(path, "/")]

	return ok
}
