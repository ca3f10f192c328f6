package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"slices"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/pkg/idempotency"
	"github.com/architeacher/gadgets/pkg/logger"
)

// Idempotency replays the stored response of a write request sent again with
// the same Idempotency-Key. Requests without the header pass through.
func Idempotency(store ports.IdempotencyStore, cfg config.Idempotency, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotency.HeaderName)
			if !cfg.Enabled || key == "" || !slices.Contains(cfg.Methods, r.Method) {
				next.ServeHTTP(w, r)

				return
			}

			if err := idempotency.Validate(key); err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_IDEMPOTENCY_KEY", err.Error())

				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_JSON", "unable to read request body")

				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			cacheKey := idempotency.BuildCacheKey(r.Method, r.URL.Path, key)
			fingerprint := idempotency.Fingerprint(body)

			cached, err := store.Get(ctx, cacheKey)
			if err != nil {
				degrade(w, r, next, cfg, log, err)

				return
			}

			if cached != nil {
				if !cached.Matches(fingerprint) {
					writeError(w, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED", idempotency.ErrKeyReused.Error())

					return
				}

				replay(w, cfg, *cached)

				return
			}

			acquired, err := store.SetLock(ctx, cacheKey, cfg.LockTTL)
			if err != nil {
				degrade(w, r, next, cfg, log, err)

				return
			}

			if !acquired {
				writeError(w, http.StatusConflict, "REQUEST_IN_PROGRESS", "a request with this idempotency key is already being processed")

				return
			}

			defer func() {
				if err := store.ReleaseLock(context.WithoutCancel(ctx), cacheKey); err != nil {
					log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency lock")
				}
			}()

			buffered := newBufferedWriter()
			next.ServeHTTP(buffered, r.WithContext(idempotency.WithKey(ctx, key)))

			responseBody := buffered.body.Bytes()
			record := idempotency.NewRecord(fingerprint, buffered.statusCode, buffered.header, responseBody)

			if record.Replayable() {
				if err := store.Set(context.WithoutCancel(ctx), cacheKey, record, cfg.CacheTTL); err != nil {
					log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
				}
			}

			buffered.flushTo(w, responseBody)
		})
	}
}

func replay(w http.ResponseWriter, cfg config.Idempotency, record idempotency.Record) {
	for name, values := range record.Header {
		w.Header()[name] = append([]string(nil), values...)
	}

	w.Header().Set(cfg.ReplayedHeader, "true")
	w.WriteHeader(record.StatusCode)

	if len(record.Body) > 0 {
		_, _ = w.Write(record.Body)
	}
}

func degrade(w http.ResponseWriter, r *http.Request, next http.Handler, cfg config.Idempotency, log logger.Logger, err error) {
	log.Warn().Err(err).Msg("idempotency store unavailable")

	if cfg.GracefulDegraded {
		next.ServeHTTP(w, r)

		return
	}

	writeError(w, http.StatusServiceUnavailable, "CACHE_UNAVAILABLE", "idempotency service temporarily unavailable")
}
