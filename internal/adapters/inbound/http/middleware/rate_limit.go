package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/throttled/throttled/v2"
)

const (
	RateLimitLimitHeader     = "RateLimit-Limit"
	RateLimitRemainingHeader = "RateLimit-Remaining"
	RateLimitResetHeader     = "RateLimit-Reset"
	RetryAfterHeader         = "Retry-After"
)

// RateLimit throttles each client address with a GCRA limiter.
func RateLimit(cfg config.RateLimiting, store throttled.GCRAStoreCtx, log logger.Logger) (func(http.Handler) http.Handler, error) {
	limiter, err := throttled.NewGCRARateLimiterCtx(store, throttled.RateQuota{
		MaxRate:  throttled.PerMin(int(cfg.RequestsPerMin)),
		MaxBurst: int(cfg.BurstSize),
	})
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)

				return
			}

			limited, result, err := limiter.RateLimitCtx(r.Context(), clientKey(r), 1)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter store error")

				if cfg.GracefulDegraded {
					next.ServeHTTP(w, r)

					return
				}

				writeError(w, http.StatusServiceUnavailable, "RATE_LIMITER_UNAVAILABLE", "rate limiting service temporarily unavailable")

				return
			}

			w.Header().Set(RateLimitLimitHeader, strconv.Itoa(result.Limit))
			w.Header().Set(RateLimitRemainingHeader, strconv.Itoa(result.Remaining))
			w.Header().Set(RateLimitResetHeader, strconv.Itoa(int(result.ResetAfter.Round(time.Second).Seconds())))

			if limited {
				w.Header().Set(RetryAfterHeader, strconv.Itoa(max(1, int(result.RetryAfter.Round(time.Second).Seconds()))))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests, please try again later")

				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}

	return "ip:" + host
}
