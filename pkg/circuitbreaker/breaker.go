package circuitbreaker

import (
	"errors"

	"github.com/sony/gobreaker/v2"
)

type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New returns nil when the breaker is disabled.
func New[T any](cfg Config) *CircuitBreaker[T] {
	if !cfg.Enabled {
		return nil
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.MaxRequests),
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
	}

	if cfg.IsFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !cfg.IsFailure(err)
		}
	}

	if cfg.OnStateChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			cfg.OnStateChange(name, from.String(), to.String())
		}
	}

	return &CircuitBreaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

func (c *CircuitBreaker[T]) Name() string {
	return c.cb.Name()
}

// State is "closed", "half-open" or "open".
func (c *CircuitBreaker[T]) State() string {
	if c == nil {
		return gobreaker.StateClosed.String()
	}

	return c.cb.State().String()
}

// Execute calls fn through cb, or directly when cb is nil. Breaker rejections
// are reported as ErrCircuitOpen or ErrTooManyRequests.
func Execute[T any](cb *CircuitBreaker[T], fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}

	result, err := cb.cb.Execute(fn)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		var zero T

		return zero, ErrCircuitOpen
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		var zero T

		return zero, ErrTooManyRequests
	default:
		return result, err
	}
}
