package circuitbreaker

import "time"

type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// Enabled false makes New return nil, and Execute then calls through.
	Enabled bool

	// MaxRequests is the number of probes let through while half-open.
	MaxRequests uint

	// Interval clears the failure counts while closed. Zero never clears them.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint

	// IsFailure decides which errors count against the breaker. Nil counts all of them.
	IsFailure func(error) bool

	// OnStateChange is called on every transition.
	OnStateChange func(name string, from, to string)
}
