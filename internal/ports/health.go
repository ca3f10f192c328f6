package ports

import (
	"context"

	"github.com/architeacher/gadgets/internal/domain/model"
)

type (
	// DependencyPinger is anything the readiness probe can reach.
	DependencyPinger interface {
		Ping(ctx context.Context) error
	}

	// Dependencies names every pinger checked by readiness and health reports.
	Dependencies map[string]DependencyPinger

	HealthChecker interface {
		Liveness(ctx context.Context) (*model.LivenessReport, error)
		Readiness(ctx context.Context) (*model.ReadinessReport, error)
		Health(ctx context.Context) (*model.HealthReport, error)
	}
)
