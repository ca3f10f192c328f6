package services

import (
	"context"
	"maps"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
)

const bytesPerMB = 1024 * 1024

type (
	HealthService struct {
		dependencies ports.Dependencies
		apiVersion   string
		build        string
		version      string
		startedAt    time.Time
		now          func() time.Time
	}

	HealthOption func(*HealthService)
)

func WithClock(now func() time.Time) HealthOption {
	return func(s *HealthService) {
		s.now = now
	}
}

func NewHealthService(dependencies ports.Dependencies, apiVersion, version, build string, opts ...HealthOption) *HealthService {
	svc := &HealthService{
		dependencies: dependencies,
		apiVersion:   apiVersion,
		version:      version,
		build:        build,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	svc.startedAt = svc.now().UTC()

	return svc
}

// Liveness only tells whether the process answers.
func (s *HealthService) Liveness(context.Context) (*model.LivenessReport, error) {
	return &model.LivenessReport{
		Status:    model.HealthStatusOK,
		Timestamp: s.now().UTC(),
		Version:   s.version,
	}, nil
}

func (s *HealthService) Readiness(ctx context.Context) (*model.ReadinessReport, error) {
	checks := s.check(ctx)

	return &model.ReadinessReport{
		Status:    model.OverallStatus(checks),
		Timestamp: s.now().UTC(),
		Version:   s.version,
		Checks:    checks,
	}, nil
}

func (s *HealthService) Health(ctx context.Context) (*model.HealthReport, error) {
	checks := s.check(ctx)
	now := s.now().UTC()
	uptime := now.Sub(s.startedAt)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &model.HealthReport{
		Status:    model.OverallStatus(checks),
		Timestamp: now,
		Version: model.VersionInfo{
			API:   s.apiVersion,
			Build: s.build,
			Go:    runtime.Version(),
		},
		Uptime: model.UptimeInfo{
			StartedAt:       s.startedAt,
			Duration:        uptime.Round(time.Second).String(),
			DurationSeconds: uint64(uptime.Seconds()),
		},
		Checks: checks,
		System: model.SystemInfo{
			AllocMB:    float64(mem.Alloc) / bytesPerMB,
			SysMB:      float64(mem.Sys) / bytesPerMB,
			GCCycles:   mem.NumGC,
			Goroutines: uint(runtime.NumGoroutine()),
			CPUCores:   uint(runtime.NumCPU()),
		},
	}, nil
}

// check pings every dependency concurrently.
func (s *HealthService) check(ctx context.Context) map[string]model.DependencyCheck {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]model.DependencyCheck, len(s.dependencies))
	)

	for _, name := range slices.Sorted(maps.Keys(s.dependencies)) {
		pinger := s.dependencies[name]

		wg.Add(1)
		go func() {
			defer wg.Done()

			check := s.ping(ctx, pinger)

			mu.Lock()
			checks[name] = check
			mu.Unlock()
		}()
	}

	wg.Wait()

	return checks
}

func (s *HealthService) ping(ctx context.Context, pinger ports.DependencyPinger) model.DependencyCheck {
	if pinger == nil {
		return model.DependencyCheck{
			Status:      model.DependencyStatusUnknown,
			Message:     "not configured",
			LastChecked: s.now().UTC(),
		}
	}

	start := time.Now()
	err := pinger.Ping(ctx)
	check := model.DependencyCheck{
		Status:      model.DependencyStatusUp,
		LatencyMs:   uint64(time.Since(start).Milliseconds()),
		Message:     "ok",
		LastChecked: s.now().UTC(),
	}

	if err != nil {
		check.Status = model.DependencyStatusDown
		check.Message = "unreachable"
		check.Error = err.Error()
	}

	return check
}
