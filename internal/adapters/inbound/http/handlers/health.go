package handlers

import (
	"net/http"
	"time"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/usecases/queries"
)

type (
	LivenessResponse struct {
		Status    model.HealthStatus `json:"status"`
		Timestamp time.Time          `json:"timestamp"`
		Version   string             `json:"version"`
	}

	ReadinessResponse struct {
		Status    model.HealthStatus         `json:"status"`
		Timestamp time.Time                  `json:"timestamp"`
		Version   string                     `json:"version,omitempty"`
		Checks    map[string]DependencyCheck `json:"checks,omitempty"`
	}

	DependencyCheck struct {
		Status      model.DependencyStatus `json:"status"`
		LatencyMs   uint64                 `json:"latency_ms"`
		Message     string                 `json:"message,omitempty"`
		LastChecked time.Time              `json:"last_checked"`
		Error       string                 `json:"error,omitempty"`
	}

	HealthResponse struct {
		Status    model.HealthStatus         `json:"status"`
		Timestamp time.Time                  `json:"timestamp"`
		Version   versionInfo                `json:"version"`
		Uptime    uptimeInfo                 `json:"uptime"`
		Checks    map[string]DependencyCheck `json:"checks"`
		System    systemInfo                 `json:"system"`
	}

	versionInfo struct {
		API   string `json:"api"`
		Build string `json:"build"`
		Go    string `json:"go"`
	}

	uptimeInfo struct {
		StartedAt time.Time `json:"started_at"`
		Duration  string    `json:"duration"`
		Seconds   uint64    `json:"seconds"`
	}

	systemInfo struct {
		AllocMB    float64 `json:"alloc_mb"`
		SysMB      float64 `json:"sys_mb"`
		GCCycles   uint32  `json:"gc_cycles"`
		Goroutines uint    `json:"goroutines"`
		CPUCores   uint    `json:"cpu_cores"`
	}
)

func (h *Handler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, LivenessResponse{
			Status:    model.HealthStatusDown,
			Timestamp: time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, http.StatusOK, LivenessResponse{
		Status:    report.Status,
		Timestamp: report.Timestamp,
		Version:   report.Version,
	})
}

// ReadinessCheck answers 503 as long as any dependency is down.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, ReadinessResponse{
			Status:    model.HealthStatusDown,
			Timestamp: time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, statusCode(report.Status), ReadinessResponse{
		Status:    report.Status,
		Timestamp: report.Timestamp,
		Version:   report.Version,
		Checks:    toDependencyChecks(report.Checks),
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Queries.FetchHealthReport.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, LivenessResponse{
			Status:    model.HealthStatusDown,
			Timestamp: time.Now().UTC(),
		})

		return
	}

	writeJSONResponse(w, statusCode(report.Status), HealthResponse{
		Status:    report.Status,
		Timestamp: report.Timestamp,
		Version: versionInfo{
			API:   report.Version.API,
			Build: report.Version.Build,
			Go:    report.Version.Go,
		},
		Uptime: uptimeInfo{
			StartedAt: report.Uptime.StartedAt,
			Duration:  report.Uptime.Duration,
			Seconds:   report.Uptime.DurationSeconds,
		},
		Checks: toDependencyChecks(report.Checks),
		System: systemInfo{
			AllocMB:    report.System.AllocMB,
			SysMB:      report.System.SysMB,
			GCCycles:   report.System.GCCycles,
			Goroutines: report.System.Goroutines,
			CPUCores:   report.System.CPUCores,
		},
	})
}

func statusCode(status model.HealthStatus) int {
	if status == model.HealthStatusDown {
		return http.StatusServiceUnavailable
	}

	return http.StatusOK
}

func toDependencyChecks(checks map[string]model.DependencyCheck) map[string]DependencyCheck {
	out := make(map[string]DependencyCheck, len(checks))
	for name, check := range checks {
		out[name] = DependencyCheck(check)
	}

	return out
}
