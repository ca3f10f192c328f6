package model

import "time"

type (
	HealthStatus string

	DependencyStatus string

	DependencyCheck struct {
		Status      DependencyStatus
		LatencyMs   uint64
		Message     string
		LastChecked time.Time
		Error       string
	}

	LivenessReport struct {
		Status    HealthStatus
		Timestamp time.Time
		Version   string
	}

	ReadinessReport struct {
		Status    HealthStatus
		Timestamp time.Time
		Version   string
		Checks    map[string]DependencyCheck
	}

	HealthReport struct {
		Status    HealthStatus
		Timestamp time.Time
		Version   VersionInfo
		Uptime    UptimeInfo
		Checks    map[string]DependencyCheck
		System    SystemInfo
	}

	VersionInfo struct {
		API   string
		Build string
		Go    string
	}

	UptimeInfo struct {
		StartedAt       time.Time
		Duration        string
		DurationSeconds uint64
	}

	SystemInfo struct {
		AllocMB    float64
		SysMB      float64
		GCCycles   uint32
		Goroutines uint
		CPUCores   uint
	}
)

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"

	DependencyStatusUp      DependencyStatus = "up"
	DependencyStatusDown    DependencyStatus = "down"
	DependencyStatusUnknown DependencyStatus = "unknown"
)

// OverallStatus folds dependency checks into a single status. Any dependency
// down makes the whole service down.
func OverallStatus(checks map[string]DependencyCheck) HealthStatus {
	status := HealthStatusOK

	for _, check := range checks {
		switch check.Status {
		case DependencyStatusDown:
			return HealthStatusDown
		case DependencyStatusUnknown:
			status = HealthStatusDegraded
		}
	}

	return status
}
