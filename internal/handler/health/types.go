package health

import (
	"time"

	"github.com/dwarvesf/funds-backend/internal/monitoring"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

type BasicHealthResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Checks     map[string]HealthCheck `json:"checks"`
	DurationMs int64                  `json:"duration_ms"`
}

// HealthCheck is the result of probing a single dependency.
type HealthCheck struct {
	Status   string                 `json:"status"`
	Latency  int64                  `json:"latency_ms,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type JobsHealthResponse struct {
	Status     string                          `json:"status"`
	Timestamp  time.Time                       `json:"timestamp"`
	Jobs       map[string]monitoring.JobStatus `json:"jobs"`
	Summary    monitoring.JobsSummary          `json:"summary"`
	DurationMs int64                           `json:"duration_ms"`
}
