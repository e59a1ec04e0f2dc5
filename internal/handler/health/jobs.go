package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/monitoring"
)

// criticalJobs turn the report unhealthy, instead of degraded, once they
// fail more than criticalFailureThreshold times in a row.
var criticalJobs = []string{
	monitoring.BacklogJobName,
}

const criticalFailureThreshold = 2

// Jobs godoc
// @Summary Background jobs health check
// @Tags health
// @Produce json
// @Success 200 {object} JobsHealthResponse
// @Success 206 {object} JobsHealthResponse
// @Failure 503 {object} JobsHealthResponse
// @Router /api/v1/health/jobs [get]
func (h *handler) Jobs(c *gin.Context) {
	start := time.Now()

	if h.jobStatusManager == nil {
		c.JSON(http.StatusServiceUnavailable, JobsHealthResponse{
			Status:     statusUnhealthy,
			Timestamp:  start,
			Jobs:       map[string]monitoring.JobStatus{},
			DurationMs: time.Since(start).Milliseconds(),
		})
		return
	}

	jobs := h.jobStatusManager.GetAllJobStatuses()
	summary := h.jobStatusManager.GetJobsSummary()
	overall := overallJobsStatus(jobs, summary)

	response := JobsHealthResponse{
		Status:     overall,
		Timestamp:  start,
		Jobs:       jobs,
		Summary:    summary,
		DurationMs: time.Since(start).Milliseconds(),
	}

	h.logger.Info("[Jobs] health check completed", map[string]string{
		"overall_status": overall,
		"total_jobs":     fmt.Sprintf("%d", summary.TotalJobs),
		"unhealthy_jobs": fmt.Sprintf("%d", summary.UnhealthyJobs),
		"stalled_jobs":   fmt.Sprintf("%d", summary.StalledJobs),
	})

	switch overall {
	case statusUnhealthy:
		c.JSON(http.StatusServiceUnavailable, response)
	case statusDegraded:
		c.JSON(http.StatusPartialContent, response)
	default:
		c.JSON(http.StatusOK, response)
	}
}

func overallJobsStatus(jobs map[string]monitoring.JobStatus, summary monitoring.JobsSummary) string {
	if summary.StalledJobs > 0 {
		return statusUnhealthy
	}
	if summary.UnhealthyJobs == 0 {
		return statusHealthy
	}
	for _, name := range criticalJobs {
		job, ok := jobs[name]
		if ok && job.Status == monitoring.JobStatusFailed && job.ConsecutiveFailures > criticalFailureThreshold {
			return statusUnhealthy
		}
	}
	return statusDegraded
}
