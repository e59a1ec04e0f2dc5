package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

type JobExecutionStatus string

const (
	JobStatusPending JobExecutionStatus = "pending"
	JobStatusRunning JobExecutionStatus = "running"
	JobStatusSuccess JobExecutionStatus = "success"
	JobStatusFailed  JobExecutionStatus = "failed"
	JobStatusStalled JobExecutionStatus = "stalled"
)

const defaultStalledThreshold = 5 * time.Minute

// JobStatus is the public view of a cron job, as served by /api/v1/health/jobs.
type JobStatus struct {
	JobName             string             `json:"job_name"`
	Status              JobExecutionStatus `json:"status"`
	LastRunTime         time.Time          `json:"last_run_time"`
	LastDuration        time.Duration      `json:"last_duration_ms"`
	SuccessCount        int64              `json:"success_count"`
	FailureCount        int64              `json:"failure_count"`
	ConsecutiveFailures int64              `json:"consecutive_failures"`
	LastError           string             `json:"last_error,omitempty"`
	LastErrorType       string             `json:"last_error_type,omitempty"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type JobsSummary struct {
	TotalJobs      int       `json:"total_jobs"`
	RunningJobs    int       `json:"running_jobs"`
	HealthyJobs    int       `json:"healthy_jobs"`
	UnhealthyJobs  int       `json:"unhealthy_jobs"`
	StalledJobs    int       `json:"stalled_jobs"`
	LastUpdateTime time.Time `json:"last_update_time"`
}

func (s *JobsSummary) count(status JobExecutionStatus) {
	s.TotalJobs++
	switch status {
	case JobStatusRunning:
		s.RunningJobs++
	case JobStatusSuccess:
		s.HealthyJobs++
	case JobStatusFailed:
		s.UnhealthyJobs++
	case JobStatusStalled:
		s.StalledJobs++
	}
}

// JobStatusManager keeps the last outcome of every cron job. Staleness is
// derived when statuses are read, so the manager runs no goroutines.
type JobStatusManager struct {
	mu               sync.RWMutex
	jobs             map[string]*JobStatus
	logger           *logger.Logger
	metrics          *BackgroundJobMetrics
	stalledThreshold time.Duration
	now              func() time.Time
}

func NewJobStatusManager(logger *logger.Logger, metrics *BackgroundJobMetrics) *JobStatusManager {
	return &JobStatusManager{
		jobs:             make(map[string]*JobStatus),
		logger:           logger,
		metrics:          metrics,
		stalledThreshold: defaultStalledThreshold,
		now:              time.Now,
	}
}

func (jsm *JobStatusManager) RegisterJob(jobName string) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	jsm.lookup(jobName)
}

// lookup returns the job entry, creating a pending one. Callers hold mu.
func (jsm *JobStatusManager) lookup(jobName string) *JobStatus {
	job, ok := jsm.jobs[jobName]
	if !ok {
		job = &JobStatus{
			JobName:   jobName,
			Status:    JobStatusPending,
			UpdatedAt: jsm.now(),
		}
		jsm.jobs[jobName] = job
	}
	return job
}

func (jsm *JobStatusManager) StartJob(jobName string) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	job := jsm.lookup(jobName)
	job.Status = JobStatusRunning
	job.LastRunTime = jsm.now()
	job.UpdatedAt = job.LastRunTime

	jsm.metrics.activeJobs.Inc()
}

// CompleteJob records the outcome of the run begun by StartJob; err == nil
// means success.
func (jsm *JobStatusManager) CompleteJob(jobName string, err error) {
	jsm.mu.Lock()
	defer jsm.mu.Unlock()

	job, ok := jsm.jobs[jobName]
	if !ok || job.Status != JobStatusRunning {
		jsm.logger.Error("[CompleteJob] job is not running", map[string]string{
			"job_name": jobName,
		})
		return
	}

	job.UpdatedAt = jsm.now()
	job.LastDuration = job.UpdatedAt.Sub(job.LastRunTime)
	jsm.metrics.activeJobs.Dec()

	outcome := "success"
	if err == nil {
		job.Status = JobStatusSuccess
		job.SuccessCount++
		job.ConsecutiveFailures = 0
		job.LastError, job.LastErrorType = "", ""
	} else {
		outcome = "error"
		job.Status = JobStatusFailed
		job.FailureCount++
		job.ConsecutiveFailures++
		job.LastError = err.Error()
		job.LastErrorType = classifyJobError(err)

		jsm.logger.Error("[CompleteJob] job failed", map[string]string{
			"job_name":             jobName,
			"duration":             job.LastDuration.String(),
			"error":                job.LastError,
			"error_type":           job.LastErrorType,
			"consecutive_failures": strconv.FormatInt(job.ConsecutiveFailures, 10),
		})
	}

	jsm.metrics.observe(jobName, outcome, job.LastDuration)
}

func (jsm *JobStatusManager) GetJobStatus(jobName string) (JobStatus, bool) {
	jsm.mu.RLock()
	defer jsm.mu.RUnlock()

	job, ok := jsm.jobs[jobName]
	if !ok {
		return JobStatus{}, false
	}
	return jsm.view(job, jsm.now()), true
}

func (jsm *JobStatusManager) GetAllJobStatuses() map[string]JobStatus {
	jsm.mu.RLock()
	defer jsm.mu.RUnlock()

	now := jsm.now()
	statuses := make(map[string]JobStatus, len(jsm.jobs))
	for name, job := range jsm.jobs {
		statuses[name] = jsm.view(job, now)
	}
	return statuses
}

func (jsm *JobStatusManager) GetJobsSummary() JobsSummary {
	summary := JobsSummary{LastUpdateTime: jsm.now()}
	for _, job := range jsm.GetAllJobStatuses() {
		summary.count(job.Status)
	}
	return summary
}

// view copies job, reporting a run older than the stalled threshold as stalled.
func (jsm *JobStatusManager) view(job *JobStatus, now time.Time) JobStatus {
	out := *job
	if out.Status == JobStatusRunning && now.Sub(out.LastRunTime) > jsm.stalledThreshold {
		out.Status = JobStatusStalled
	}
	return out
}
