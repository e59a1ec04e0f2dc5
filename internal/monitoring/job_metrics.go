package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type BackgroundJobMetrics struct {
	jobDuration *prometheus.HistogramVec
	jobRuns     *prometheus.CounterVec
	activeJobs  prometheus.Gauge
}

func NewBackgroundJobMetrics() *BackgroundJobMetrics {
	return &BackgroundJobMetrics{
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "funds_backend_background_job_duration_seconds",
			Help:    "Cron job run time in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"job_name", "outcome"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funds_backend_background_job_runs_total",
			Help: "Cron job runs by outcome",
		}, []string{"job_name", "outcome"}),
		activeJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "funds_backend_background_jobs_active",
			Help: "Cron jobs currently running",
		}),
	}
}

func (m *BackgroundJobMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(m.jobDuration, m.jobRuns, m.activeJobs)
}

func (m *BackgroundJobMetrics) observe(jobName, outcome string, d time.Duration) {
	m.jobRuns.WithLabelValues(jobName, outcome).Inc()
	m.jobDuration.WithLabelValues(jobName, outcome).Observe(d.Seconds())
}
