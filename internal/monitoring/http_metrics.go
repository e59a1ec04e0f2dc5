package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments every API route.
type HTTPMetrics struct {
	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	responseSize     *prometheus.HistogramVec
	inFlightRequests *prometheus.GaugeVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funds_backend_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "path", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funds_backend_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funds_backend_http_response_size_bytes",
				Help:    "Size of HTTP responses in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 2, 8), // 100B to 12KB
			},
			[]string{"method", "path", "status"},
		),

		inFlightRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "funds_backend_http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
			[]string{"method", "path"},
		),
	}
}

func (m *HTTPMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.responseSize,
		m.inFlightRequests,
	)
}

// HTTPMetricsMiddleware labels requests by route template, so /withdrawals/1
// and /withdrawals/2 share one series. Routes in skipPaths, typically probes
// and the scrape endpoint itself, are not recorded.
func HTTPMetricsMiddleware(metrics *HTTPMetrics, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.FullPath()
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method

		// unmatched routes have no template
		if path == "" {
			path = "unmatched"
		}

		metrics.inFlightRequests.WithLabelValues(method, path).Inc()
		defer metrics.inFlightRequests.WithLabelValues(method, path).Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		responseSize := float64(c.Writer.Size())

		metrics.requestDuration.WithLabelValues(method, path, status).Observe(duration)
		metrics.requestsTotal.WithLabelValues(method, path, status).Inc()
		if responseSize > 0 {
			metrics.responseSize.WithLabelValues(method, path, status).Observe(responseSize)
		}
	}
}
