package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

const dbPingTimeout = 5 * time.Second

type handler struct {
	config           *config.AppConfig
	logger           *logger.Logger
	db               *gorm.DB
	jobStatusManager *monitoring.JobStatusManager
}

func New(config *config.AppConfig, logger *logger.Logger, db *gorm.DB, jobStatusManager *monitoring.JobStatusManager) IHandler {
	return &handler{
		config:           config,
		logger:           logger,
		db:               db,
		jobStatusManager: jobStatusManager,
	}
}

// Basic godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} BasicHealthResponse
// @Router /healthz [get]
func (h *handler) Basic(c *gin.Context) {
	c.JSON(http.StatusOK, BasicHealthResponse{Message: "ok"})
}

// Database godoc
// @Summary Database health check
// @Description Pings the ledger database and reports connection pool usage
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/v1/health/db [get]
func (h *handler) Database(c *gin.Context) {
	start := time.Now()

	ctx := context.Background()
	if c.Request != nil {
		ctx = c.Request.Context()
	}

	check := h.checkDatabase(ctx)
	response := HealthResponse{
		Status:     check.Status,
		Timestamp:  start,
		Checks:     map[string]HealthCheck{"database": check},
		DurationMs: time.Since(start).Milliseconds(),
	}

	if check.Status != statusHealthy {
		h.logger.Warn("[Database] health check failed", map[string]string{
			"error": check.Error,
		})
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *handler) checkDatabase(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{Status: statusUnhealthy}

	if h.db == nil {
		check.Error = "database connection not available"
		return check
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		check.Error = "failed to get underlying database: " + err.Error()
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		check.Error = err.Error()
		if pingCtx.Err() == context.DeadlineExceeded {
			check.Error = "timeout"
		}
		check.Latency = time.Since(start).Milliseconds()
		return check
	}

	stats := sqlDB.Stats()
	check.Status = statusHealthy
	check.Latency = time.Since(start).Milliseconds()
	check.Metadata = map[string]interface{}{
		"driver": h.db.Dialector.Name(),
		"connection_pool": map[string]interface{}{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"max_open":         stats.MaxOpenConnections,
		},
	}
	return check
}
