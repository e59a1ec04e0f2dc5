package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/catalog"
	"github.com/dwarvesf/funds-backend/internal/controller"
	"github.com/dwarvesf/funds-backend/internal/handler/balance"
	"github.com/dwarvesf/funds-backend/internal/handler/deposit"
	"github.com/dwarvesf/funds-backend/internal/handler/health"
	"github.com/dwarvesf/funds-backend/internal/handler/metrics"
	"github.com/dwarvesf/funds-backend/internal/handler/platform"
	"github.com/dwarvesf/funds-backend/internal/handler/withdrawal"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

type Handler struct {
	WithdrawalHandler withdrawal.IHandler
	DepositHandler    deposit.IHandler
	PlatformHandler   platform.IHandler
	BalanceHandler    balance.IHandler
	HealthHandler     health.IHandler
	MetricsHandler    metrics.IHandler
}

func New(appConfig *config.AppConfig, logger *logger.Logger,
	controller controller.IController,
	catalog catalog.ICatalog,
	db *gorm.DB,
	metricsRegistry *prometheus.Registry,
	jobStatusManager *monitoring.JobStatusManager) *Handler {
	return &Handler{
		WithdrawalHandler: withdrawal.New(controller, logger),
		DepositHandler:    deposit.New(controller, logger),
		PlatformHandler:   platform.New(catalog, logger),
		BalanceHandler:    balance.New(controller, logger),
		HealthHandler:     health.New(appConfig, logger, db, jobStatusManager),
		MetricsHandler:    metrics.New(metricsRegistry),
	}
}
