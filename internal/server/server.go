package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"github.com/dwarvesf/funds-backend/internal/catalog"
	"github.com/dwarvesf/funds-backend/internal/controller"
	"github.com/dwarvesf/funds-backend/internal/handler"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/settlement"
	"github.com/dwarvesf/funds-backend/internal/store"
	pgstore "github.com/dwarvesf/funds-backend/internal/store/postgres"
	"github.com/dwarvesf/funds-backend/internal/transport/http"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/utils/webhook"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)
	s := store.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := monitoring.NewHTTPMetrics()
	httpMetrics.MustRegister(registry)
	fundsMetrics := monitoring.NewFundsMetrics()
	fundsMetrics.MustRegister(registry)
	jobMetrics := monitoring.NewBackgroundJobMetrics()
	jobMetrics.MustRegister(registry)

	catalog := catalog.New(db, s, appConfig.Funds.CatalogCacheTTL, fundsMetrics, logger)
	engine := settlement.New(db, s, fundsMetrics, logger, appConfig.Funds.LockTimeout)
	ctrl := controller.New(db, s, catalog, engine, fundsMetrics, logger)

	jobStatusManager := monitoring.NewJobStatusManager(logger, jobMetrics)
	backlogJob := monitoring.NewInstrumentedJob(
		monitoring.BacklogJobName,
		webhook.New(logger, 10*time.Second).Heartbeat(
			monitoring.BacklogJobName,
			appConfig.Funds.UptimeWebhookURL,
			monitoring.NewBacklogJob(db, s, fundsMetrics),
		),
		jobStatusManager,
		logger,
		appConfig.Funds.LockTimeout,
	)

	c := cron.New()
	if _, err := c.AddFunc(appConfig.Funds.BacklogInterval, backlogJob.Execute); err != nil {
		logger.Fatal("[Init][AddFunc] invalid backlog interval", map[string]string{
			"interval": appConfig.Funds.BacklogInterval,
			"error":    err.Error(),
		})
	}
	c.Start()
	defer c.Stop()

	// publish the gauge before the first tick
	go backlogJob.Execute()

	h := handler.New(appConfig, logger, ctrl, catalog, db, registry, jobStatusManager)
	httpServer := http.NewHttpServer(appConfig, logger, h, httpMetrics)

	logger.Info("[Init] starting http server", map[string]string{
		"port": appConfig.ApiServer.Port,
	})
	if err := httpServer.Run(":" + appConfig.ApiServer.Port); err != nil {
		logger.Error("[Init][Run] http server stopped", map[string]string{
			"error": err.Error(),
		})
	}
}
