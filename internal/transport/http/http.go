package http

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"github.com/dwarvesf/funds-backend/internal/handler"
	"github.com/dwarvesf/funds-backend/internal/middleware"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

func setupCORS(r *gin.Engine, cfg *config.AppConfig) {
	var corsOrigins []string
	for _, origin := range strings.Split(cfg.ApiServer.AllowedOrigins, ";") {
		if origin = strings.TrimSpace(origin); origin != "" {
			corsOrigins = append(corsOrigins, origin)
		}
	}
	// cors.New panics on an empty origin list
	if len(corsOrigins) == 0 {
		return
	}

	r.Use(cors.New(
		cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
			AllowHeaders: []string{
				"Origin", "Host", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Accept",
				"X-CSRF-Token", "Authorization", "X-Requested-With", "X-Access-Token",
			},
			AllowCredentials: true,
		},
	))
}

func NewHttpServer(
	appConfig *config.AppConfig,
	logger *logger.Logger,
	h *handler.Handler,
	httpMetrics *monitoring.HTTPMetrics,
) *gin.Engine {
	if appConfig.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		gin.Recovery(),
		monitoring.HTTPMetricsMiddleware(httpMetrics, "/healthz", "/metrics"),
	)
	setupCORS(r, appConfig)

	// use ginSwagger middleware to serve the API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", h.MetricsHandler.Serve())
	r.GET("/healthz", h.HealthHandler.Basic)

	auth := middleware.NewAuthMiddleware(appConfig.Auth.JWTSecret, logger)
	loadV1Routes(r, h, auth)

	return r
}
