package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/handler"
	"github.com/dwarvesf/funds-backend/internal/middleware"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler, auth *middleware.AuthMiddleware) {
	v1 := r.Group("/api/v1")

	health := v1.Group("/health")
	{
		health.GET("/db", h.HealthHandler.Database)
		health.GET("/jobs", h.HealthHandler.Jobs)
	}

	user := v1.Group("", auth.Authenticate())

	platforms := user.Group("/platforms")
	{
		platforms.GET("/withdrawal", h.PlatformHandler.ListActiveWithdrawal)
		platforms.GET("/deposit", h.PlatformHandler.ListActiveDeposit)
	}

	withdrawals := user.Group("/withdrawals")
	{
		withdrawals.POST("", h.WithdrawalHandler.Submit)
		withdrawals.GET("", h.WithdrawalHandler.List)
		withdrawals.GET("/:id", h.WithdrawalHandler.Get)
		withdrawals.DELETE("/:id", h.WithdrawalHandler.Cancel)
	}

	deposits := user.Group("/deposits")
	{
		deposits.POST("", h.DepositHandler.Submit)
		deposits.GET("", h.DepositHandler.List)
		deposits.GET("/:id", h.DepositHandler.Get)
		deposits.DELETE("/:id", h.DepositHandler.Cancel)
	}

	user.GET("/me/balance", h.BalanceHandler.Get)

	admin := user.Group("/admin", auth.RequireAdmin())
	{
		admin.POST("/withdrawals/:id/approve", h.WithdrawalHandler.Approve)
		admin.POST("/withdrawals/:id/reject", h.WithdrawalHandler.Reject)
		admin.POST("/deposits/:id/approve", h.DepositHandler.Approve)
		admin.POST("/deposits/:id/reject", h.DepositHandler.Reject)

		admin.GET("/platforms/withdrawal", h.PlatformHandler.ListWithdrawal)
		admin.POST("/platforms/withdrawal", h.PlatformHandler.CreateWithdrawal)
		admin.GET("/platforms/withdrawal/:id", h.PlatformHandler.GetWithdrawal)
		admin.PUT("/platforms/withdrawal/:id", h.PlatformHandler.UpdateWithdrawal)
		admin.DELETE("/platforms/withdrawal/:id", h.PlatformHandler.DeleteWithdrawal)

		admin.GET("/platforms/deposit", h.PlatformHandler.ListDeposit)
		admin.POST("/platforms/deposit", h.PlatformHandler.CreateDeposit)
		admin.GET("/platforms/deposit/:id", h.PlatformHandler.GetDeposit)
		admin.PUT("/platforms/deposit/:id", h.PlatformHandler.UpdateDeposit)
		admin.DELETE("/platforms/deposit/:id", h.PlatformHandler.DeleteDeposit)
	}
}
