package platform

import "github.com/gin-gonic/gin"

type IHandler interface {
	ListActiveWithdrawal(c *gin.Context)
	ListActiveDeposit(c *gin.Context)

	ListWithdrawal(c *gin.Context)
	GetWithdrawal(c *gin.Context)
	CreateWithdrawal(c *gin.Context)
	UpdateWithdrawal(c *gin.Context)
	DeleteWithdrawal(c *gin.Context)

	ListDeposit(c *gin.Context)
	GetDeposit(c *gin.Context)
	CreateDeposit(c *gin.Context)
	UpdateDeposit(c *gin.Context)
	DeleteDeposit(c *gin.Context)
}
