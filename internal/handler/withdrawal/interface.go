package withdrawal

import "github.com/gin-gonic/gin"

type IHandler interface {
	Submit(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Cancel(c *gin.Context)
	Approve(c *gin.Context)
	Reject(c *gin.Context)
}
