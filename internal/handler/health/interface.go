package health

import "github.com/gin-gonic/gin"

type IHandler interface {
	Basic(c *gin.Context)
	Database(c *gin.Context)
	Jobs(c *gin.Context)
}
