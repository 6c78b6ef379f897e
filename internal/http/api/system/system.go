package system

import (
	"github.com/gin-gonic/gin"

	"github.com/mraafat89/catch-a-prayer/internal/http/api"
)

// Module mounts the service banner and health check.
func Module() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/", banner)
		c.GET("/health", health)
	})
}

func banner(ctx *gin.Context) (any, *api.APIError) {
	return gin.H{
		"service": "catch-a-prayer",
		"message": "Find nearby mosques and whether you can still catch the prayer",
	}, nil
}

func health(ctx *gin.Context) (any, *api.APIError) {
	return gin.H{"status": "healthy"}, nil
}
