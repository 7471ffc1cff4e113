package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /health
func HandleHealth(ctx *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		pingCtx, cancel := requestContext(c)
		defer cancel()

		if err := ctx.Store.Ping(pingCtx); err != nil {
			ctx.Logger.Error("health check failed", zap.String("component", "postgres"), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "postgres"})
			return
		}

		if err := ctx.Cache.Ping(pingCtx); err != nil {
			ctx.Logger.Error("health check failed", zap.String("component", "redis"), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "redis"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
