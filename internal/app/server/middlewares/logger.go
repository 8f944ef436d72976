package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// RequestLogger 请求日志中间件，与业务日志走同一个 logger
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Errorf(ctx, "%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		case status >= 400:
			log.Warnf(ctx, "%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		default:
			log.Infof(ctx, "%s %s %d %s %s", c.Request.Method, path, status, time.Since(start), c.ClientIP())
		}
	}
}
