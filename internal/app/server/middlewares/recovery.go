package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/ginx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// Recovery 捕获处理器 panic 并返回 500
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorf(c.Request.Context(), "panic recovered: %v", recovered)
		ginx.InternalError(c, "Internal Server Error")
		c.Abort()
	})
}
