package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/ginx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 处理器通过 c.Error 挂上的错误在这里记录，尚未写响应时补一个 500
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Errorf(c.Request.Context(), "request error: %v", e.Err)
		}
		if !c.Writer.Written() {
			ginx.InternalError(c, "Internal Server Error")
		}
	}
}
