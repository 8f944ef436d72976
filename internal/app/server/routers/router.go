package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/ginx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/notify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/webhook"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由
// notifyHandler 为 nil 时不注册测试邮件接口
func SetupRoutes(
	serviceName string,
	webhookHandler *webhook.WebhookHandler,
	notifyHandler *notify.NotifyHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.NoMethod(ginx.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		ginx.NotFound(c, "Not Found")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"message": "Service is running",
		})
	})

	// Shopify 后台两种路径都配置过
	r.POST("/webhooks/orders/create", webhookHandler.OrderCreate)
	r.POST("/webhook/orders/create", webhookHandler.OrderCreate)

	if notifyHandler != nil {
		v1 := r.Group("/api/v1")
		{
			v1.POST("/test-email", notifyHandler.TestEmail)
		}
	}

	return r
}
