package webhook

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdsignature"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/ginx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

const (
	webhookIDHeader = "X-Shopify-Webhook-Id"
	topicHeader     = "X-Shopify-Topic"

	maxBodyBytes = 5 << 20
)

// OrderCreate 订单创建 webhook
// POST /webhooks/orders/create
// 验签和解析在应答前完成，其余处理交给后台处理器
func (h *WebhookHandler) OrderCreate(c *gin.Context) {
	traceID := c.GetHeader(webhookIDHeader)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	ctx := logger.WithTraceID(c.Request.Context(), traceID)
	ctx = logger.WithTopic(ctx, c.GetHeader(topicHeader))
	// 中间件记录 c.Errors 时带上同样的日志字段
	c.Request = c.Request.WithContext(ctx)

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		_ = c.Error(fmt.Errorf("read webhook body: %w", err))
		ginx.InternalError(c, "Internal Server Error")
		return
	}

	order, err := h.webhookService.Accept(ctx, raw, c.GetHeader(mdsignature.HeaderName))
	if err != nil {
		if errors.Is(err, errorx.ErrAuthentication) {
			h.logger.Warnf(ctx, "webhook rejected: %v", err)
			ginx.Unauthorized(c, "Unauthorized - Invalid HMAC")
			return
		}
		_ = c.Error(err)
		ginx.InternalError(c, "Internal Server Error")
		return
	}

	ctx = logger.WithOrderID(ctx, order.ID)
	ginx.Ack(c, "Webhook received")
	c.Writer.Flush()

	if err := h.webhookService.Dispatch(ctx, order); err != nil {
		// 已经应答，只能记录
		_ = c.Error(fmt.Errorf("dispatch order %d: %w", order.ID, err))
	}
}
