package webhook

import (
	"context"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// OrderWebhookService 订单 webhook 的应答前与应答后两段处理
type OrderWebhookService interface {
	Accept(ctx context.Context, raw []byte, signature string) (*etorder.Order, error)
	Dispatch(ctx context.Context, order *etorder.Order) error
}

// WebhookHandler Shopify webhook HTTP 处理器
type WebhookHandler struct {
	webhookService OrderWebhookService
	logger         logger.Logger
}

// NewWebhookHandler 创建 webhook 处理器实例
func NewWebhookHandler(webhookService OrderWebhookService, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         log,
	}
}
