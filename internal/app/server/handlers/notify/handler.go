package notify

import (
	"context"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// TestEmailSender 测试邮件发送
type TestEmailSender interface {
	SendTestEmail(ctx context.Context, recipients []string) (*mail.Message, error)
}

// NotifyHandler 邮件自检 HTTP 处理器
type NotifyHandler struct {
	notifyService TestEmailSender
	logger        logger.Logger
}

// NewNotifyHandler 创建处理器实例
func NewNotifyHandler(notifyService TestEmailSender, log logger.Logger) *NotifyHandler {
	return &NotifyHandler{
		notifyService: notifyService,
		logger:        log,
	}
}
