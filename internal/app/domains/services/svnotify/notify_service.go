package svnotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdrouting"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/render"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

const samplePONumber = "TEST-12345"

// ErrRecipientNotAllowed 指定的收件人不在内部或运营名单中
var ErrRecipientNotAllowed = errors.New("recipient is not an internal address")

// NotifyService 邮件链路自检
type NotifyService struct {
	renderer render.Renderer
	notifier mail.Notifier
	routes   *mdrouting.Table
	supplier string
	notify   config.NotifyConfig
	logger   logger.Logger
}

// NewNotifyService 创建服务，supplier 为样例邮件使用的供应商
func NewNotifyService(renderer render.Renderer, notifier mail.Notifier, routes *mdrouting.Table, supplier string, notify config.NotifyConfig, log logger.Logger) *NotifyService {
	return &NotifyService{
		renderer: renderer,
		notifier: notifier,
		routes:   routes,
		supplier: supplier,
		notify:   notify,
		logger:   log,
	}
}

// SendTestEmail 用固定样例数据渲染标准下单邮件并发送
// 默认发给内部名单；指定收件人时只能从内部或运营名单中挑选，不会抄送供应商
func (s *NotifyService) SendTestEmail(ctx context.Context, recipients []string) (*mail.Message, error) {
	if len(recipients) == 0 {
		recipients = s.notify.InternalRecipients
	}
	for _, addr := range recipients {
		if !s.allowed(addr) {
			return nil, fmt.Errorf("%w: %s", ErrRecipientNotAllowed, addr)
		}
	}

	route, _ := s.routes.Lookup(s.supplier)
	html, err := s.renderer.RenderOrder(render.OrderEmail{
		Supplier:      s.supplier,
		AccountNumber: route.AccountNumber,
		Shipping: etorder.ShippingDetails{
			Name:          "Test Customer",
			Address:       "123 Test St, Test City, TS 12345 Canada",
			ContactNumber: "555-123-4567",
			PONumber:      samplePONumber,
		},
		Products: []etorder.ProductDetail{
			{SKU: "TEST-SKU-123", Title: "Test Product", Quantity: 1, Price: 99.99},
		},
	})
	if err != nil {
		return nil, err
	}

	msg := mail.Message{
		To:      recipients,
		Subject: s.routes.Subject(s.supplier, samplePONumber),
		HTML:    html,
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("send test email: %w", err)
	}

	s.logger.Infof(ctx, "test email sent to %v", recipients)
	return &msg, nil
}

func (s *NotifyService) allowed(addr string) bool {
	for _, list := range [][]string{s.notify.InternalRecipients, s.notify.OperationsRecipients} {
		for _, known := range list {
			if strings.EqualFold(strings.TrimSpace(known), strings.TrimSpace(addr)) {
				return true
			}
		}
	}
	return false
}
