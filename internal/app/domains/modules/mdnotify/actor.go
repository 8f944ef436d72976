package mdnotify

import (
	"context"
	"fmt"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdaddress"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdenrich"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdoutcome"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdrouting"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/repo/rpshop"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/render"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// ActionReport 执行结果，发送或打标失败只记录不返回
type ActionReport struct {
	Outcome    mdoutcome.Outcome
	Subject    string
	Recipients []string
	Sent       bool
	SendErr    error
	TagAdded   bool
	TagErr     error
}

// Actor 按决策结果渲染、发信、打标
type Actor struct {
	renderer   render.Renderer
	notifier   mail.Notifier
	provider   rpshop.OrderDataProvider
	routes     *mdrouting.Table
	normalizer mdaddress.Normalizer
	notify     config.NotifyConfig
	logger     logger.Logger
}

// NewActor 创建执行器
func NewActor(
	renderer render.Renderer,
	notifier mail.Notifier,
	provider rpshop.OrderDataProvider,
	routes *mdrouting.Table,
	normalizer mdaddress.Normalizer,
	notify config.NotifyConfig,
	log logger.Logger,
) *Actor {
	return &Actor{
		renderer:   renderer,
		notifier:   notifier,
		provider:   provider,
		routes:     routes,
		normalizer: normalizer,
		notify:     notify,
		logger:     log,
	}
}

// Act 执行决策
// RiskAlert / AddressWarning 只通知运营，不发供应商邮件也不打标
// StandardOrder 发送成功后才打标
func (a *Actor) Act(ctx context.Context, order *etorder.Order, enrichment *mdenrich.Enrichment, decision mdoutcome.Decision) *ActionReport {
	report := &ActionReport{Outcome: decision.Outcome}
	if decision.Outcome == mdoutcome.Skipped {
		return report
	}

	shipping := order.ShippingDetails(a.normalizer.Normalize)
	products := order.ProductDetails()

	var html string
	var err error
	switch decision.Outcome {
	case mdoutcome.RiskAlert:
		report.Subject = fmt.Sprintf("High Risk Order Alert - PO %s", shipping.PONumber)
		report.Recipients = a.notify.OperationsRecipients
		html, err = a.renderer.RenderRiskAlert(render.RiskAlertEmail{
			RiskScore: enrichment.RiskScore(),
			Shipping:  shipping,
			Products:  products,
		})
	case mdoutcome.AddressWarning:
		report.Subject = fmt.Sprintf("Address Validation Warning - PO %s", shipping.PONumber)
		report.Recipients = a.notify.OperationsRecipients
		html, err = a.renderer.RenderAddressWarning(render.AddressWarningEmail{
			ValidationResult: enrichment.AddressResult(),
			Shipping:         shipping,
			Products:         products,
		})
	case mdoutcome.StandardOrder:
		supplier := enrichment.Qualification.Supplier
		route, _ := a.routes.Lookup(supplier)
		report.Subject = a.routes.Subject(supplier, shipping.PONumber)
		report.Recipients = a.routes.Recipients(a.notify.InternalRecipients, supplier)
		html, err = a.renderer.RenderOrder(render.OrderEmail{
			Supplier:      supplier,
			AccountNumber: route.AccountNumber,
			Shipping:      shipping,
			Products:      products,
		})
	default:
		report.SendErr = fmt.Errorf("unsupported outcome %s", decision.Outcome)
		return report
	}
	if err != nil {
		a.logger.Errorf(ctx, "render %s email failed: %v", decision.Outcome, err)
		report.SendErr = err
		return report
	}

	if err := a.notifier.Send(ctx, mail.Message{To: report.Recipients, Subject: report.Subject, HTML: html}); err != nil {
		a.logger.Errorf(ctx, "send %s email failed: %v", decision.Outcome, err)
		report.SendErr = err
		return report
	}
	report.Sent = true
	a.logger.Infof(ctx, "%s email sent to %v", decision.Outcome, report.Recipients)

	if decision.Outcome == mdoutcome.StandardOrder {
		// 载荷里已带标记说明之前下过单，省掉一次读写
		if order.HasTag(a.notify.OrderTag) {
			a.logger.Infof(ctx, "order already carries %q, skip tagging", a.notify.OrderTag)
			return report
		}
		report.TagAdded, report.TagErr = a.provider.AppendOrderTag(ctx, order.ID, a.notify.OrderTag)
		if report.TagErr != nil {
			a.logger.Warnf(ctx, "tag order failed: %v", report.TagErr)
		}
	}
	return report
}
