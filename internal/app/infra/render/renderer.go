package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	orderTemplate          = "order.html"
	riskAlertTemplate      = "risk_alert.html"
	addressWarningTemplate = "address_warning.html"
)

// OrderEmail 标准下单邮件数据
type OrderEmail struct {
	Supplier      string
	AccountNumber string
	Shipping      etorder.ShippingDetails
	Products      []etorder.ProductDetail
}

// RiskAlertEmail 高风险订单提醒
type RiskAlertEmail struct {
	RiskScore float64
	Shipping  etorder.ShippingDetails
	Products  []etorder.ProductDetail
}

// AddressWarningEmail 地址告警提醒
type AddressWarningEmail struct {
	ValidationResult string
	Shipping         etorder.ShippingDetails
	Products         []etorder.ProductDetail
}

// Renderer 邮件正文渲染
type Renderer interface {
	RenderOrder(data OrderEmail) (string, error)
	RenderRiskAlert(data RiskAlertEmail) (string, error)
	RenderAddressWarning(data AddressWarningEmail) (string, error)
}

// TemplateRenderer 基于内嵌 html/template 的实现
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer 解析内嵌模板
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("email").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

func (r *TemplateRenderer) RenderOrder(data OrderEmail) (string, error) {
	return r.execute(orderTemplate, data)
}

func (r *TemplateRenderer) RenderRiskAlert(data RiskAlertEmail) (string, error) {
	return r.execute(riskAlertTemplate, data)
}

func (r *TemplateRenderer) RenderAddressWarning(data AddressWarningEmail) (string, error) {
	return r.execute(addressWarningTemplate, data)
}

func (r *TemplateRenderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errorx.ErrRender, name, err)
	}
	return buf.String(), nil
}
