package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
)

// ParseOrderWebhook 解析原始 webhook 字节并转换为领域对象
// 任何格式问题都返回包装 errorx.ErrParse 的错误
func ParseOrderWebhook(raw []byte) (*etorder.Order, error) {
	var req OrderWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrParse, err)
	}

	order, err := req.ToOrderEntity()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrParse, err)
	}
	return order, nil
}

// ToOrderEntity 转换为订单领域对象
func (r *OrderWebhookRequest) ToOrderEntity() (*etorder.Order, error) {
	order, err := etorder.NewOrder(r.ID, r.OrderNumber, r.ShippingAddress.toEntity(), r.toLineItems())
	if err != nil {
		return nil, err
	}

	order.Name = r.Name
	order.Email = r.Email
	order.Phone = r.Phone
	order.Tags = splitTags(r.Tags)
	for _, line := range r.ShippingLines {
		if line != nil {
			order.ShippingLines = append(order.ShippingLines, line.Title)
		}
	}

	return order, nil
}

func (a *ShippingAddress) toEntity() *etorder.ShippingAddress {
	if a == nil {
		return nil
	}
	return &etorder.ShippingAddress{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Address1:     a.Address1,
		Address2:     a.Address2,
		City:         a.City,
		ProvinceCode: a.ProvinceCode,
		Zip:          a.Zip,
		Country:      a.Country,
		Phone:        a.Phone,
	}
}

func (r *OrderWebhookRequest) toLineItems() []*etorder.LineItem {
	items := make([]*etorder.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		if li == nil {
			continue
		}
		item := &etorder.LineItem{
			ID:            li.ID,
			SKU:           li.SKU,
			Title:         li.Title,
			Vendor:        li.Vendor,
			Quantity:      li.Quantity,
			Price:         float64(li.Price),
			TotalDiscount: float64(li.TotalDiscount),
		}
		if li.ProductID != nil {
			item.ProductID = *li.ProductID
		}
		if li.VariantID != nil {
			item.VariantID = *li.VariantID
		}
		if li.VariantTitle != nil {
			item.VariantTitle = *li.VariantTitle
		}
		items = append(items, item)
	}
	return items
}

// splitTags 按逗号拆分标签并去除空白
func splitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
