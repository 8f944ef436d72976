package shopify

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etprimitive"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/repo/rpshop"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

const (
	supplierNamespace = "custom"
	supplierKey       = "supplier"
)

const addressValidationQuery = `query {
  order(id: "gid://shopify/Order/%d") {
    shippingAddress {
      validationResultSummary
    }
  }
}`

// OrderDataProvider 基于 Admin API 的订单数据提供者
type OrderDataProvider struct {
	client *Client
	logger logger.Logger
}

var _ rpshop.OrderDataProvider = (*OrderDataProvider)(nil)

// NewOrderDataProvider 创建订单数据提供者
func NewOrderDataProvider(client *Client, log logger.Logger) *OrderDataProvider {
	return &OrderDataProvider{client: client, logger: log}
}

// WarehouseType 解析商品行的发货地点
// 依次尝试：履约单分配地点名 → 地点详情 → 供应商自发货 → 运费行标题
func (p *OrderDataProvider) WarehouseType(ctx context.Context, order *etorder.Order, variantID int64) etprimitive.Lookup[string] {
	var resp fulfillmentOrdersResponse
	if err := p.client.Get(ctx, p.client.restPath("orders/%d/fulfillment_orders.json", order.ID), &resp); err != nil {
		p.logger.Warnf(ctx, "fetch fulfillment orders failed: %v", err)
		return etprimitive.Unavailable[string](errorx.Lookup("fulfillment_orders", err).Error())
	}

	if fo := pickFulfillmentOrder(resp.FulfillmentOrders, variantID); fo != nil {
		if fo.AssignedLocation != nil && fo.AssignedLocation.Name != "" {
			return etprimitive.Found(fo.AssignedLocation.Name)
		}

		if fo.AssignedLocationID != 0 {
			var loc locationResponse
			if err := p.client.Get(ctx, p.client.restPath("locations/%d.json", fo.AssignedLocationID), &loc); err != nil {
				p.logger.Warnf(ctx, "fetch location %d failed: %v", fo.AssignedLocationID, err)
				return etprimitive.Unavailable[string](errorx.Lookup("locations", err).Error())
			}
			if loc.Location.Name == "" {
				return etprimitive.Unavailable[string](fmt.Sprintf("location %d has no name", fo.AssignedLocationID))
			}
			return etprimitive.Found(loc.Location.Name)
		}
	}

	if item := pickLineItem(order.LineItems, variantID); item != nil && item.Vendor != "" {
		return etprimitive.Found(item.Vendor + " (Vendor Fulfilled)")
	}

	if len(order.ShippingLines) > 0 && order.ShippingLines[0] != "" {
		return etprimitive.Found(order.ShippingLines[0])
	}

	return etprimitive.Unavailable[string]("no fulfillment location")
}

// ProductSupplier 读取商品 custom.supplier metafield
func (p *OrderDataProvider) ProductSupplier(ctx context.Context, productID int64) etprimitive.Lookup[string] {
	if productID == 0 {
		return etprimitive.Unavailable[string]("line item has no product")
	}

	var resp metafieldsResponse
	if err := p.client.Get(ctx, p.client.restPath("products/%d/metafields.json", productID), &resp); err != nil {
		p.logger.Warnf(ctx, "fetch metafields for product %d failed: %v", productID, err)
		return etprimitive.Unavailable[string](errorx.Lookup("metafields", err).Error())
	}

	for _, m := range resp.Metafields {
		if m == nil || m.Namespace != supplierNamespace || m.Key != supplierKey {
			continue
		}
		if value, ok := m.Value.(string); ok && value != "" {
			return etprimitive.Found(value)
		}
	}
	return etprimitive.Unavailable[string]("no supplier metafield")
}

// RiskScore 取第一条风险记录的分数
func (p *OrderDataProvider) RiskScore(ctx context.Context, orderID int64) etprimitive.Lookup[float64] {
	var resp risksResponse
	if err := p.client.Get(ctx, p.client.restPath("orders/%d/risks.json", orderID), &resp); err != nil {
		p.logger.Warnf(ctx, "fetch risks failed: %v", err)
		return etprimitive.Unavailable[float64](errorx.Lookup("risks", err).Error())
	}

	if len(resp.Risks) == 0 || resp.Risks[0] == nil || resp.Risks[0].Score == nil {
		return etprimitive.Unavailable[float64]("no risk record")
	}

	score := float64(*resp.Risks[0].Score)
	// NaN 与任何阈值比较都为 false，会被当作低风险
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 1 {
		p.logger.Warnf(ctx, "risk score %v out of range, ignored", score)
		return etprimitive.Unavailable[float64](fmt.Sprintf("invalid risk score %v", score))
	}
	return etprimitive.Found(score)
}

// AddressValidation 通过 GraphQL 读取收货地址校验结论
func (p *OrderDataProvider) AddressValidation(ctx context.Context, orderID int64) etprimitive.Lookup[string] {
	var data addressValidationData
	if err := p.client.GraphQL(ctx, fmt.Sprintf(addressValidationQuery, orderID), &data); err != nil {
		p.logger.Warnf(ctx, "fetch address validation failed: %v", err)
		return etprimitive.Unavailable[string](errorx.Lookup("address_validation", err).Error())
	}

	if data.Order == nil || data.Order.ShippingAddress == nil ||
		data.Order.ShippingAddress.ValidationResultSummary == nil ||
		*data.Order.ShippingAddress.ValidationResultSummary == "" {
		return etprimitive.Unavailable[string]("no validation result")
	}
	return etprimitive.Found(*data.Order.ShippingAddress.ValidationResultSummary)
}

// AppendOrderTag 读取现有标记，不存在时追加并写回
// 读-改-写之间没有加锁，并发重复投递可能互相覆盖
func (p *OrderDataProvider) AppendOrderTag(ctx context.Context, orderID int64, tag string) (bool, error) {
	path := p.client.restPath("orders/%d.json", orderID)

	var current orderTagsResponse
	if err := p.client.Get(ctx, path+"?fields=id,tags", &current); err != nil {
		return false, fmt.Errorf("%w: read tags: %v", errorx.ErrTag, err)
	}

	tags := splitTags(current.Order.Tags)
	for _, t := range tags {
		if t == tag {
			p.logger.Infof(ctx, "tag %q already present", tag)
			return false, nil
		}
	}
	tags = append(tags, tag)

	update := orderTagsUpdate{Order: orderTagsPayload{ID: orderID, Tags: strings.Join(tags, ", ")}}
	if err := p.client.Put(ctx, path, update, nil); err != nil {
		return false, fmt.Errorf("%w: write tags: %v", errorx.ErrTag, err)
	}

	p.logger.Infof(ctx, "tag %q added", tag)
	return true, nil
}

// pickFulfillmentOrder 优先选择包含该规格的履约单，否则取第一个
func pickFulfillmentOrder(orders []*fulfillmentOrder, variantID int64) *fulfillmentOrder {
	if len(orders) == 0 {
		return nil
	}
	if variantID != 0 {
		for _, fo := range orders {
			if fo == nil {
				continue
			}
			for _, li := range fo.LineItems {
				if li != nil && li.VariantID == variantID {
					return fo
				}
			}
		}
	}
	return orders[0]
}

func pickLineItem(items []*etorder.LineItem, variantID int64) *etorder.LineItem {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if variantID != 0 && item.VariantID == variantID {
			return item
		}
	}
	return items[0]
}

func splitTags(tags string) []string {
	result := make([]string, 0)
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			result = append(result, t)
		}
	}
	return result
}
