package rpshoptest

import "github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"

// 默认判定目标
const (
	TargetSupplier  = "Best Buy"
	TargetWarehouse = "A - Dropship (Abbey Lane)"
)

// NewOrder 构造测试订单，收货地址国家为 country
func NewOrder(id int64, country string, items ...*etorder.LineItem) *etorder.Order {
	return &etorder.Order{
		ID:          id,
		OrderNumber: 1000 + id,
		Name:        "#order",
		LineItems:   items,
		ShipTo: &etorder.ShippingAddress{
			FirstName:    "Jane",
			LastName:     "Doe",
			Address1:     "12 King St",
			Address2:     "Apt 3",
			City:         "Toronto",
			ProvinceCode: "ON",
			Zip:          "M5V 1A1",
			Country:      country,
			Phone:        "416-555-0101",
		},
	}
}

// Item 构造商品行，productID/variantID 同时作为 Provider 的查询键
func Item(productID, variantID int64, sku string, qty int, price float64) *etorder.LineItem {
	return &etorder.LineItem{
		ID:        productID*10 + variantID,
		ProductID: productID,
		VariantID: variantID,
		SKU:       sku,
		Title:     "Item " + sku,
		Quantity:  qty,
		Price:     price,
	}
}

// Qualify 让 Provider 把商品行判定为目标供应商+目标仓
func (p *Provider) Qualify(items ...*etorder.LineItem) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range items {
		p.Suppliers[item.ProductID] = TargetSupplier
		p.Warehouses[item.VariantID] = TargetWarehouse
	}
	return p
}
