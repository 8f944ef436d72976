package rpshop

import (
	"context"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etprimitive"
)

// OrderDataProvider 订单外部数据访问接口（由 Shopify Admin API 实现）
// 查询类方法不返回 error：失败统一折叠为 Unavailable，由调用方按缺省值处理
type OrderDataProvider interface {
	// WarehouseType 商品行对应的发货仓/地点名称
	WarehouseType(ctx context.Context, order *etorder.Order, variantID int64) etprimitive.Lookup[string]

	// ProductSupplier 商品 metafield 中配置的供应商
	ProductSupplier(ctx context.Context, productID int64) etprimitive.Lookup[string]

	// RiskScore 订单风险分，无风险记录时为 Unavailable
	RiskScore(ctx context.Context, orderID int64) etprimitive.Lookup[float64]

	// AddressValidation 收货地址校验结论
	AddressValidation(ctx context.Context, orderID int64) etprimitive.Lookup[string]

	// AppendOrderTag 追加订单标记，已存在时不重复写入；added 表示本次是否真正写入
	AppendOrderTag(ctx context.Context, orderID int64, tag string) (added bool, err error)
}
