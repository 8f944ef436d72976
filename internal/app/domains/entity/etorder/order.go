package etorder

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// 错误定义
var (
	ErrInvalidOrderID = errors.New("order ID cannot be empty")
)

// Order 订单聚合根（webhook 载荷解析后的领域对象，处理期间不可变）
type Order struct {
	ID            int64
	OrderNumber   int64
	Name          string // 展示用订单名，如 "#1001"
	Email         string
	Phone         string
	Tags          []string
	LineItems     []*LineItem
	ShipTo        *ShippingAddress
	ShippingLines []string // 运费行标题
}

// LineItem 商品行（值对象）
type LineItem struct {
	ID            int64
	ProductID     int64
	VariantID     int64
	SKU           string
	Title         string
	VariantTitle  string
	Vendor        string
	Quantity      int
	Price         float64 // 单价
	TotalDiscount float64 // 整行折扣
}

// ShippingAddress 收货地址（值对象）
type ShippingAddress struct {
	FirstName    string
	LastName     string
	Address1     string
	Address2     string
	City         string
	ProvinceCode string
	Zip          string
	Country      string
	Phone        string
}

// ShippingDetails 邮件中的收货信息（派生，不持久化）
type ShippingDetails struct {
	Name          string
	Address       string
	ContactNumber string
	PONumber      string
}

// ProductDetail 邮件中的商品信息（派生，与 line_items 顺序一致）
type ProductDetail struct {
	SKU      string
	Title    string
	Quantity int
	Price    float64
}

// NewOrder 创建订单（工厂方法）
// shipTo 可以为空：自提、数字商品、礼品卡订单没有收货地址
func NewOrder(id int64, orderNumber int64, shipTo *ShippingAddress, items []*LineItem) (*Order, error) {
	if id <= 0 {
		return nil, ErrInvalidOrderID
	}
	return &Order{
		ID:          id,
		OrderNumber: orderNumber,
		ShipTo:      shipTo,
		LineItems:   items,
	}, nil
}

// Country 收货国家
func (o *Order) Country() string {
	if o.ShipTo == nil {
		return ""
	}
	return o.ShipTo.Country
}

// PONumber 采购单号即订单号
func (o *Order) PONumber() string {
	if o.OrderNumber > 0 {
		return strconv.FormatInt(o.OrderNumber, 10)
	}
	return strings.TrimPrefix(o.Name, "#")
}

// HasTag 订单是否已带某个标记
func (o *Order) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if strings.TrimSpace(t) == tag {
			return true
		}
	}
	return false
}

// ShippingDetails 组装收货信息，normalize 用于规范化地址第二行
func (o *Order) ShippingDetails(normalize func(string) string) ShippingDetails {
	details := ShippingDetails{PONumber: o.PONumber()}
	if o.ShipTo == nil {
		return details
	}

	a := o.ShipTo
	details.Name = strings.TrimSpace(a.FirstName + " " + a.LastName)

	line2 := a.Address2
	if normalize != nil {
		line2 = normalize(line2)
	}
	line2 = strings.TrimSpace(line2)

	var b strings.Builder
	b.WriteString(a.Address1)
	b.WriteString(", ")
	if line2 != "" {
		b.WriteString(line2)
		b.WriteString(", ")
	}
	b.WriteString(a.City)
	b.WriteString(", ")
	b.WriteString(a.ProvinceCode)
	b.WriteString(" ")
	b.WriteString(a.Zip)
	b.WriteString(" ")
	b.WriteString(a.Country)
	details.Address = b.String()

	details.ContactNumber = a.Phone
	if details.ContactNumber == "" {
		details.ContactNumber = o.Phone
	}
	return details
}

// ProductDetails 按 line_items 顺序生成商品信息
func (o *Order) ProductDetails() []ProductDetail {
	details := make([]ProductDetail, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		details = append(details, item.Detail())
	}
	return details
}

// ComposedTitle 标题 + " - " + 规格名
func (li *LineItem) ComposedTitle() string {
	if li.VariantTitle != "" {
		return li.Title + " - " + li.VariantTitle
	}
	return li.Title
}

// NetPrice 行净价 = 单价 * 数量 - 折扣，保留两位小数
func (li *LineItem) NetPrice() float64 {
	return roundTo2Decimals(li.Price*float64(li.Quantity) - li.TotalDiscount)
}

// Detail 转为邮件商品信息
func (li *LineItem) Detail() ProductDetail {
	return ProductDetail{
		SKU:      li.SKU,
		Title:    li.ComposedTitle(),
		Quantity: li.Quantity,
		Price:    li.NetPrice(),
	}
}

// roundTo2Decimals 四舍五入到两位小数
func roundTo2Decimals(f float64) float64 {
	return math.Round(f*100) / 100
}
