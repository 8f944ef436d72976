package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OrderWebhookRequest orders/create webhook 载荷（只声明用到的字段）
type OrderWebhookRequest struct {
	ID              int64            `json:"id"`
	OrderNumber     int64            `json:"order_number"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	Tags            string           `json:"tags"`
	LineItems       []*LineItem      `json:"line_items"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
	ShippingLines   []*ShippingLine  `json:"shipping_lines"`
}

// LineItem 商品行
type LineItem struct {
	ID            int64   `json:"id"`
	ProductID     *int64  `json:"product_id"`
	VariantID     *int64  `json:"variant_id"`
	SKU           string  `json:"sku"`
	Title         string  `json:"title"`
	VariantTitle  *string `json:"variant_title"`
	Vendor        string  `json:"vendor"`
	Quantity      int     `json:"quantity"`
	Price         Amount  `json:"price"`
	TotalDiscount Amount  `json:"total_discount"`
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// ShippingLine 运费行
type ShippingLine struct {
	Title string `json:"title"`
}

// Amount 金额，Shopify 以字符串下发（"100.00"），也兼容数字
type Amount float64

// UnmarshalJSON 解析字符串或数字金额
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	*a = Amount(f)
	return nil
}
