package etorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAddress() *ShippingAddress {
	return &ShippingAddress{
		FirstName:    "Jane",
		LastName:     "Doe",
		Address1:     "12 King St",
		Address2:     "Apt 3",
		City:         "Toronto",
		ProvinceCode: "ON",
		Zip:          "M5V 1A1",
		Country:      "Canada",
		Phone:        "416-555-0101",
	}
}

func TestNewOrder(t *testing.T) {
	_, err := NewOrder(0, 1001, sampleAddress(), nil)
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	noShip, err := NewOrder(1, 1001, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, noShip.Country())
	assert.Equal(t, "1001", noShip.ShippingDetails(nil).PONumber)

	order, err := NewOrder(1, 1001, sampleAddress(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Canada", order.Country())
	assert.Equal(t, "1001", order.PONumber())
}

func TestLineItem_NetPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     LineItem
		expected float64
	}{
		{"discounted pair", LineItem{Price: 100.00, Quantity: 2, TotalDiscount: 10.00}, 190.00},
		{"single", LineItem{Price: 19.99, Quantity: 1}, 19.99},
		{"rounding", LineItem{Price: 0.125, Quantity: 3}, 0.38},
		{"zero quantity", LineItem{Price: 50, Quantity: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.item.NetPrice(), 1e-9)
		})
	}
}

func TestLineItem_ComposedTitle(t *testing.T) {
	assert.Equal(t, "Walker - Large", (&LineItem{Title: "Walker", VariantTitle: "Large"}).ComposedTitle())
	assert.Equal(t, "Walker", (&LineItem{Title: "Walker"}).ComposedTitle())
}

func TestOrder_ShippingDetails(t *testing.T) {
	order, err := NewOrder(7, 1042, sampleAddress(), nil)
	require.NoError(t, err)

	details := order.ShippingDetails(func(s string) string { return "Unit 3" })
	assert.Equal(t, "Jane Doe", details.Name)
	assert.Equal(t, "12 King St, Unit 3, Toronto, ON M5V 1A1 Canada", details.Address)
	assert.Equal(t, "416-555-0101", details.ContactNumber)
	assert.Equal(t, "1042", details.PONumber)

	order.ShipTo.Address2 = ""
	order.ShipTo.Phone = ""
	order.Phone = "905-555-0199"
	details = order.ShippingDetails(nil)
	assert.Equal(t, "12 King St, Toronto, ON M5V 1A1 Canada", details.Address)
	assert.Equal(t, "905-555-0199", details.ContactNumber)
}

func TestOrder_ProductDetailsKeepsOrder(t *testing.T) {
	order, err := NewOrder(7, 1042, sampleAddress(), []*LineItem{
		{SKU: "A-1", Title: "Walker", VariantTitle: "Large", Quantity: 2, Price: 100, TotalDiscount: 10},
		{SKU: "B-2", Title: "Cane", Quantity: 1, Price: 25.5},
	})
	require.NoError(t, err)

	details := order.ProductDetails()
	require.Len(t, details, 2)
	assert.Equal(t, ProductDetail{SKU: "A-1", Title: "Walker - Large", Quantity: 2, Price: 190}, details[0])
	assert.Equal(t, ProductDetail{SKU: "B-2", Title: "Cane", Quantity: 1, Price: 25.5}, details[1])
}

func TestOrder_HasTag(t *testing.T) {
	order := &Order{Tags: []string{"vip", " JARVIS - Ordered "}}
	assert.True(t, order.HasTag("JARVIS - Ordered"))
	assert.False(t, order.HasTag("other"))
}
