// Package rpshoptest 内存版订单数据提供者，供各层测试使用
package rpshoptest

import (
	"context"
	"errors"
	"sync"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etprimitive"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/repo/rpshop"
)

// Provider 按 ID 返回预置数据，未预置的查询返回 Unavailable
type Provider struct {
	mu sync.Mutex

	Warehouses  map[int64]string  // variantID -> warehouse
	Suppliers   map[int64]string  // productID -> supplier
	Risks       map[int64]float64 // orderID -> score
	Validations map[int64]string  // orderID -> summary
	Tags        map[int64][]string
	TagErr      error

	Calls     map[string]int
	TagWrites int
}

var _ rpshop.OrderDataProvider = (*Provider)(nil)

// NewProvider 创建空的 Provider
func NewProvider() *Provider {
	return &Provider{
		Warehouses:  map[int64]string{},
		Suppliers:   map[int64]string{},
		Risks:       map[int64]float64{},
		Validations: map[int64]string{},
		Tags:        map[int64][]string{},
		Calls:       map[string]int{},
	}
}

func (p *Provider) record(op string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls[op]++
}

// CallCount 某个操作被调用的次数
func (p *Provider) CallCount(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Calls[op]
}

// TagsOf 订单当前的标记
func (p *Provider) TagsOf(orderID int64) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Tags[orderID]...)
}

func (p *Provider) WarehouseType(_ context.Context, _ *etorder.Order, variantID int64) etprimitive.Lookup[string] {
	p.record("WarehouseType")
	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.Warehouses[variantID]; ok {
		return etprimitive.Found(w)
	}
	return etprimitive.Unavailable[string]("unknown variant")
}

func (p *Provider) ProductSupplier(_ context.Context, productID int64) etprimitive.Lookup[string] {
	p.record("ProductSupplier")
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.Suppliers[productID]; ok {
		return etprimitive.Found(s)
	}
	return etprimitive.Unavailable[string]("no supplier")
}

func (p *Provider) RiskScore(_ context.Context, orderID int64) etprimitive.Lookup[float64] {
	p.record("RiskScore")
	p.mu.Lock()
	defer p.mu.Unlock()
	if r, ok := p.Risks[orderID]; ok {
		return etprimitive.Found(r)
	}
	return etprimitive.Unavailable[float64]("no risk record")
}

func (p *Provider) AddressValidation(_ context.Context, orderID int64) etprimitive.Lookup[string] {
	p.record("AddressValidation")
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.Validations[orderID]; ok {
		return etprimitive.Found(v)
	}
	return etprimitive.Unavailable[string]("no validation result")
}

func (p *Provider) AppendOrderTag(_ context.Context, orderID int64, tag string) (bool, error) {
	p.record("AppendOrderTag")
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TagErr != nil {
		return false, p.TagErr
	}
	for _, t := range p.Tags[orderID] {
		if t == tag {
			return false, nil
		}
	}
	p.Tags[orderID] = append(p.Tags[orderID], tag)
	p.TagWrites++
	return true, nil
}

// ErrUnavailable 预置的失败
var ErrUnavailable = errors.New("shopify unavailable")
