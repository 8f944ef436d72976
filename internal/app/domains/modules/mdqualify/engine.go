package mdqualify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etprimitive"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/repo/rpshop"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// 不通过原因
const (
	ReasonCountryMismatch = "country_mismatch"
	ReasonNoLineItems     = "no_line_items"
	ReasonLineMismatch    = "line_mismatch"
)

// maxConcurrentLookups 单个订单同时在途的外部查询上限
const maxConcurrentLookups = 8

// LineVerdict 单个商品行判定结果
type LineVerdict struct {
	LineItemID int64
	Supplier   etprimitive.Lookup[string]
	Warehouse  etprimitive.Lookup[string]
	Qualified  bool
}

// Result 订单判定结果
type Result struct {
	Qualified bool
	Reason    string
	Supplier  string // 通过时为命中的供应商
	Lines     []*LineVerdict
}

// Engine 自动下单资格判定
type Engine struct {
	provider rpshop.OrderDataProvider
	rule     *LineRule
	targets  config.QualificationConfig
	logger   logger.Logger
}

// NewEngine 创建判定引擎，规则为空时使用默认规则
func NewEngine(provider rpshop.OrderDataProvider, cfg config.QualificationConfig, log logger.Logger) (*Engine, error) {
	expr := cfg.LineRule
	if expr == "" {
		expr = config.DefaultLineRule
	}
	rule, err := NewLineRule(expr)
	if err != nil {
		return nil, err
	}
	return &Engine{provider: provider, rule: rule, targets: cfg, logger: log}, nil
}

// Qualify 判定订单是否走自动下单
// 国家不符时不发起任何外部查询；任一商品行不通过则整单不通过
func (e *Engine) Qualify(ctx context.Context, order *etorder.Order) *Result {
	if order.Country() != e.targets.TargetCountry {
		e.logger.Infof(ctx, "order ships to %q, skip", order.Country())
		return &Result{Reason: ReasonCountryMismatch}
	}
	if len(order.LineItems) == 0 {
		return &Result{Reason: ReasonNoLineItems}
	}

	lines := make([]*LineVerdict, len(order.LineItems))
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentLookups)
	for i, item := range order.LineItems {
		verdict := &LineVerdict{LineItemID: item.ID}
		lines[i] = verdict

		g.Go(func() error {
			verdict.Warehouse = e.provider.WarehouseType(ctx, order, item.VariantID)
			return nil
		})
		g.Go(func() error {
			verdict.Supplier = e.provider.ProductSupplier(ctx, item.ProductID)
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{Qualified: true, Lines: lines}
	for _, line := range lines {
		line.Qualified = e.evalLine(ctx, order, line)
		e.logger.Debugf(ctx, "line %d supplier=%s warehouse=%s qualified=%v",
			line.LineItemID, line.Supplier, line.Warehouse, line.Qualified)
		if !line.Qualified {
			result.Qualified = false
			result.Reason = ReasonLineMismatch
		}
	}

	if result.Qualified {
		result.Supplier = lines[0].Supplier.Value()
	}
	return result
}

func (e *Engine) evalLine(ctx context.Context, order *etorder.Order, line *LineVerdict) bool {
	facts := LineFacts{
		Supplier:        line.Supplier.Value(),
		SupplierFound:   line.Supplier.IsFound(),
		Warehouse:       line.Warehouse.Value(),
		WarehouseFound:  line.Warehouse.IsFound(),
		TargetSupplier:  e.targets.TargetSupplier,
		TargetWarehouse: e.targets.TargetWarehouse,
		Country:         order.Country(),
	}
	ok, err := e.rule.Eval(facts)
	if err != nil {
		e.logger.Errorf(ctx, "line %d: %v", line.LineItemID, err)
		return false
	}
	return ok
}

// String 用于日志
func (r *Result) String() string {
	if r.Qualified {
		return fmt.Sprintf("qualified(supplier=%s, lines=%d)", r.Supplier, len(r.Lines))
	}
	return fmt.Sprintf("not_qualified(%s)", r.Reason)
}
