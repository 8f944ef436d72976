package mdqualify

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// LineFacts 单个商品行参与判定的事实
type LineFacts struct {
	Supplier        string
	SupplierFound   bool
	Warehouse       string
	WarehouseFound  bool
	TargetSupplier  string
	TargetWarehouse string
	Country         string
}

func (f LineFacts) activation() map[string]any {
	return map[string]any{
		"supplier":         f.Supplier,
		"supplier_found":   f.SupplierFound,
		"warehouse":        f.Warehouse,
		"warehouse_found":  f.WarehouseFound,
		"target_supplier":  f.TargetSupplier,
		"target_warehouse": f.TargetWarehouse,
		"country":          f.Country,
	}
}

// LineRule 编译后的 CEL 商品行规则，可并发求值
type LineRule struct {
	expr string
	prg  cel.Program
}

// NewLineRule 编译规则表达式，结果类型必须是 bool
func NewLineRule(expr string) (*LineRule, error) {
	env, err := cel.NewEnv(
		cel.Variable("supplier", cel.StringType),
		cel.Variable("supplier_found", cel.BoolType),
		cel.Variable("warehouse", cel.StringType),
		cel.Variable("warehouse_found", cel.BoolType),
		cel.Variable("target_supplier", cel.StringType),
		cel.Variable("target_warehouse", cel.StringType),
		cel.Variable("country", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile line rule: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("line rule must return bool, got %v", ast.OutputType())
	}

	prg, err := env.Program(ast, cel.CostLimit(10000))
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	return &LineRule{expr: expr, prg: prg}, nil
}

// Eval 对单个商品行求值
func (r *LineRule) Eval(facts LineFacts) (bool, error) {
	out, _, err := r.prg.Eval(facts.activation())
	if err != nil {
		return false, fmt.Errorf("eval line rule: %w", err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("line rule returned %T", out.Value())
	}
	return allowed, nil
}

// String 规则原文
func (r *LineRule) String() string {
	return r.expr
}
