package mdoutcome

import "fmt"

// Outcome 每次投递唯一的处理结果
type Outcome int

const (
	Skipped Outcome = iota
	RiskAlert
	AddressWarning
	StandardOrder
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case RiskAlert:
		return "risk_alert"
	case AddressWarning:
		return "address_warning"
	case StandardOrder:
		return "standard_order"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Facts 决策输入
type Facts struct {
	Qualified     bool
	RiskScore     float64 // 缺失按 0
	AddressResult string  // 缺失为空串
}

// Decision 决策结果
type Decision struct {
	Outcome Outcome
	Rule    string // 命中的规则名
}

// rule 决策表中的一行
type rule struct {
	name    string
	outcome Outcome
	match   func(r *Router, f Facts) bool
}

// decisionTable 按顺序匹配，命中即停止
var decisionTable = []rule{
	{
		name:    "not_qualified",
		outcome: Skipped,
		match:   func(_ *Router, f Facts) bool { return !f.Qualified },
	},
	{
		name:    "high_risk",
		outcome: RiskAlert,
		match:   func(r *Router, f Facts) bool { return f.RiskScore > r.riskThreshold },
	},
	{
		name:    "address_warning",
		outcome: AddressWarning,
		match:   func(r *Router, f Facts) bool { return f.AddressResult == r.warningValue },
	},
	{
		name:    "standard",
		outcome: StandardOrder,
		match:   func(_ *Router, _ Facts) bool { return true },
	},
}

// Router 结果路由
type Router struct {
	riskThreshold float64
	warningValue  string
}

// NewRouter 创建路由，threshold 为高风险阈值（严格大于），warningValue 为地址告警值
func NewRouter(threshold float64, warningValue string) *Router {
	return &Router{riskThreshold: threshold, warningValue: warningValue}
}

// Decide 按决策表选出唯一结果
func (r *Router) Decide(f Facts) Decision {
	for _, row := range decisionTable {
		if row.match(r, f) {
			return Decision{Outcome: row.outcome, Rule: row.name}
		}
	}
	return Decision{Outcome: Skipped, Rule: "no_match"}
}
