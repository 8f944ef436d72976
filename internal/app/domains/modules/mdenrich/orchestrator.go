package mdenrich

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etprimitive"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdqualify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/repo/rpshop"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// Qualifier 资格判定
type Qualifier interface {
	Qualify(ctx context.Context, order *etorder.Order) *mdqualify.Result
}

// Enrichment 订单补全结果
type Enrichment struct {
	Qualification *mdqualify.Result
	Risk          etprimitive.Lookup[float64]
	Address       etprimitive.Lookup[string]
}

// RiskScore 风险分，缺失按 0 处理
func (e *Enrichment) RiskScore() float64 {
	return e.Risk.OrElse(0)
}

// AddressResult 地址校验结论，缺失为空串
func (e *Enrichment) AddressResult() string {
	return e.Address.OrElse("")
}

// Orchestrator 订单补全编排
type Orchestrator struct {
	qualifier Qualifier
	provider  rpshop.OrderDataProvider
	logger    logger.Logger
}

// NewOrchestrator 创建编排器
func NewOrchestrator(qualifier Qualifier, provider rpshop.OrderDataProvider, log logger.Logger) *Orchestrator {
	return &Orchestrator{qualifier: qualifier, provider: provider, logger: log}
}

// Enrich 判定资格，通过后并发获取风险分与地址校验结论
// 查询失败只会得到 Unavailable，不会返回错误
func (o *Orchestrator) Enrich(ctx context.Context, order *etorder.Order) *Enrichment {
	result := &Enrichment{
		Qualification: o.qualifier.Qualify(ctx, order),
		Risk:          etprimitive.Unavailable[float64]("not requested"),
		Address:       etprimitive.Unavailable[string]("not requested"),
	}
	o.logger.Infof(ctx, "qualification: %s", result.Qualification)
	if !result.Qualification.Qualified {
		return result
	}

	var g errgroup.Group
	g.Go(func() error {
		result.Risk = o.provider.RiskScore(ctx, order.ID)
		return nil
	})
	g.Go(func() error {
		result.Address = o.provider.AddressValidation(ctx, order.ID)
		return nil
	})
	_ = g.Wait()

	o.logger.Infof(ctx, "enrichment: risk=%s address=%s", result.Risk, result.Address)
	return result
}
