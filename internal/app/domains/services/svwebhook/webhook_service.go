package svwebhook

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/apimodel/request"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdenrich"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdnotify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdoutcome"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdsignature"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/async"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/persistence/redis"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// 处理阶段
const (
	StageVerify   = "verify"
	StageParse    = "parse"
	StageDispatch = "dispatch"
)

// Enricher 订单补全
type Enricher interface {
	Enrich(ctx context.Context, order *etorder.Order) *mdenrich.Enrichment
}

// Actor 结果执行
type Actor interface {
	Act(ctx context.Context, order *etorder.Order, enrichment *mdenrich.Enrichment, decision mdoutcome.Decision) *mdnotify.ActionReport
}

// Dispatcher 后台任务提交
type Dispatcher interface {
	Submit(task *async.Task) error
}

// Result 单次投递的处理结果
type Result struct {
	Enrichment *mdenrich.Enrichment
	Decision   mdoutcome.Decision
	Report     *mdnotify.ActionReport
}

// WebhookService 订单创建 webhook 编排
type WebhookService struct {
	verifier   *mdsignature.Verifier
	enricher   Enricher
	router     *mdoutcome.Router
	actor      Actor
	dispatcher Dispatcher
	publisher  redis.OutcomePublisher
	logger     logger.Logger
}

// NewWebhookService 创建 webhook 服务
func NewWebhookService(
	verifier *mdsignature.Verifier,
	enricher Enricher,
	router *mdoutcome.Router,
	actor Actor,
	dispatcher Dispatcher,
	publisher redis.OutcomePublisher,
	log logger.Logger,
) *WebhookService {
	return &WebhookService{
		verifier:   verifier,
		enricher:   enricher,
		router:     router,
		actor:      actor,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     log,
	}
}

// Accept 校验签名并解析载荷，只有两步都成功才允许应答
func (s *WebhookService) Accept(ctx context.Context, raw []byte, signature string) (*etorder.Order, error) {
	if err := s.verifier.Verify(raw, signature); err != nil {
		return nil, errorx.Stage(StageVerify, err)
	}

	order, err := request.ParseOrderWebhook(raw)
	if err != nil {
		return nil, errorx.Stage(StageParse, err)
	}
	return order, nil
}

// Dispatch 应答之后提交后台处理，任务上下文与请求解绑
func (s *WebhookService) Dispatch(ctx context.Context, order *etorder.Order) error {
	taskCtx := logger.Detach(logger.WithOrderID(ctx, order.ID))
	task := &async.Task{
		ID:  strconv.FormatInt(order.ID, 10),
		Ctx: taskCtx,
		Run: func(ctx context.Context) {
			s.Handle(ctx, order)
		},
	}
	if err := s.dispatcher.Submit(task); err != nil {
		return errorx.Stage(StageDispatch, err)
	}
	return nil
}

// Handle 补全 → 决策 → 执行 → 发布，所有失败只记录日志
func (s *WebhookService) Handle(ctx context.Context, order *etorder.Order) *Result {
	result := &Result{}
	chain := newPipeline(
		step{"enrich", func(ctx context.Context) error {
			result.Enrichment = s.enricher.Enrich(ctx, order)
			return nil
		}},
		step{"decide", func(ctx context.Context) error {
			result.Decision = s.router.Decide(mdoutcome.Facts{
				Qualified:     result.Enrichment.Qualification.Qualified,
				RiskScore:     result.Enrichment.RiskScore(),
				AddressResult: result.Enrichment.AddressResult(),
			})
			s.logger.Infof(ctx, "decision: %s (rule=%s)", result.Decision.Outcome, result.Decision.Rule)
			return nil
		}},
		step{"act", func(ctx context.Context) error {
			result.Report = s.actor.Act(ctx, order, result.Enrichment, result.Decision)
			return result.Report.SendErr
		}},
	)

	if err := chain.Run(ctx); err != nil {
		s.logger.Errorf(ctx, "order pipeline stopped: %v", err)
	}
	s.publish(ctx, order, result)
	return result
}

func (s *WebhookService) publish(ctx context.Context, order *etorder.Order, result *Result) {
	event := &redis.OutcomeEvent{
		TraceID:   logger.TraceID(ctx),
		OrderID:   order.ID,
		PONumber:  order.PONumber(),
		Outcome:   result.Decision.Outcome.String(),
		Rule:      result.Decision.Rule,
		Timestamp: time.Now().Unix(),
	}
	if result.Report != nil {
		event.Sent = result.Report.Sent
		event.TagAdded = result.Report.TagAdded
		switch {
		case result.Report.SendErr != nil:
			event.Error = result.Report.SendErr.Error()
		case result.Report.TagErr != nil:
			event.Error = result.Report.TagErr.Error()
		}
	}

	if err := s.publisher.PublishOutcome(ctx, event); err != nil {
		s.logger.Warnf(ctx, "publish outcome failed: %v", err)
	}
}

// step 流水线中的一个命名阶段
type step struct {
	name string
	fn   func(ctx context.Context) error
}

// pipeline 顺序执行各阶段，任一阶段返回 error 立即停止
type pipeline struct {
	steps []step
}

func newPipeline(steps ...step) *pipeline {
	return &pipeline{steps: steps}
}

func (p *pipeline) Run(ctx context.Context) error {
	for _, st := range p.steps {
		if err := st.fn(ctx); err != nil {
			return fmt.Errorf("step %s failed: %w", st.name, err)
		}
	}
	return nil
}
