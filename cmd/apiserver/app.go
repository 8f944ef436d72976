package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdaddress"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdenrich"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdnotify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdoutcome"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdqualify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdrouting"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdsignature"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/services/svnotify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/services/svwebhook"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/async"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/persistence/redis"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/render"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/shopify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/notify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/webhook"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/routers"
)

// App 应用依赖
type App struct {
	Engine    *gin.Engine
	Processor *async.Processor
	Publisher redis.OutcomePublisher
}

// InitializeApp 按依赖顺序组装应用，cleanup 释放外部连接
func InitializeApp(cfg *config.Config, log logger.Logger) (*App, func(), error) {
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 基础设施
	client := shopify.NewClient(cfg.Shopify)
	provider := shopify.NewOrderDataProvider(client, log)

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("init renderer: %w", err)
	}
	notifier := mail.NewSMTPNotifier(cfg.SMTP)

	engine, err := mdqualify.NewEngine(provider, cfg.Qualification, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init qualification engine: %w", err)
	}

	var publisher redis.OutcomePublisher = redis.NopPublisher{}
	if cfg.Redis.Addr != "" {
		ps, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis publisher: %w", err)
		}
		publisher = ps
	}

	processor := async.NewProcessor(cfg.Processor, log)
	processor.Start()

	// 领域模块
	routes := mdrouting.NewTable(cfg.Suppliers)
	enricher := mdenrich.NewOrchestrator(engine, provider, log)
	router := mdoutcome.NewRouter(cfg.Qualification.RiskThreshold, cfg.Qualification.WarningValue)
	actor := mdnotify.NewActor(renderer, notifier, provider, routes, mdaddress.NewUnitNormalizer(), cfg.Notify, log)

	// 服务与处理器
	webhookService := svwebhook.NewWebhookService(
		mdsignature.NewVerifier(cfg.Shopify.WebhookSecret),
		enricher,
		router,
		actor,
		processor,
		publisher,
		log,
	)

	var notifyHandler *notify.NotifyHandler
	if cfg.Notify.TestEndpointEnabled {
		notifyService := svnotify.NewNotifyService(renderer, notifier, routes, cfg.Qualification.TargetSupplier, cfg.Notify, log)
		notifyHandler = notify.NewNotifyHandler(notifyService, log)
	}

	app := &App{
		Engine:    routers.SetupRoutes(cfg.App.Name, webhook.NewWebhookHandler(webhookService, log), notifyHandler, log),
		Processor: processor,
		Publisher: publisher,
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warnf(context.Background(), "close publisher failed: %v", err)
		}
	}

	return app, cleanup, nil
}
