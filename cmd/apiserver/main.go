package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// 2. 初始化应用
	app, cleanup, err := InitializeApp(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 3. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.GetServerPort())
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. 启动 HTTP Server（后台 goroutine）
	ctx := context.Background()
	serverErrChan := make(chan error, 1)
	go func() {
		appLogger.Infof(ctx, "Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 5. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		appLogger.Infof(ctx, "Received shutdown signal, gracefully shutting down...")
	case err := <-serverErrChan:
		appLogger.Errorf(ctx, "HTTP server error: %v", err)
	}

	gracefulShutdown(server, app, cfg.Server.ShutdownTimeout, appLogger)
	appLogger.Infof(ctx, "Application stopped")
}

// gracefulShutdown 先停止接收请求，再等待已应答的订单处理完
func gracefulShutdown(server *http.Server, app *App, timeout time.Duration, log logger.Logger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Infof(ctx, "Stopping HTTP server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}

	log.Infof(ctx, "Draining processor, %d tasks in flight...", app.Processor.Inflight())
	if err := app.Processor.Shutdown(ctx); err != nil {
		log.Errorf(ctx, "Processor shutdown error: %v", err)
		return
	}

	log.Infof(ctx, "All services stopped gracefully")
}
