package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"imeicheck/pkg/browser"
	"imeicheck/pkg/checker"
	"imeicheck/pkg/config"
	"imeicheck/pkg/handlers"
	"imeicheck/pkg/logger"
	"imeicheck/pkg/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件路径")
		port       = flag.Int("port", 0, "覆盖监听端口")
		demoMode   = flag.Bool("demo", false, "演示模式：返回随机假数据，不启动浏览器")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *demoMode {
		cfg.Server.DemoMode = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.Log.Development, cfg.Log.Path, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	session := browser.NewManager(cfg.Target, cfg.Browser)
	service := checker.NewService(session, checker.Options{
		ChunkSize:  cfg.Checker.ChunkSize,
		ChunkPause: cfg.Checker.ChunkPause(),
	})
	handlerSvc := handlers.NewHandlerService(cfg, service)
	srv := server.New(cfg, handlerSvc)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("HTTP server exited", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	session.Close()

	logger.Info("shutdown complete")
}
