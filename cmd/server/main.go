package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"carpetqr/internal/app"
	"carpetqr/ioc"
	"carpetqr/pkg/logging"
	"carpetqr/pkg/server"
)

// 与根目录的 wire 版入口等价的手工装配入口，便于单独起服务调试。
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("load config failed: %v\n", err)
		return
	}

	logger, err := logging.New()
	if err != nil {
		fmt.Printf("init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	readAuth, err := ioc.InitReadAuth(cfg)
	if err != nil {
		logger.Fatal("create read auth failed", zap.Error(err))
	}
	adminAuth, err := ioc.InitAdminAuth(cfg)
	if err != nil {
		logger.Fatal("create admin auth failed", zap.Error(err))
	}

	svc, err := app.NewService(ctx, cfg, readAuth.TokenSource, adminAuth.TokenSource, logger)
	if err != nil {
		logger.Fatal("create app service failed", zap.Error(err))
	}
	defer func() { _ = svc.Close(context.Background()) }()

	scheduler := ioc.InitScheduler(cfg, svc, logger)
	engine := ioc.InitGinEngine(ioc.InitCarpetHandler(svc, logger))

	srv := server.NewHTTPServer(engine, logger, cfg, svc, scheduler)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
