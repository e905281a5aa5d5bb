package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"carpetqr/internal/app"
	"carpetqr/ioc"
	"carpetqr/pkg/logging"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	cmd := flag.Arg(0)

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	readAuth, err := ioc.InitReadAuth(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建匿名登录失败: %v\n", err)
		os.Exit(1)
	}
	adminAuth, err := ioc.InitAdminAuth(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建管理员登录失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	svc, err := app.NewService(ctx, cfg, readAuth.TokenSource, adminAuth.TokenSource, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "构建服务失败: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close(ctx)

	switch cmd {
	case "import":
		if flag.NArg() < 2 {
			usage()
			os.Exit(1)
		}
		err = runImport(ctx, svc, flag.Arg(1))
	case "refresh":
		err = svc.RefreshIndex(ctx)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s 执行失败: %v\n", cmd, err)
		os.Exit(1)
	}
}

func runImport(ctx context.Context, svc *app.Service, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取导入文件失败: %w", err)
	}
	summary, err := svc.Import(ctx, string(data))
	fmt.Printf("已上传。成功: %d, 失败: %d, 提交: %d\n", summary.Succeeded, summary.Failed, summary.Commits)
	return err
}

func usage() {
	fmt.Println("用法: importer [-config configs/config.yaml] {import <csv 文件>|refresh}")
}
