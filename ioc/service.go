package ioc

import (
	"context"

	"go.uber.org/zap"

	"carpetqr/internal/app"
)

// InitAppService 构建 carpet 应用服务，并返回资源清理函数。
func InitAppService(ctx context.Context, cfg app.Config, readAuth ReadAuth, adminAuth AdminAuth, logger *zap.Logger) (*app.Service, func(), error) {
	svc, err := app.NewService(ctx, cfg, readAuth.TokenSource, adminAuth.TokenSource, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = svc.Close(context.Background())
	}
	return svc, cleanup, nil
}
