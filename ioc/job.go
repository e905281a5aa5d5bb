package ioc

import (
	"context"

	"go.uber.org/zap"

	"carpetqr/internal/app"
	"carpetqr/internal/job"
)

// InitScheduler 构建索引新鲜度调度器。
func InitScheduler(cfg app.Config, svc *app.Service, logger *zap.Logger) *job.Scheduler {
	var refreshFn func(context.Context) error
	var staleFn func() bool
	if svc != nil {
		refreshFn = svc.RefreshIndex
		staleFn = svc.IndexStale
	}
	return job.NewScheduler(cfg.Index.RefreshCron, staleFn, refreshFn, logger)
}
