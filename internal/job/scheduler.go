package job

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultCronSpec = "0 7 * * *"

// Scheduler 按 cron 表达式检查索引新鲜度，过期时触发重建。
type Scheduler struct {
	cronExpr  string
	logger    *zap.Logger
	cron      *cron.Cron
	staleFunc func() bool
	refresh   func(context.Context) error
	parent    context.Context
	mu        sync.Mutex
	running   bool
}

// NewScheduler 构建调度器。staleFunc 返回 true 时才执行 refresh。
func NewScheduler(cronExpr string, staleFunc func() bool, refresh func(context.Context) error, logger *zap.Logger) *Scheduler {
	spec := strings.TrimSpace(cronExpr)
	if spec == "" {
		spec = defaultCronSpec
	}
	return &Scheduler{cronExpr: spec, staleFunc: staleFunc, refresh: refresh, logger: logger}
}

// Start 启动调度器，返回用于停止任务的函数。
func (s *Scheduler) Start(parent context.Context) context.CancelFunc {
	if s == nil {
		return func() {}
	}
	s.parent = parent
	c := cron.New()
	id, err := c.AddFunc(s.cronExpr, s.runOnce)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to register cron job", zap.String("cron", s.cronExpr), zap.Error(err))
		}
		return func() {}
	}
	s.cron = c
	c.Start()
	if s.logger != nil {
		entry := c.Entry(id)
		s.logger.Info("index refresh scheduler started", zap.String("cron", s.cronExpr), zap.Time("next", entry.Next))
	}

	var once sync.Once
	stop := func() {
		once.Do(func() {
			ctx := s.cron.Stop()
			<-ctx.Done()
			if s.logger != nil {
				s.logger.Info("index refresh scheduler stopped")
			}
		})
	}

	go func() {
		<-parent.Done()
		stop()
	}()

	return stop
}

func (s *Scheduler) runOnce() {
	if s.refresh == nil {
		if s.logger != nil {
			s.logger.Warn("refresh function not configured")
		}
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("previous refresh still running, skip current schedule")
		}
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if s.staleFunc != nil && !s.staleFunc() {
		if s.logger != nil {
			s.logger.Info("index still fresh, skip refresh")
		}
		return
	}

	runCtx := context.Background()
	if s.parent != nil {
		select {
		case <-s.parent.Done():
			if s.logger != nil {
				s.logger.Info("scheduler context cancelled, skip refresh")
			}
			return
		default:
		}
		runCtx = s.parent
	}

	start := time.Now()
	err := s.refresh(runCtx)
	elapsed := time.Since(start)
	if s.logger != nil {
		if err != nil {
			s.logger.Error("scheduled index refresh failed", zap.Duration("duration", elapsed), zap.Error(err))
		} else {
			s.logger.Info("scheduled index refresh completed", zap.Duration("duration", elapsed))
		}
	}
}
