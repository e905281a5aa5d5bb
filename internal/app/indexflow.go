package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carpetqr/internal/index"
)

// IndexFlow 负责重建搜索索引并刷新 carpet_index_last_fetch。
type IndexFlow struct {
	Builder *index.Builder
	Logger  *zap.Logger
}

// Run 执行一次索引重建。
func (f *IndexFlow) Run(ctx context.Context) error {
	if f == nil || f.Builder == nil {
		return fmt.Errorf("index flow 未初始化")
	}
	n, err := f.Builder.Rebuild(ctx)
	if err != nil {
		return err
	}
	if f.Logger != nil {
		f.Logger.Info("carpet index refreshed", zap.Int("entries", n))
	}
	return nil
}
