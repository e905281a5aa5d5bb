package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carpetqr/internal/auth"
	"carpetqr/internal/domain"
	"carpetqr/internal/imports"
)

// ImportFlow 负责一次 CSV 导入：管理员登录 → 解析 → 批量 merge-upsert。
// 登录失败在读任何数据行之前中止整个导入。
type ImportFlow struct {
	Admin  auth.TokenSource
	Runner *imports.Runner
	Logger *zap.Logger
}

// Run 执行导入并返回行计数汇总。
func (f *ImportFlow) Run(ctx context.Context, raw string) (domain.ImportSummary, error) {
	if f == nil || f.Runner == nil {
		return domain.ImportSummary{}, fmt.Errorf("import flow 未初始化")
	}
	if f.Admin != nil {
		if _, err := f.Admin.Token(ctx); err != nil {
			if f.Logger != nil {
				f.Logger.Error("admin sign-in failed", zap.Error(err))
			}
			return domain.ImportSummary{}, fmt.Errorf("管理员登录失败: %w", err)
		}
	}
	return f.Runner.Run(ctx, raw)
}
