package imports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carpetqr/internal/domain"
	"carpetqr/internal/metrics"
)

// Runner 驱动一次完整导入：解析 → 映射 → 批量提交，聚合整个文件的
// 行计数。行级失败计数后继续；批次提交失败上报调用方，但不影响
// 已统计的成功/失败行数。
type Runner struct {
	committer Committer
	batchSize int
	logger    *zap.Logger
}

// NewRunner 创建导入执行器。
func NewRunner(committer Committer, batchSize int, logger *zap.Logger) (*Runner, error) {
	if committer == nil {
		return nil, fmt.Errorf("必须提供批次提交器")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{committer: committer, batchSize: batchSize, logger: logger}, nil
}

// Run 对原始导入文本执行一次导入。整体拒绝（空文件、坏表头）时
// 不处理任何行直接返回错误；否则总是返回汇总，提交失败一并带回。
func (r *Runner) Run(ctx context.Context, raw string) (domain.ImportSummary, error) {
	runID := uuid.NewString()
	start := time.Now()

	file, err := Parse(raw)
	if err != nil {
		r.logger.Warn("import rejected", zap.String("run_id", runID), zap.Error(err))
		return domain.ImportSummary{RunID: runID}, err
	}

	now := time.Now().UTC()
	coord := NewCoordinator(r.committer, r.batchSize)
	for _, row := range file.Records {
		coord.Add(ctx, BuildCarpetRow(row, runID, now))
	}
	coord.Flush(ctx)

	summary := domain.ImportSummary{
		RunID:     runID,
		Succeeded: len(file.Records),
		Failed:    file.Rejected,
		Commits:   coord.Commits(),
	}

	metrics.ImportDuration.Observe(time.Since(start).Seconds())
	metrics.ImportRows.WithLabelValues("succeeded").Add(float64(summary.Succeeded))
	metrics.ImportRows.WithLabelValues("failed").Add(float64(summary.Failed))

	if errs := coord.Errs(); len(errs) > 0 {
		metrics.ImportCommitErrors.Add(float64(len(errs)))
		r.logger.Error("import finished with commit failures",
			zap.String("run_id", runID),
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed),
			zap.Int("commit_errors", len(errs)))
		return summary, fmt.Errorf("提交批次失败 %d 次: %w", len(errs), errs[0])
	}

	r.logger.Info("import finished",
		zap.String("run_id", runID),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("commits", summary.Commits))
	return summary, nil
}
