package imports

import (
	"context"

	"carpetqr/internal/domain"
)

// DefaultBatchCapacity 对齐远端文档库单次提交上限（留了余量）。
const DefaultBatchCapacity = 450

// Committer 提交一个批次，对批内全部文档原子生效（merge-upsert）。
type Committer interface {
	CommitBatch(ctx context.Context, rows []domain.CarpetRow) error
}

// Coordinator 把 (标识, 字段表) 对累积成受容量约束的批次。
//
// 同批内同一标识的字段做合并而非整体覆盖；待提交数达到容量时
// 立即提交并另起新批，容量永不超限。提交严格串行：上一批的
// 结果落定之前不会开始下一批。提交失败只记录不重试，也不回滚
// 之前已提交的批。
type Coordinator struct {
	capacity  int
	committer Committer
	pending   []domain.CarpetRow
	index     map[string]int
	commits   int
	errs      []error
}

// NewCoordinator 创建协调器，capacity 不合法时取 DefaultBatchCapacity。
func NewCoordinator(committer Committer, capacity int) *Coordinator {
	if capacity <= 0 {
		capacity = DefaultBatchCapacity
	}
	return &Coordinator{
		capacity:  capacity,
		committer: committer,
		index:     make(map[string]int),
	}
}

// Add 把一条文档增量并入待提交批。
func (c *Coordinator) Add(ctx context.Context, row domain.CarpetRow) {
	if i, ok := c.index[row.CarpetID]; ok {
		for k, v := range row.Properties {
			c.pending[i].Properties[k] = v
		}
		c.pending[i].RunID = row.RunID
		c.pending[i].UpdatedAt = row.UpdatedAt
		return
	}
	c.pending = append(c.pending, row)
	c.index[row.CarpetID] = len(c.pending) - 1
	if len(c.pending) >= c.capacity {
		c.flush(ctx)
	}
}

// Flush 提交剩余的非空批次，导入收尾时调用。
func (c *Coordinator) Flush(ctx context.Context) {
	c.flush(ctx)
}

// Commits 返回已发起的提交次数（含失败的）。
func (c *Coordinator) Commits() int { return c.commits }

// Errs 返回按序累积的提交失败。
func (c *Coordinator) Errs() []error { return c.errs }

func (c *Coordinator) flush(ctx context.Context) {
	if len(c.pending) == 0 {
		return
	}
	c.commits++
	if err := c.committer.CommitBatch(ctx, c.pending); err != nil {
		c.errs = append(c.errs, err)
	}
	c.pending = nil
	c.index = make(map[string]int)
}
