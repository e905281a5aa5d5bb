package store

import (
	"context"
	"fmt"

	"carpetqr/internal/cypher"
	"carpetqr/internal/domain"
)

// CarpetUpserter 负责把一批文档增量 merge-upsert 进 carpets 集合。
// 一个批次在单个写事务里提交，对批内所有文档原子生效；
// 已有文档只更新送来的字段，其余字段保持不动。
type CarpetUpserter struct {
	client *Client
}

// NewCarpetUpserter 创建批量写入器。
func NewCarpetUpserter(client *Client) *CarpetUpserter {
	return &CarpetUpserter{client: client}
}

// CommitBatch 原子提交一个批次。批次大小由上游协调器约束，
// 这里不再切分，避免破坏提交的原子性。
func (u *CarpetUpserter) CommitBatch(ctx context.Context, rows []domain.CarpetRow) error {
	if len(rows) == 0 {
		return nil
	}
	query := cypher.MustAsset("upsert_carpets.cql")
	params := map[string]any{"rows": toParameters(rows)}
	if err := u.client.RunWrite(ctx, query, params); err != nil {
		return fmt.Errorf("提交批次失败 size=%d: %w", len(rows), err)
	}
	return nil
}

func toParameters(rows []domain.CarpetRow) []map[string]any {
	res := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		res = append(res, map[string]any{
			"carpet_id":  row.CarpetID,
			"properties": row.Properties,
			"run_id":     row.RunID,
			"updated_at": row.UpdatedAt,
		})
	}
	return res
}
