package domain

import "time"

// CarpetRow 是批量 merge-upsert 的统一 DTO：一条 carpet 文档的增量字段。
type CarpetRow struct {
	CarpetID   string         `json:"carpet_id"`
	Properties map[string]any `json:"properties"`
	RunID      string         `json:"run_id"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CarpetDoc 表示从远端读到的一条完整文档。
type CarpetDoc struct {
	CarpetID   string         `json:"carpet_id"`
	Properties map[string]any `json:"properties"`
}

// ImportSummary 汇总一次导入的行计数，生成后只读。
type ImportSummary struct {
	RunID     string `json:"run_id"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Commits   int    `json:"commits"`
}
