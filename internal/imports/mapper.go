package imports

import (
	"time"

	"carpetqr/internal/domain"
	"carpetqr/pkg/util"
)

// BuildCarpetRow 将一行导入数据映射为文档增量。
//
// 原始列按表头名原样保留（空白列已在解析时剔除），查询页依赖的
// 兼容字段按列名推导，列名缺失时用备选名，都没有则写空串。
// content_hash 是原始字段表的稳定指纹，用于后续内容对比。
func BuildCarpetRow(row Row, runID string, now time.Time) domain.CarpetRow {
	props := make(map[string]any, len(row.Fields)+6)
	raw := make(map[string]any, len(row.Fields))
	for k, v := range row.Fields {
		props[k] = v
		raw[k] = v
	}

	props[domain.FieldCode] = row.ID
	props[domain.FieldName] = pick(row.Fields, domain.ColName, domain.ColNameAlt)
	props[domain.FieldModel] = pick(row.Fields, domain.ColModel, domain.ColModelAlt)
	props[domain.FieldPatternNo] = pick(row.Fields, domain.ColPattern, domain.ColPatternAlt)
	props[domain.FieldImageURL] = CleanURL(pick(row.Fields, domain.ColImageURL, domain.ColImageAlt))
	props["content_hash"] = util.HashMap(raw)

	return domain.CarpetRow{
		CarpetID:   row.ID,
		Properties: props,
		RunID:      runID,
		UpdatedAt:  now,
	}
}

func pick(fields map[string]string, primary, alt string) string {
	if v, ok := fields[primary]; ok {
		return v
	}
	if v, ok := fields[alt]; ok {
		return v
	}
	return ""
}
