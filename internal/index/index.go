package index

import (
	"strings"
	"sync"
	"time"

	"carpetqr/internal/domain"
	"carpetqr/internal/metrics"
)

// Entry 是搜索索引里的一条记录，取自文档的兼容字段。
type Entry struct {
	CarpetID  string `json:"carpet_id"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	PatternNo string `json:"pattern_no"`
}

// Index 是由全集合拉取构建的内存搜索索引。重建整体替换，
// 查询走读锁。
type Index struct {
	mu      sync.RWMutex
	entries []Entry
	builtAt time.Time
}

func New() *Index {
	return &Index{}
}

// Replace 用新条目整体替换索引内容。
func (x *Index) Replace(entries []Entry) {
	x.mu.Lock()
	x.entries = entries
	x.builtAt = time.Now()
	x.mu.Unlock()
	metrics.IndexEntries.Set(float64(len(entries)))
}

// Size 返回当前条目数。
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Search 在标识和名称上做大小写不敏感的子串匹配。
// query 为空时返回全部（受 limit 约束）。
func (x *Index) Search(query string, limit int) []Entry {
	x.mu.RLock()
	defer x.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var hits []Entry
	for _, e := range x.entries {
		if q != "" &&
			!strings.Contains(strings.ToLower(e.CarpetID), q) &&
			!strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		hits = append(hits, e)
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits
}

// EntryFromDoc 从文档字段表抽出索引条目。
func EntryFromDoc(doc domain.CarpetDoc) Entry {
	e := Entry{CarpetID: doc.CarpetID}
	e.Name = stringProp(doc.Properties, domain.FieldName)
	e.Model = stringProp(doc.Properties, domain.FieldModel)
	e.PatternNo = stringProp(doc.Properties, domain.FieldPatternNo)
	return e
}

func stringProp(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
