package index

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carpetqr/internal/domain"
	"carpetqr/pkg/util"
)

// Source 提供索引重建所需的全集合拉取。
type Source interface {
	FetchAll(ctx context.Context) ([]domain.CarpetDoc, error)
}

// Builder 负责重建搜索索引并在成功后盖新鲜度时间戳。
type Builder struct {
	source Source
	index  *Index
	state  *State
	logger *zap.Logger
}

// NewBuilder 创建索引构建器。
func NewBuilder(source Source, idx *Index, state *State, logger *zap.Logger) (*Builder, error) {
	if source == nil || idx == nil || state == nil {
		return nil, fmt.Errorf("索引构建依赖未注入完整")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{source: source, index: idx, state: state, logger: logger}, nil
}

// Rebuild 拉取全集合并整体替换索引，返回条目数。
// 拉取失败时保留旧索引，时间戳不更新。
func (b *Builder) Rebuild(ctx context.Context) (int, error) {
	docs, err := b.source.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("重建索引失败: %w", err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, chunk := range util.Batch(docs, 500) {
		for _, doc := range chunk {
			entries = append(entries, EntryFromDoc(doc))
		}
		b.logger.Debug("index chunk built", zap.Int("entries", len(entries)))
	}

	b.index.Replace(entries)
	if err := b.state.Stamp(time.Now()); err != nil {
		b.logger.Warn("stamp index refresh failed", zap.Error(err))
	}
	b.logger.Info("index rebuilt", zap.Int("entries", len(entries)))
	return len(entries), nil
}

// Stale 判断索引是否超过新鲜度阈值。
func (b *Builder) Stale(maxAge time.Duration) bool {
	return b.state.Stale(maxAge)
}
