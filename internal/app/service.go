package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"carpetqr/internal/auth"
	"carpetqr/internal/domain"
	"carpetqr/internal/imports"
	"carpetqr/internal/index"
	"carpetqr/internal/query"
	"carpetqr/internal/scan"
	"carpetqr/internal/store"
)

var (
	// ErrReadNotReady 表示匿名登录尚未成功，查询能力未开放。
	ErrReadNotReady = errors.New("匿名登录未完成，查询暂不可用")
	// ErrUnrecognized 表示扫码载荷无法解析成 carpet 标识。
	ErrUnrecognized = errors.New("无法识别的扫码内容")
)

// Service 负责装配各个 Flow 并提供统一入口。
type Service struct {
	cfg        Config
	writeStore *store.Client
	reader     query.Reader
	readerCli  *query.Client
	searchIdx  *index.Index
	schema     *store.SchemaManager
	readAuth   auth.TokenSource
	readReady  atomic.Bool

	ImportFlow *ImportFlow
	IndexFlow  *IndexFlow
	logger     *zap.Logger
}

// NewService 根据配置构建 Service。
func NewService(ctx context.Context, cfg Config, readAuth, adminAuth auth.TokenSource, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	writeStore, err := store.NewClient(ctx, store.Config{
		URI:                  cfg.Neo4j.URI,
		Username:             cfg.Neo4j.Username,
		Password:             cfg.Neo4j.Password,
		Database:             cfg.Neo4j.Database,
		MaxConnectionPool:    cfg.Neo4j.MaxConnectionPool,
		ConnectionTimeoutSec: cfg.Neo4j.ConnectTimeoutSecond,
	})
	if err != nil {
		return nil, err
	}

	readerCli, err := query.NewClient(ctx, query.Config{
		URI:                  cfg.Neo4j.URI,
		Username:             cfg.Neo4j.Username,
		Password:             cfg.Neo4j.Password,
		Database:             cfg.Neo4j.Database,
		MaxConnectionPool:    cfg.Neo4j.MaxConnectionPool,
		ConnectionTimeoutSec: cfg.Neo4j.ConnectTimeoutSecond,
	})
	if err != nil {
		_ = writeStore.Close(ctx)
		return nil, err
	}

	runner, err := imports.NewRunner(store.NewCarpetUpserter(writeStore), cfg.Import.BatchSize, logger)
	if err != nil {
		_ = writeStore.Close(ctx)
		_ = readerCli.Close(ctx)
		return nil, err
	}

	searchIdx := index.New()
	state := index.NewState(cfg.Index.StateFile)
	builder, err := index.NewBuilder(readerCli, searchIdx, state, logger)
	if err != nil {
		_ = writeStore.Close(ctx)
		_ = readerCli.Close(ctx)
		return nil, err
	}

	svc := &Service{
		cfg:        cfg,
		writeStore: writeStore,
		reader:     readerCli,
		readerCli:  readerCli,
		searchIdx:  searchIdx,
		schema:     store.NewSchemaManager(writeStore),
		readAuth:   readAuth,
		ImportFlow: &ImportFlow{Admin: adminAuth, Runner: runner, Logger: logger},
		IndexFlow:  &IndexFlow{Builder: builder, Logger: logger},
		logger:     logger,
	}
	return svc, nil
}

// Start 执行启动序列：匿名登录开放查询，确保 schema，
// 需要时做一次启动刷新。登录失败只关闭查询能力，不阻断启动。
func (s *Service) Start(ctx context.Context) error {
	if s.readAuth != nil {
		if _, err := s.readAuth.Token(ctx); err != nil {
			s.logger.Error("anonymous sign-in failed, lookups disabled", zap.Error(err))
		} else {
			s.readReady.Store(true)
			s.logger.Info("anonymous sign-in ok")
		}
	} else {
		s.readReady.Store(true)
	}

	if err := s.schema.Ensure(ctx); err != nil {
		return err
	}

	if s.cfg.Index.InitialRefresh && s.IndexFlow.Builder.Stale(s.cfg.IndexMaxAge()) {
		if err := s.IndexFlow.Run(ctx); err != nil {
			s.logger.Error("initial index refresh failed", zap.Error(err))
		}
	}
	return nil
}

// Lookup 按标识取单条文档。
func (s *Service) Lookup(ctx context.Context, id string) (domain.CarpetDoc, error) {
	if !s.readReady.Load() {
		return domain.CarpetDoc{}, ErrReadNotReady
	}
	return s.reader.FetchByID(ctx, id)
}

// ResolveScan 把原始扫码载荷解析成标识并取文档。
func (s *Service) ResolveScan(ctx context.Context, payload string) (string, domain.CarpetDoc, error) {
	id, ok := scan.ParseIdentifier(payload)
	if !ok {
		return "", domain.CarpetDoc{}, fmt.Errorf("%w: %q", ErrUnrecognized, payload)
	}
	doc, err := s.Lookup(ctx, id)
	return id, doc, err
}

// Search 在搜索索引上查询。
func (s *Service) Search(query string, limit int) []index.Entry {
	return s.searchIdx.Search(query, limit)
}

// Import 执行一次 CSV 导入。
func (s *Service) Import(ctx context.Context, raw string) (domain.ImportSummary, error) {
	return s.ImportFlow.Run(ctx, raw)
}

// RefreshIndex 立即重建搜索索引。
func (s *Service) RefreshIndex(ctx context.Context) error {
	return s.IndexFlow.Run(ctx)
}

// IndexStale 判断索引是否超过新鲜度阈值。
func (s *Service) IndexStale() bool {
	return s.IndexFlow.Builder.Stale(s.cfg.IndexMaxAge())
}

// NewScanSession 按配置创建一个扫码会话。
func (s *Service) NewScanSession(decoder scan.Decoder, onMiss func(string)) (*scan.Session, error) {
	return scan.NewSession(decoder, scan.SessionConfig{
		DebounceWindow: s.cfg.DebounceWindow(),
		OnUnrecognized: onMiss,
	}, s.logger)
}

// Close 释放资源。
func (s *Service) Close(ctx context.Context) error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	var err error
	if s.readerCli != nil {
		err = s.readerCli.Close(ctx)
	}
	if s.writeStore != nil {
		if cerr := s.writeStore.Close(ctx); cerr != nil {
			err = cerr
		}
	}
	return err
}
