package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"carpetqr/internal/domain"
)

// ErrNotFound 表示按标识没有查到文档。
var ErrNotFound = errors.New("没有找到对应的 carpet")

// Reader 定义只读查询接口，便于测试替换实现。
type Reader interface {
	FetchByID(ctx context.Context, id string) (domain.CarpetDoc, error)
	FetchAll(ctx context.Context) ([]domain.CarpetDoc, error)
}

// Config 描述连接文档库的必要参数。
type Config struct {
	URI                  string
	Username             string
	Password             string
	Database             string
	MaxConnectionPool    int
	ConnectionTimeoutSec int
}

// Client 封装只读访问。
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewClient 创建并校验连接。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("文档库 uri 不能为空")
	}
	auth := neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(conf *neo4j.Config) {
		if cfg.MaxConnectionPool > 0 {
			conf.MaxConnectionPoolSize = cfg.MaxConnectionPool
		}
		if cfg.ConnectionTimeoutSec > 0 {
			conf.SocketConnectTimeout = time.Duration(cfg.ConnectionTimeoutSec) * time.Second
		}
	})
	if err != nil {
		return nil, fmt.Errorf("创建文档库 driver 失败: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("文档库无法连通: %w", err)
	}
	return &Client{driver: driver, database: cfg.Database}, nil
}

// Close 关闭底层连接。
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	return c.driver.Close(ctx)
}

// FetchByID 按标识取单条文档的字段表。
func (c *Client) FetchByID(ctx context.Context, id string) (domain.CarpetDoc, error) {
	records, err := c.runRead(ctx,
		`MATCH (c:Carpet {carpet_id: $id}) RETURN c.carpet_id AS id, properties(c) AS props`,
		map[string]any{"id": id})
	if err != nil {
		return domain.CarpetDoc{}, fmt.Errorf("查询 carpet 失败 id=%s: %w", id, err)
	}
	if len(records) == 0 {
		return domain.CarpetDoc{}, ErrNotFound
	}
	return toDoc(records[0]), nil
}

// FetchAll 取整个集合的标识与字段表，用于重建搜索索引。
func (c *Client) FetchAll(ctx context.Context) ([]domain.CarpetDoc, error) {
	records, err := c.runRead(ctx,
		`MATCH (c:Carpet) RETURN c.carpet_id AS id, properties(c) AS props`, nil)
	if err != nil {
		return nil, fmt.Errorf("拉取 carpet 全集失败: %w", err)
	}
	docs := make([]domain.CarpetDoc, 0, len(records))
	for _, rec := range records {
		docs = append(docs, toDoc(rec))
	}
	return docs, nil
}

func (c *Client) runRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.database, AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	resultAny, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		records := make([]map[string]any, 0)
		for res.Next(ctx) {
			records = append(records, res.Record().AsMap())
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	records, ok := resultAny.([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected read result type %T", resultAny)
	}
	return records, nil
}

func toDoc(rec map[string]any) domain.CarpetDoc {
	doc := domain.CarpetDoc{}
	if id, ok := rec["id"].(string); ok {
		doc.CarpetID = id
	}
	if props, ok := rec["props"].(map[string]any); ok {
		doc.Properties = props
	}
	return doc
}
