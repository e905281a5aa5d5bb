package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Neo4j struct {
	URI                  string `yaml:"uri"`
	Username             string `yaml:"username"`
	Password             string `yaml:"password"`
	Database             string `yaml:"database"`
	MaxConnectionPool    int    `yaml:"max_connections"`
	ConnectTimeoutSecond int    `yaml:"connect_timeout_second"`
}

type Auth struct {
	AnonymousEndpoint string `yaml:"anonymous_endpoint"`
	TokenEndpoint     string `yaml:"token_endpoint"`
	Email             string `yaml:"email"`
	Password          string `yaml:"password"`
	StaticToken       string `yaml:"static_token"`
	TimeoutSecond     int    `yaml:"timeout_second"`
}

type Import struct {
	// BatchSize 对齐远端单次提交上限，默认 450。
	BatchSize int `yaml:"batch_size"`
}

type Scan struct {
	// DebounceMs 是重复解码结果的抑制窗口，默认 1200。
	DebounceMs int `yaml:"debounce_ms"`
}

type Index struct {
	StateFile      string `yaml:"state_file"`
	MaxAgeDays     int    `yaml:"max_age_days"`
	RefreshCron    string `yaml:"refresh_cron"`
	InitialRefresh bool   `yaml:"initial_refresh"`
}

type Config struct {
	HTTP   HTTP   `yaml:"http"`
	Neo4j  Neo4j  `yaml:"neo4j"`
	Auth   Auth   `yaml:"auth"`
	Import Import `yaml:"import"`
	Scan   Scan   `yaml:"scan"`
	Index  Index  `yaml:"index"`
}

// DebounceWindow 返回配置的去抖窗口。
func (c Config) DebounceWindow() time.Duration {
	if c.Scan.DebounceMs <= 0 {
		return 0
	}
	return time.Duration(c.Scan.DebounceMs) * time.Millisecond
}

// IndexMaxAge 返回索引新鲜度阈值，默认 7 天。
func (c Config) IndexMaxAge() time.Duration {
	if c.Index.MaxAgeDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.Index.MaxAgeDays) * 24 * time.Hour
}

// LoadConfig 从文件加载配置。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
