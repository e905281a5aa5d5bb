package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMaxAge 是索引的新鲜度阈值：超过则触发自动重建。
const DefaultMaxAge = 7 * 24 * time.Hour

// State 持久化 carpet_index_last_fetch 时间戳（唯一的本地键值）。
// 文件内容是十进制的毫秒 unix 时间，下次刷新整体覆盖。
// 只在索引流程的控制流上读写，不做跨进程协调。
type State struct {
	mu   sync.Mutex
	path string
}

// NewState 创建时间戳存储，path 为空时落在工作目录。
func NewState(path string) *State {
	if strings.TrimSpace(path) == "" {
		path = "carpet_index_last_fetch"
	}
	return &State{path: path}
}

// LastFetch 读取上次成功刷新时间，没有记录时 ok=false。
func (s *State) LastFetch() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// Stamp 记录一次成功刷新。
func (s *State) Stamp(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建状态目录失败: %w", err)
		}
	}
	data := strconv.FormatInt(t.UnixMilli(), 10) + "\n"
	if err := os.WriteFile(s.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("写入刷新时间失败: %w", err)
	}
	return nil
}

// Stale 判断索引是否过期：从未刷新过也算过期。
func (s *State) Stale(maxAge time.Duration) bool {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	last, ok := s.LastFetch()
	if !ok {
		return true
	}
	return time.Since(last) > maxAge
}
