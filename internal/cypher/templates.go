package cypher

import (
	"embed"
	"fmt"
)

//go:embed *.cql
var files embed.FS

// MustAsset 返回语句原文，缺失时直接 panic，便于初始化阶段暴露错误。
func MustAsset(name string) string {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Errorf("load %s failed: %w", name, err))
	}
	return string(b)
}
