package imports

import "strings"

// CleanURL 清洗导出文件里的图片地址。源系统的导出会把 URL 包成
// """https://...""" 的形式，先剥掉三重引号前后缀，再反复去掉
// 首尾空白和单层双引号直到稳定。总函数且幂等。
func CleanURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, `"""`)
	s = strings.TrimSuffix(s, `"""`)
	for {
		t := strings.Trim(strings.TrimSpace(s), `"`)
		if t == s {
			return s
		}
		s = t
	}
}
