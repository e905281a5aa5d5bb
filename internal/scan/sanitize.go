package scan

import "strings"

// 扫码载荷里常见的隐形字符：零宽空格与左右书写方向标记。
var invisible = strings.NewReplacer(
	"​", "",
	"‎", "",
	"‏", "",
	"\n", "",
	"\r", "",
)

const quoteCutset = "\"'\uFEFF"

// Sanitize 清洗扫码或手输的原始文本：去掉任意位置的零宽字符、
// 方向标记和换行，再反复剥离首尾的引号、BOM 与空白直到稳定。
// 对任意输入总是返回结果，且满足 Sanitize(Sanitize(x)) == Sanitize(x)。
func Sanitize(raw string) string {
	s := invisible.Replace(raw)
	for {
		t := strings.TrimSpace(s)
		t = strings.Trim(t, quoteCutset)
		if t == s {
			return s
		}
		s = t
	}
}

// ParseIdentifier 从扫码载荷解析 carpet 标识。
// 约定格式 <CINS>:<id>（如 HALI:buhari-001），冒号前的类型标记不使用；
// 没有冒号时容忍裸 ID，但不允许包含空格。解析失败返回 ok=false。
func ParseIdentifier(raw string) (string, bool) {
	s := Sanitize(raw)
	if tag, rest, found := strings.Cut(s, ":"); found {
		id := Sanitize(rest)
		if strings.TrimSpace(tag) != "" && id != "" {
			return id, true
		}
		return "", false
	}
	if s != "" && !strings.Contains(s, " ") {
		return s, true
	}
	return "", false
}
