package scan

import "time"

// DefaultDebounceWindow 是重复解码结果的抑制窗口。
const DefaultDebounceWindow = 1200 * time.Millisecond

// Debouncer 抑制短窗口内重复出现的解码结果。
// 只在扫码会话的单个 worker 上使用，不做并发保护。
type Debouncer struct {
	window   time.Duration
	lastText string
	lastAt   time.Time
}

// NewDebouncer 创建去抖器，window 不合法时取默认窗口。
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Accept 判断一条解码结果是否通过：文本与上次通过的不同，
// 或距上次通过已超出窗口。通过时无条件覆盖内部状态，
// 被抑制时状态保持不变。
func (d *Debouncer) Accept(text string, at time.Time) bool {
	elapsed := at.Sub(d.lastAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	if text == d.lastText && elapsed < d.window {
		return false
	}
	d.lastText = text
	d.lastAt = at
	return true
}
