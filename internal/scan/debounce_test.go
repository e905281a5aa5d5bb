package scan

import (
	"testing"
	"time"
)

func TestDebouncerSuppressesRepeatWithinWindow(t *testing.T) {
	d := NewDebouncer(1200 * time.Millisecond)
	t0 := time.Unix(1700000000, 0)

	if !d.Accept("A", t0) {
		t.Fatal("first result must be accepted")
	}
	if d.Accept("A", t0.Add(500*time.Millisecond)) {
		t.Fatal("same text within window must be suppressed")
	}
	if !d.Accept("A", t0.Add(1300*time.Millisecond)) {
		t.Fatal("same text after window must be accepted")
	}
}

func TestDebouncerAcceptsDifferentText(t *testing.T) {
	d := NewDebouncer(1200 * time.Millisecond)
	t0 := time.Unix(1700000000, 0)

	if !d.Accept("A", t0) {
		t.Fatal("first result must be accepted")
	}
	if !d.Accept("B", t0.Add(10*time.Millisecond)) {
		t.Fatal("different text must be accepted regardless of window")
	}
	// 接受后状态被覆盖：紧跟的 A 现在算“不同文本”。
	if !d.Accept("A", t0.Add(20*time.Millisecond)) {
		t.Fatal("text differing from last accepted must pass")
	}
	if d.Accept("A", t0.Add(30*time.Millisecond)) {
		t.Fatal("repeat of last accepted within window must be suppressed")
	}
}

func TestDebouncerSuppressedCallKeepsState(t *testing.T) {
	d := NewDebouncer(1200 * time.Millisecond)
	t0 := time.Unix(1700000000, 0)

	d.Accept("A", t0)
	d.Accept("A", t0.Add(1100*time.Millisecond)) // suppressed, state unchanged
	// 距首次接受 1.3s：若被抑制的调用错误地刷新了时间戳，这里会被拒。
	if !d.Accept("A", t0.Add(1300*time.Millisecond)) {
		t.Fatal("suppressed call must not refresh the window")
	}
}

func TestDebouncerDefaultWindow(t *testing.T) {
	d := NewDebouncer(0)
	if d.window != DefaultDebounceWindow {
		t.Fatalf("default window = %v, want %v", d.window, DefaultDebounceWindow)
	}
}
