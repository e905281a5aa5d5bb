package scan

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ValueType 是解码候选的编码类型。
type ValueType int

const (
	ValueUnknown ValueType = iota
	ValueText
	ValueURL
	ValueWiFi
	ValueContact
	ValueGeo
)

// Candidate 是单帧解码出的一条读数。
type Candidate struct {
	Value string
	Type  ValueType
}

// Frame 是一帧待解码的画面。At 为空时由 Submit 补当前时间。
type Frame struct {
	Seq  uint64
	Data []byte
	At   time.Time
}

// Decoder 对一帧画面解码，返回零或多条候选读数。
type Decoder interface {
	Decode(ctx context.Context, frame *Frame) ([]Candidate, error)
}

// pickCandidate 取扫描顺序里第一条文本/URL/未知类型的候选；
// 其他编码（WiFi、联系人等）不参与查询。候选值为空白时整帧放弃。
func pickCandidate(cands []Candidate) (string, bool) {
	for _, c := range cands {
		switch c.Type {
		case ValueText, ValueURL, ValueUnknown:
			v := strings.TrimSpace(c.Value)
			return v, v != ""
		}
	}
	return "", false
}

// mailbox 是单槽帧信箱：解码没跟上时新帧直接覆盖旧帧，
// 旧帧丢弃从不排队。
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frame  *Frame
	closed bool
	drops  uint64
}

func newMailbox() *mailbox {
	m := &mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// put 投递一帧，覆盖未消费的旧帧并记一次丢帧。关闭后为空操作。
func (m *mailbox) put(f *Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.frame != nil {
		m.drops++
	}
	m.frame = f
	m.cond.Signal()
}

// take 阻塞等待下一帧，信箱关闭时返回 nil。
func (m *mailbox) take() *Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.frame == nil && !m.closed {
		m.cond.Wait()
	}
	if m.frame == nil {
		return nil
	}
	f := m.frame
	m.frame = nil
	return f
}

// close 关闭信箱并唤醒阻塞的 take，可重复调用。
func (m *mailbox) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.frame = nil
	m.cond.Broadcast()
}

// Drops 返回因覆盖被丢弃的帧数。
func (m *mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drops
}
