package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"carpetqr/internal/metrics"
)

// State 是扫码会话的状态。
type State int32

const (
	StateIdle State = iota
	StateScanning
	StateCompleted
)

// Result 是一次会话最终产出的标识，每个会话恰好发出一次。
type Result struct {
	CarpetID string
	Raw      string
}

// SessionConfig 控制扫码会话行为。
type SessionConfig struct {
	// DebounceWindow 为空取 DefaultDebounceWindow。
	DebounceWindow time.Duration
	// OnUnrecognized 在载荷无法解析成标识时回调，扫描继续。
	OnUnrecognized func(raw string)
}

// Session 驱动持续取帧解码，直到产出一个被接受的标识后停止消费。
//
// 状态机 Idle → Scanning → Completed。帧经单槽信箱投递（最新帧覆盖，
// 不排队），Run 在单个 goroutine 上顺序处理，保证去抖器不会被并发调用。
// Completed 之后到达的帧一律丢弃，标识只发出一次。
type Session struct {
	decoder  Decoder
	debounce *Debouncer
	box      *mailbox
	logger   *zap.Logger
	onMiss   func(string)

	mu     sync.Mutex
	state  State
	result chan Result
}

// NewSession 创建一个待启动的扫码会话。
func NewSession(decoder Decoder, cfg SessionConfig, logger *zap.Logger) (*Session, error) {
	if decoder == nil {
		return nil, fmt.Errorf("必须提供解码器")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		decoder:  decoder,
		debounce: NewDebouncer(cfg.DebounceWindow),
		box:      newMailbox(),
		logger:   logger,
		onMiss:   cfg.OnUnrecognized,
		state:    StateIdle,
		result:   make(chan Result, 1),
	}, nil
}

// State 返回会话当前状态。
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result 返回结果通道，会话完成时收到唯一一条 Result。
func (s *Session) Result() <-chan Result {
	return s.result
}

// Submit 投递一帧，永不阻塞。会话完成或关闭后帧被直接丢弃。
func (s *Session) Submit(f *Frame) {
	if f == nil {
		return
	}
	if f.At.IsZero() {
		f.At = time.Now()
	}
	s.box.put(f)
}

// Drops 返回因覆盖或迟到被丢弃的帧数。
func (s *Session) Drops() uint64 {
	return s.box.Drops()
}

// Run 执行解码循环，直到产出标识、ctx 取消或 Close。
// 单帧解码失败只记日志，不中断会话。
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return fmt.Errorf("扫码会话已经启动过")
	}
	s.state = StateScanning
	s.mu.Unlock()

	watch := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			s.box.close()
		case <-watch:
		}
	}()
	defer close(watch)

	for {
		f := s.box.take()
		if f == nil {
			// 信箱关闭：取消或已完成。
			return ctx.Err()
		}
		if s.State() == StateCompleted {
			continue
		}

		cands, err := s.decoder.Decode(ctx, f)
		if err != nil {
			metrics.ScanDecodes.WithLabelValues("error").Inc()
			s.logger.Warn("frame decode failed", zap.Uint64("seq", f.Seq), zap.Error(err))
			continue
		}
		value, ok := pickCandidate(cands)
		if !ok {
			continue
		}
		if !s.debounce.Accept(value, f.At) {
			metrics.ScanDecodes.WithLabelValues("debounced").Inc()
			continue
		}
		id, ok := ParseIdentifier(value)
		if !ok {
			metrics.ScanDecodes.WithLabelValues("unrecognized").Inc()
			s.logger.Info("scan payload not recognized", zap.String("raw", value))
			if s.onMiss != nil {
				s.onMiss(value)
			}
			continue
		}

		if s.complete(Result{CarpetID: id, Raw: value}) {
			metrics.ScanDecodes.WithLabelValues("accepted").Inc()
			s.logger.Info("scan completed", zap.String("carpet_id", id))
		}
		return nil
	}
}

// Close 拆除会话资源，是唯一的取消点。迟到的帧投递都会落空。
func (s *Session) Close() {
	s.box.close()
}

// complete 将会话置为 Completed 并发出结果，重复调用只生效一次。
func (s *Session) complete(r Result) bool {
	s.mu.Lock()
	if s.state == StateCompleted {
		s.mu.Unlock()
		return false
	}
	s.state = StateCompleted
	s.mu.Unlock()

	s.result <- r
	s.box.close()
	return true
}
