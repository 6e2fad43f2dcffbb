package safe_close

import (
	"sync"
)

// SafeClose coordinates goroutine shutdown. Goroutines are attached with
// Attach, a close is broadcast with SendCloseSignal and WaitClosed blocks
// until every attached goroutine reported done.
// SafeClose 协调多个 goroutine 的关闭流程
// 通过 Attach 挂载 goroutine，SendCloseSignal 广播关闭信号，WaitClosed 等待全部退出
type SafeClose struct {
	m           sync.Mutex
	closeSignal chan struct{}
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in a new goroutine. f must call done when it has fully
// exited and should start its shutdown once closeSignal is closed.
// Attach 在新 goroutine 中启动 f
// f 退出时必须调用 done，收到 closeSignal 后应开始自身的关闭流程
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.m.Lock()
	defer s.m.Unlock()

	s.wg.Add(1)
	doneOnce := sync.Once{}
	done := func() {
		doneOnce.Do(func() {
			s.wg.Done()
		})
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal. Only the first call records
// its error, later calls are no-ops.
// SendCloseSignal 广播关闭信号，仅第一次调用记录错误，后续调用不生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.m.Lock()
	defer s.m.Unlock()

	select {
	case <-s.closeSignal:
	default:
		s.closeErr = err
		close(s.closeSignal)
	}
}

// CloseSignal returns the broadcast channel, closed once a close was sent.
// CloseSignal 返回广播通道，关闭信号发出后该通道被关闭
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until all attached goroutines called done and returns
// the error recorded by the first SendCloseSignal.
// WaitClosed 阻塞等待所有挂载的 goroutine 调用 done，返回首次关闭信号携带的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}
