package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

type Status int32

const (
	Idle Status = iota
	Running
	Finished
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Handle controls one playback run.
type Handle struct {
	total     int
	cancel    chan struct{}
	once      sync.Once
	done      chan struct{}
	status    atomic.Int32
	delivered atomic.Int64
	delay     atomic.Int64
}

func newHandle(total int, delay time.Duration) *Handle {
	h := &Handle{
		total:  total,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
	h.status.Store(int32(Running))
	h.delay.Store(int64(delay))
	return h
}

// Cancel stops the run before its next Step. It is safe to call more than
// once and is a no-op after the final Step has been delivered.
func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.cancel) })
}

func (h *Handle) cancelled() bool {
	select {
	case <-h.cancel:
		return true
	default:
		return false
	}
}

// SetSpeed changes the delay used for the remaining Steps.
func (h *Handle) SetSpeed(speed int) error {
	if err := ValidateSpeed(speed); err != nil {
		return err
	}
	h.delay.Store(int64(Delay(speed)))
	return nil
}

func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) Wait() Status {
	<-h.done
	return h.Status()
}

func (h *Handle) Status() Status { return Status(h.status.Load()) }

func (h *Handle) Delivered() int { return int(h.delivered.Load()) }

func (h *Handle) Total() int { return h.total }
