package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/sortviz/internal/trace"
)

// Recorder observes playback progress.
type Recorder interface {
	RunStarted()
	StepDelivered()
	RunFinished(Status)
}

type nopRecorder struct{}

func (nopRecorder) RunStarted()        {}
func (nopRecorder) StepDelivered()     {}
func (nopRecorder) RunFinished(Status) {}

// Controller delivers step logs to a callback at a timed cadence. At most
// one run is active per Controller; starting a new run cancels the
// previous one and waits for it to stop first.
type Controller struct {
	mu       sync.Mutex
	current  *Handle
	logger   *zap.Logger
	recorder Recorder
	clock    Clock
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func WithClock(clk Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

func New(opts ...Option) *Controller {
	c := &Controller{
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts delivering steps to onStep, one at a time and in order, with
// Delay(speed) between consecutive Steps. onStep runs on the playback
// goroutine and must not call back into the Controller.
func (c *Controller) Play(ctx context.Context, steps []trace.Step, speed int, onStep func(trace.Frame)) (*Handle, error) {
	if err := ValidateSpeed(speed); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, trace.ErrNoSteps
	}
	if onStep == nil {
		return nil, fmt.Errorf("playback: nil step callback")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.current; prev != nil {
		prev.Cancel()
		<-prev.Done()
	}

	h := newHandle(len(steps), Delay(speed))
	c.current = h
	c.recorder.RunStarted()
	c.logger.Debug("playback started", zap.Int("steps", len(steps)), zap.Int("speed", speed))

	go c.loop(ctx, h, steps, onStep)
	return h, nil
}

func (c *Controller) loop(ctx context.Context, h *Handle, steps []trace.Step, onStep func(trace.Frame)) {
	defer close(h.done)

	stop := func(i int) {
		h.status.Store(int32(Cancelled))
		c.recorder.RunFinished(Cancelled)
		c.logger.Debug("playback cancelled", zap.Int("delivered", i), zap.Int("steps", len(steps)))
	}

	for i, st := range steps {
		if h.cancelled() || ctx.Err() != nil {
			stop(i)
			return
		}

		onStep(trace.Frame{Step: st, Index: i, Total: len(steps)})
		h.delivered.Add(1)
		c.recorder.StepDelivered()

		if i == len(steps)-1 {
			break
		}

		// Live check: a Cancel issued by onStep itself lands here.
		if h.cancelled() || ctx.Err() != nil {
			stop(i + 1)
			return
		}

		t := c.clock.NewTimer(time.Duration(h.delay.Load()))
		select {
		case <-t.C():
		case <-h.cancel:
			t.Stop()
			stop(i + 1)
			return
		case <-ctx.Done():
			t.Stop()
			stop(i + 1)
			return
		}
	}

	h.status.Store(int32(Finished))
	c.recorder.RunFinished(Finished)
	c.logger.Debug("playback finished", zap.Int("steps", len(steps)))
}

// Stop cancels the active run, if any, and waits for it to end.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	c.current.Cancel()
	<-c.current.Done()
}

func (c *Controller) Current() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
