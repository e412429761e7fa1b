package playback_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

type fakeTimer struct{ c chan time.Time }

func (f fakeTimer) C() <-chan time.Time { return f.c }
func (f fakeTimer) Stop() bool          { return true }

// instantClock fires every timer immediately and remembers the delays asked for.
type instantClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *instantClock) NewTimer(d time.Duration) playback.Timer {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return fakeTimer{ch}
}

func (c *instantClock) Delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

// stuckClock never fires, parking the loop in its delay.
type stuckClock struct{}

func (stuckClock) NewTimer(time.Duration) playback.Timer { return fakeTimer{make(chan time.Time)} }

type countingRecorder struct {
	started, delivered, finished, cancelled atomic.Int32
}

func (r *countingRecorder) RunStarted()    { r.started.Add(1) }
func (r *countingRecorder) StepDelivered() { r.delivered.Add(1) }
func (r *countingRecorder) RunFinished(s playback.Status) {
	if s == playback.Cancelled {
		r.cancelled.Add(1)
		return
	}
	r.finished.Add(1)
}

type sink struct {
	mu     sync.Mutex
	frames []trace.Frame
	at     []time.Time
}

func (s *sink) onStep(f trace.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
	s.at = append(s.at, time.Now())
}

func (s *sink) Indices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Index
	}
	return out
}

func (s *sink) Gaps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var gaps []time.Duration
	for i := 1; i < len(s.at); i++ {
		gaps = append(gaps, s.at[i].Sub(s.at[i-1]))
	}
	return gaps
}

func makeSteps(n int) []trace.Step {
	steps := make([]trace.Step, n)
	for i := range steps {
		steps[i] = trace.Step{Description: fmt.Sprintf("step %d", i)}
	}
	return steps
}

var _ = Describe("Delay", func() {
	DescribeTable("maps speed to the pause between steps",
		func(speed int, want time.Duration) {
			Expect(playback.Delay(speed)).To(Equal(want))
		},
		Entry("max speed", 100, 100*time.Millisecond),
		Entry("min speed", 10, 1090*time.Millisecond),
		Entry("midpoint", 50, 600*time.Millisecond),
	)

	It("rejects speeds outside [10, 100]", func() {
		Expect(playback.ValidateSpeed(9)).To(MatchError(trace.ErrInvalidSpeed))
		Expect(playback.ValidateSpeed(101)).To(MatchError(trace.ErrInvalidSpeed))
		Expect(playback.ValidateSpeed(10)).To(Succeed())
		Expect(playback.ValidateSpeed(100)).To(Succeed())
	})
})

var _ = Describe("Controller", func() {
	var (
		ignore goleak.Option
		ctx    context.Context
		rec    *countingRecorder
		out    *sink
	)

	BeforeEach(func() {
		ignore = goleak.IgnoreCurrent()
		ctx = context.Background()
		rec = &countingRecorder{}
		out = &sink{}
	})

	AfterEach(func() {
		Eventually(func() error { return goleak.Find(ignore) }).Should(Succeed())
	})

	It("delivers every step in order and finishes", func() {
		clk := &instantClock{}
		c := playback.New(playback.WithClock(clk), playback.WithRecorder(rec))

		h, err := c.Play(ctx, makeSteps(10), 100, out.onStep)
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Wait()).To(Equal(playback.Finished))

		Expect(out.Indices()).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
		Expect(out.frames[9].Total).To(Equal(10))
		Expect(out.frames[9].Last()).To(BeTrue())
		Expect(h.Delivered()).To(Equal(10))

		// one delay between each pair, none after the last step
		Expect(clk.Delays()).To(HaveLen(9))
		Expect(clk.Delays()).To(HaveEach(100 * time.Millisecond))

		Expect(rec.started.Load()).To(BeEquivalentTo(1))
		Expect(rec.delivered.Load()).To(BeEquivalentTo(10))
		Expect(rec.finished.Load()).To(BeEquivalentTo(1))
	})

	It("paces steps about 100ms apart at full speed", func() {
		c := playback.New()
		h, err := c.Play(ctx, makeSteps(10), 100, out.onStep)
		Expect(err).NotTo(HaveOccurred())
		Eventually(h.Done(), 3*time.Second).Should(BeClosed())

		Expect(out.Indices()).To(HaveLen(10))
		for _, gap := range out.Gaps() {
			Expect(gap).To(BeNumerically("~", 100*time.Millisecond, 60*time.Millisecond))
		}
	})

	It("paces steps about 1090ms apart at minimum speed", func() {
		c := playback.New()
		h, err := c.Play(ctx, makeSteps(2), 10, out.onStep)
		Expect(err).NotTo(HaveOccurred())
		Eventually(h.Done(), 3*time.Second).Should(BeClosed())

		gaps := out.Gaps()
		Expect(gaps).To(HaveLen(1))
		Expect(gaps[0]).To(BeNumerically("~", 1090*time.Millisecond, 100*time.Millisecond))
	})

	It("never delivers steps 4-10 once cancelled after step 3", func() {
		c := playback.New(playback.WithClock(&instantClock{}), playback.WithRecorder(rec))
		var h *playback.Handle
		ready := make(chan struct{})

		var err error
		h, err = c.Play(ctx, makeSteps(10), 100, func(f trace.Frame) {
			<-ready
			out.onStep(f)
			if f.Index == 2 {
				h.Cancel()
			}
		})
		Expect(err).NotTo(HaveOccurred())
		close(ready)

		Expect(h.Wait()).To(Equal(playback.Cancelled))
		Consistently(out.Indices, 200*time.Millisecond).Should(Equal([]int{0, 1, 2}))
		Expect(h.Delivered()).To(Equal(3))
		Expect(rec.cancelled.Load()).To(BeEquivalentTo(1))
	})

	It("interrupts a pending delay when cancelled", func() {
		c := playback.New()
		h, err := c.Play(ctx, makeSteps(10), 10, out.onStep)
		Expect(err).NotTo(HaveOccurred())

		Eventually(out.Indices).Should(Equal([]int{0}))
		start := time.Now()
		h.Cancel()
		Expect(h.Wait()).To(Equal(playback.Cancelled))
		Expect(time.Since(start)).To(BeNumerically("<", 500*time.Millisecond))
		Expect(out.Indices()).To(Equal([]int{0}))
	})

	It("stops when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		c := playback.New(playback.WithClock(stuckClock{}))
		h, err := c.Play(cctx, makeSteps(5), 50, out.onStep)
		Expect(err).NotTo(HaveOccurred())

		Eventually(out.Indices).Should(HaveLen(1))
		cancel()
		Expect(h.Wait()).To(Equal(playback.Cancelled))
	})

	It("treats a cancel after the final step as a no-op", func() {
		c := playback.New(playback.WithClock(&instantClock{}))
		h, err := c.Play(ctx, makeSteps(3), 100, out.onStep)
		Expect(err).NotTo(HaveOccurred())
		Expect(h.Wait()).To(Equal(playback.Finished))

		h.Cancel()
		h.Cancel()
		Expect(h.Status()).To(Equal(playback.Finished))
	})

	It("completes normally when cancel races the final step", func() {
		c := playback.New(playback.WithClock(&instantClock{}))
		var h *playback.Handle
		ready := make(chan struct{})
		var err error
		h, err = c.Play(ctx, makeSteps(3), 100, func(f trace.Frame) {
			<-ready
			out.onStep(f)
			if f.Last() {
				h.Cancel()
			}
		})
		Expect(err).NotTo(HaveOccurred())
		close(ready)
		Expect(h.Wait()).To(Equal(playback.Finished))
		Expect(h.Delivered()).To(Equal(3))
	})

	It("cancels the in-flight run when a new one starts", func() {
		c := playback.New(playback.WithClock(stuckClock{}), playback.WithRecorder(rec))

		var active, overlap atomic.Int32
		guard := func(fn func(trace.Frame)) func(trace.Frame) {
			return func(f trace.Frame) {
				if active.Add(1) > 1 {
					overlap.Add(1)
				}
				fn(f)
				active.Add(-1)
			}
		}

		first := &sink{}
		a, err := c.Play(ctx, makeSteps(10), 50, guard(first.onStep))
		Expect(err).NotTo(HaveOccurred())
		Eventually(first.Indices).Should(HaveLen(1))

		second := &sink{}
		b, err := c.Play(ctx, makeSteps(1), 50, guard(second.onStep))
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Status()).To(Equal(playback.Cancelled))
		Expect(b.Wait()).To(Equal(playback.Finished))
		Expect(c.Current()).To(BeIdenticalTo(b))
		Expect(first.Indices()).To(Equal([]int{0}))
		Expect(second.Indices()).To(Equal([]int{0}))
		Expect(overlap.Load()).To(BeZero())
	})

	It("Stop cancels the active run and is safe with none", func() {
		c := playback.New(playback.WithClock(stuckClock{}))
		c.Stop()
		Expect(c.Current()).To(BeNil())

		h, err := c.Play(ctx, makeSteps(4), 50, out.onStep)
		Expect(err).NotTo(HaveOccurred())
		c.Stop()
		Expect(h.Status()).To(Equal(playback.Cancelled))
	})

	It("applies a speed change to the remaining delays", func() {
		clk := &instantClock{}
		c := playback.New(playback.WithClock(clk))
		var h *playback.Handle
		ready := make(chan struct{})
		var err error
		h, err = c.Play(ctx, makeSteps(3), 100, func(f trace.Frame) {
			<-ready
			if f.Index == 0 {
				Expect(h.SetSpeed(10)).To(Succeed())
			}
		})
		Expect(err).NotTo(HaveOccurred())
		close(ready)
		h.Wait()

		Expect(clk.Delays()).To(Equal([]time.Duration{1090 * time.Millisecond, 1090 * time.Millisecond}))
		Expect(h.SetSpeed(0)).To(MatchError(trace.ErrInvalidSpeed))
	})

	It("rejects bad requests without starting a run", func() {
		c := playback.New()
		_, err := c.Play(ctx, makeSteps(3), 5, out.onStep)
		Expect(err).To(MatchError(trace.ErrInvalidSpeed))

		_, err = c.Play(ctx, nil, 50, out.onStep)
		Expect(err).To(MatchError(trace.ErrNoSteps))

		_, err = c.Play(ctx, makeSteps(1), 50, nil)
		Expect(err).To(HaveOccurred())

		Expect(c.Current()).To(BeNil())
	})
})

var _ = Describe("Status", func() {
	It("has readable names", func() {
		Expect(playback.Idle.String()).To(Equal("idle"))
		Expect(playback.Running.String()).To(Equal("running"))
		Expect(playback.Finished.String()).To(Equal("finished"))
		Expect(playback.Cancelled.String()).To(Equal("cancelled"))
	})
})
