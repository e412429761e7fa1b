package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type instantClock struct{}

type firedTimer struct{ c chan time.Time }

func (f firedTimer) C() <-chan time.Time { return f.c }
func (f firedTimer) Stop() bool          { return true }

func (instantClock) NewTimer(time.Duration) playback.Timer {
	c := make(chan time.Time, 1)
	c <- time.Now()
	return firedTimer{c}
}

type parkedClock struct{}

func (parkedClock) NewTimer(time.Duration) playback.Timer { return firedTimer{make(chan time.Time)} }

type prepared struct {
	algorithms []string
	steps      int
}

func (p *prepared) RunPrepared(a string, steps []trace.Step) {
	p.algorithms = append(p.algorithms, a)
	p.steps += len(steps)
}

func input(t *testing.T, vals ...float64) []trace.Element {
	t.Helper()
	els, err := trace.FromValues(vals)
	require.NoError(t, err)
	return els
}

func newSession(clk playback.Clock, opts ...Option) *Session {
	return New(sorting.NewRegistry(), playback.New(playback.WithClock(clk)), opts...)
}

func TestPlayToCompletion(t *testing.T) {
	obs := &prepared{}
	s := newSession(instantClock{}, WithObserver(obs), WithVerify(true))

	r, err := s.Play(context.Background(), sorting.Selection, input(t, 3, 1, 2), 100)
	require.NoError(t, err)
	assert.Equal(t, playback.Finished, s.Wait())

	assert.Equal(t, playback.Finished, r.Status())
	assert.Equal(t, len(r.Steps)-1, r.Cursor())
	assert.Equal(t, []string{"selection"}, obs.algorithms)
	assert.Equal(t, len(r.Steps), obs.steps)

	v := s.View()
	require.True(t, v.HasFrame)
	assert.Equal(t, r.ID, v.RunID)
	assert.Equal(t, playback.Finished, v.Status)
	assert.True(t, v.Frame.Last())
	assert.True(t, v.Frame.Step.Done())

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, v.Frame, cur)
}

func TestPrepareDoesNotAdvanceCursor(t *testing.T) {
	s := newSession(instantClock{})
	r, err := s.Prepare(sorting.Bubble, input(t, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, -1, r.Cursor())
	assert.Equal(t, playback.Idle, r.Status())
	_, ok := r.Current()
	assert.False(t, ok)
	assert.Nil(t, s.Active())
}

func TestPrepareCopiesInput(t *testing.T) {
	s := newSession(instantClock{})
	in := input(t, 4, 2)
	r, err := s.Prepare(sorting.Bubble, in)
	require.NoError(t, err)
	in[0].Value = 77
	assert.Equal(t, 4.0, r.Input[0].Value)
}

func TestPrepareRejectsInvalidInput(t *testing.T) {
	s := newSession(instantClock{})
	_, err := s.Prepare(sorting.Bubble, []trace.Element{{Value: -3, Index: 0}})
	assert.ErrorIs(t, err, trace.ErrInvalidValue)
}

func TestUnsupportedAlgorithmIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newSession(instantClock{}, WithLogger(zap.New(core)))

	_, err := s.Prepare("bogo", input(t, 2, 1))
	assert.ErrorIs(t, err, trace.ErrUnsupportedAlgorithm)
	assert.Equal(t, 1, logs.FilterMessage("unsupported algorithm").Len())
}

func TestPlaceholderIsSurfaced(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newSession(instantClock{}, WithLogger(zap.New(core)))

	r, err := s.Prepare(sorting.Heap, input(t, 2, 1))
	require.NoError(t, err)
	assert.True(t, r.Placeholder())
	assert.Equal(t, sorting.Bubble, r.Effective)

	entries := logs.FilterField(zap.String("effective", "bubble")).All()
	require.Len(t, entries, 1)
}

func TestFailedRunKeepsPreviousView(t *testing.T) {
	s := newSession(instantClock{})
	first, err := s.Play(context.Background(), sorting.Insertion, input(t, 5, 4, 3), 100)
	require.NoError(t, err)
	s.Wait()
	before := s.View()

	_, err = s.Play(context.Background(), "bogo", input(t, 1, 2), 100)
	require.Error(t, err)
	_, err = s.Play(context.Background(), sorting.Bubble, input(t, 1, 2), 5)
	require.ErrorIs(t, err, trace.ErrInvalidSpeed)
	_, err = s.Play(context.Background(), sorting.Bubble, []trace.Element{{Value: 0}}, 50)
	require.ErrorIs(t, err, trace.ErrInvalidValue)

	assert.Equal(t, before, s.View())
	assert.Same(t, first, s.Active())
}

func TestStartReplacesActiveRun(t *testing.T) {
	s := newSession(parkedClock{})

	a, err := s.Play(context.Background(), sorting.Bubble, input(t, 9, 8, 7, 6), 50)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return a.Cursor() == 0 }, time.Second, time.Millisecond)

	b, err := s.Play(context.Background(), sorting.Selection, input(t, 1), 50)
	require.NoError(t, err)

	assert.Equal(t, playback.Cancelled, a.Status())
	assert.Equal(t, 0, a.Cursor())
	assert.Equal(t, playback.Finished, s.Wait())
	assert.Same(t, b, s.Active())
	assert.Equal(t, b.ID, s.View().RunID)
}

func TestStopAndReset(t *testing.T) {
	s := newSession(parkedClock{})
	r, err := s.Play(context.Background(), sorting.Bubble, input(t, 3, 2, 1), 50)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return s.View().HasFrame }, time.Second, time.Millisecond)

	s.Stop()
	assert.Equal(t, playback.Cancelled, r.Status())
	assert.Equal(t, 0, r.Cursor())
	assert.Equal(t, playback.Cancelled, s.View().Status)

	s.Reset()
	assert.Nil(t, s.Active())
	assert.False(t, s.View().HasFrame)
	assert.Equal(t, playback.Idle, s.Wait())
}

func TestSetSpeed(t *testing.T) {
	s := newSession(parkedClock{})
	assert.NoError(t, s.SetSpeed(50))
	assert.ErrorIs(t, s.SetSpeed(200), trace.ErrInvalidSpeed)

	_, err := s.Play(context.Background(), sorting.Bubble, input(t, 3, 2, 1), 50)
	require.NoError(t, err)
	assert.NoError(t, s.SetSpeed(90))
	assert.ErrorIs(t, s.SetSpeed(1), trace.ErrInvalidSpeed)
	s.Reset()
}

func TestStartEmptyRun(t *testing.T) {
	s := newSession(instantClock{})
	assert.ErrorIs(t, s.Start(context.Background(), nil, 50), trace.ErrNoSteps)
	assert.ErrorIs(t, s.Start(context.Background(), &Run{}, 50), trace.ErrNoSteps)
}

func TestListenerSeesEveryFrame(t *testing.T) {
	var got []int
	s := newSession(instantClock{}, WithListener(func(r *Run, f trace.Frame) {
		got = append(got, f.Index)
	}))

	r, err := s.Play(context.Background(), sorting.Bubble, input(t, 3, 2, 1), 100)
	require.NoError(t, err)
	require.Equal(t, playback.Finished, s.Wait())

	want := make([]int, len(r.Steps))
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)
}

func TestStatusRunningFromFirstFrame(t *testing.T) {
	var seen []playback.Status
	s := newSession(instantClock{}, WithListener(func(r *Run, f trace.Frame) {
		seen = append(seen, r.Status())
	}))

	r, err := s.Play(context.Background(), sorting.Bubble, input(t, 3, 2, 1), 100)
	require.NoError(t, err)
	require.Equal(t, playback.Finished, s.Wait())

	require.Len(t, seen, len(r.Steps))
	for i, st := range seen {
		assert.Equal(t, playback.Running, st, "frame %d", i)
	}
}
