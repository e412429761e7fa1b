package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

// Run is one algorithm execution: its input, its fully materialized step
// log and the playback cursor. Steps is never modified after Prepare.
type Run struct {
	ID        uuid.UUID
	Algorithm sorting.Algorithm
	Effective sorting.Algorithm
	Input     []trace.Element
	Steps     []trace.Step
	Created   time.Time

	cursor atomic.Int64
	mu     sync.Mutex
	handle *playback.Handle
}

func newRun(a, effective sorting.Algorithm, input []trace.Element, steps []trace.Step) *Run {
	r := &Run{
		ID:        uuid.New(),
		Algorithm: a,
		Effective: effective,
		Input:     trace.Clone(input),
		Steps:     steps,
		Created:   time.Now(),
	}
	r.cursor.Store(-1)
	return r
}

// Placeholder reports whether the visualized behaviour comes from another
// algorithm than the one selected.
func (r *Run) Placeholder() bool { return r.Algorithm != r.Effective }

// Cursor is the index of the last delivered step, or -1 before playback.
func (r *Run) Cursor() int { return int(r.cursor.Load()) }

func (r *Run) Current() (trace.Frame, bool) {
	i := r.Cursor()
	if i < 0 || i >= len(r.Steps) {
		return trace.Frame{}, false
	}
	return trace.Frame{Step: r.Steps[i], Index: i, Total: len(r.Steps)}, true
}

func (r *Run) Status() playback.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return playback.Idle
	}
	return r.handle.Status()
}

func (r *Run) setHandle(h *playback.Handle) {
	r.mu.Lock()
	r.handle = h
	r.mu.Unlock()
}

func (r *Run) currentHandle() *playback.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle
}
