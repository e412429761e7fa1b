package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

// ViewState is what a renderer needs to draw the current moment without
// knowing anything about the algorithm.
type ViewState struct {
	RunID     uuid.UUID
	Algorithm sorting.Algorithm
	Effective sorting.Algorithm
	Status    playback.Status
	Frame     trace.Frame
	HasFrame  bool
}

type view struct {
	mu    sync.RWMutex
	run   *Run
	frame trace.Frame
	has   bool
}

func (v *view) show(r *Run, f trace.Frame) {
	v.mu.Lock()
	v.run, v.frame, v.has = r, f, true
	v.mu.Unlock()
}

func (v *view) clear() {
	v.mu.Lock()
	v.run, v.frame, v.has = nil, trace.Frame{}, false
	v.mu.Unlock()
}

func (v *view) snapshot() ViewState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.run == nil {
		return ViewState{}
	}
	return ViewState{
		RunID:     v.run.ID,
		Algorithm: v.run.Algorithm,
		Effective: v.run.Effective,
		Status:    v.run.Status(),
		Frame:     v.frame,
		HasFrame:  v.has,
	}
}
