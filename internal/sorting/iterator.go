package sorting

import "github.com/san-kum/sortviz/internal/trace"

// Iterator is a pull-based cursor over a materialized step log, for
// consumers that advance manually instead of through timed playback.
type Iterator struct {
	steps []trace.Step
	pos   int
}

func NewIterator(steps []trace.Step) *Iterator {
	return &Iterator{steps: steps, pos: -1}
}

func (it *Iterator) Len() int { return len(it.steps) }

func (it *Iterator) Pos() int { return it.pos }

func (it *Iterator) frame() trace.Frame {
	return trace.Frame{Step: it.steps[it.pos], Index: it.pos, Total: len(it.steps)}
}

func (it *Iterator) Next() (trace.Frame, bool) {
	if it.pos+1 >= len(it.steps) {
		return trace.Frame{}, false
	}
	it.pos++
	return it.frame(), true
}

func (it *Iterator) Prev() (trace.Frame, bool) {
	if it.pos <= 0 {
		return trace.Frame{}, false
	}
	it.pos--
	return it.frame(), true
}

// Seek positions the cursor at i, clamped to the log bounds.
func (it *Iterator) Seek(i int) (trace.Frame, bool) {
	if len(it.steps) == 0 {
		return trace.Frame{}, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(it.steps) {
		i = len(it.steps) - 1
	}
	it.pos = i
	return it.frame(), true
}
