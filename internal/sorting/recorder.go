package sorting

import (
	"github.com/san-kum/sortviz/internal/trace"
)

// recorder owns the working copy of one run and appends Steps to its log.
// Every snapshot copies the working array, so emitted Steps never alias.
type recorder struct {
	work   []trace.Element
	done   []bool
	sorted []int
	steps  []trace.Step
}

func newRecorder(input []trace.Element) *recorder {
	return &recorder{
		work:  trace.Clone(input),
		done:  make([]bool, len(input)),
		steps: make([]trace.Step, 0, len(input)*len(input)+2),
	}
}

func (r *recorder) n() int { return len(r.work) }

func (r *recorder) value(i int) float64 { return r.work[i].Value }

func (r *recorder) swap(i, j int) {
	r.work[i], r.work[j] = r.work[j], r.work[i]
}

func (r *recorder) finalized(i int) bool { return r.done[i] }

func (r *recorder) markSorted(indices ...int) {
	changed := false
	for _, i := range indices {
		if !r.done[i] {
			r.done[i] = true
			changed = true
		}
	}
	if !changed {
		return
	}
	sorted := make([]int, 0, len(r.sorted)+len(indices))
	for i, d := range r.done {
		if d {
			sorted = append(sorted, i)
		}
	}
	r.sorted = sorted
}

func (r *recorder) emit(desc string, hl trace.Highlight, state func(i int) trace.State) {
	els := make([]trace.Element, len(r.work))
	for i, el := range r.work {
		el.State = state(i)
		els[i] = el
	}
	sorted := make([]int, len(r.sorted))
	copy(sorted, r.sorted)
	r.steps = append(r.steps, trace.Step{
		Elements:    els,
		Description: desc,
		Highlight:   hl,
		Sorted:      sorted,
	})
}

// finish marks every index sorted and appends the terminal Step.
func (r *recorder) finish(desc string) []trace.Step {
	all := make([]int, r.n())
	for i := range all {
		all[i] = i
	}
	r.markSorted(all...)
	r.emit(desc, trace.SortedSet(all...), func(int) trace.State { return trace.Sorted })
	return r.steps
}

func rangeInts(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
