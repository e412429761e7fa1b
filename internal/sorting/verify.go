package sorting

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/trace"
)

var (
	ErrLengthChanged  = errors.New("snapshot length differs from input")
	ErrSortedShrank   = errors.New("sorted set lost an index")
	ErrNotFinished    = errors.New("final step is not fully sorted")
	ErrNotPermutation = errors.New("final values are not a permutation of the input")
)

// Verify checks a step log against the invariants every generator must
// hold. The returned error is a *trace.StepError naming the first bad step.
func Verify(a Algorithm, input []trace.Element, steps []trace.Step) error {
	fail := func(step int, err error) error {
		return &trace.StepError{Algorithm: string(a), Step: step, Wrapped: err}
	}
	if len(steps) == 0 {
		return fail(-1, trace.ErrNoSteps)
	}

	prev := map[int]bool{}
	for i, st := range steps {
		if len(st.Elements) != len(input) {
			return fail(i, fmt.Errorf("%w: got %d, want %d", ErrLengthChanged, len(st.Elements), len(input)))
		}
		cur := make(map[int]bool, len(st.Sorted))
		for _, idx := range st.Sorted {
			cur[idx] = true
		}
		for idx := range prev {
			if !cur[idx] {
				return fail(i, fmt.Errorf("%w: %d", ErrSortedShrank, idx))
			}
		}
		prev = cur
	}

	last := steps[len(steps)-1]
	if !last.Done() || len(last.Sorted) != len(input) {
		return fail(len(steps)-1, ErrNotFinished)
	}

	got := trace.Values(last.Elements)
	want := trace.Values(input)
	sort.Float64s(got)
	sort.Float64s(want)
	for i := range got {
		if got[i] != want[i] {
			return fail(len(steps)-1, ErrNotPermutation)
		}
	}
	for i := 1; i < len(last.Elements); i++ {
		if last.Elements[i-1].Value > last.Elements[i].Value {
			return fail(len(steps)-1, fmt.Errorf("%w: position %d out of order", ErrNotFinished, i))
		}
	}
	return nil
}
