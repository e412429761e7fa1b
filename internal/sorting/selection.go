package sorting

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

type selection struct{}

func NewSelection() Generator { return selection{} }

func (selection) Generate(input []trace.Element) []trace.Step {
	r := newRecorder(input)
	n := r.n()
	if n <= 1 {
		return r.finish(msgAlreadySorted)
	}

	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			r.emit(
				fmt.Sprintf("Comparing element at position %d with current minimum at position %d", j, minIdx),
				trace.Compare(j, minIdx),
				func(k int) trace.State {
					switch {
					case k < i:
						return trace.Sorted
					case k == j || k == minIdx:
						return trace.Comparing
					}
					return trace.Default
				},
			)
			// strict: the first minimum wins on ties
			if r.value(j) < r.value(minIdx) {
				minIdx = j
			}
		}

		if minIdx != i {
			r.swap(i, minIdx)
			r.emit(
				fmt.Sprintf("Swapping minimum element %s to position %d", fmtValue(r.value(i)), i),
				trace.Swap(i, minIdx),
				func(k int) trace.State {
					switch {
					case k < i:
						return trace.Sorted
					case k == i || k == minIdx:
						return trace.Swapping
					}
					return trace.Default
				},
			)
		}
		r.markSorted(i)
	}

	return r.finish(msgSorted)
}
