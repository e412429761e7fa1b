package sorting

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

type bubble struct{}

func NewBubble() Generator { return bubble{} }

func (bubble) Generate(input []trace.Element) []trace.Step {
	r := newRecorder(input)
	n := r.n()
	if n <= 1 {
		return r.finish(msgAlreadySorted)
	}

	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			pair := func(state trace.State) func(int) trace.State {
				return func(k int) trace.State {
					switch {
					case k == j || k == j+1:
						return state
					case r.finalized(k):
						return trace.Sorted
					}
					return trace.Default
				}
			}

			r.emit(fmt.Sprintf("Comparing elements at positions %d and %d", j, j+1), trace.Compare(j, j+1), pair(trace.Comparing))

			// ties stay put
			if r.value(j) > r.value(j+1) {
				r.swap(j, j+1)
				r.emit(fmt.Sprintf("Swapping elements %s and %s", fmtValue(r.value(j+1)), fmtValue(r.value(j))), trace.Swap(j, j+1), pair(trace.Swapping))
			}
		}

		last := n - i - 1
		r.markSorted(last)
		r.emit(fmt.Sprintf("Element %s is in its final position", fmtValue(r.value(last))), trace.SortedSet(last), finalizedOrDefault(r))
	}

	return r.finish(msgSorted)
}

func finalizedOrDefault(r *recorder) func(int) trace.State {
	return func(k int) trace.State {
		if r.finalized(k) {
			return trace.Sorted
		}
		return trace.Default
	}
}
