package sorting

import (
	"fmt"

	"github.com/san-kum/sortviz/internal/trace"
)

type insertion struct{}

func NewInsertion() Generator { return insertion{} }

// Generate moves the key left one adjacent exchange at a time, so every
// snapshot holds each element exactly once.
func (insertion) Generate(input []trace.Element) []trace.Step {
	r := newRecorder(input)
	n := r.n()
	if n <= 1 {
		return r.finish(msgAlreadySorted)
	}

	r.markSorted(0)
	for i := 1; i < n; i++ {
		key := r.value(i)
		r.emit(
			fmt.Sprintf("Inserting element %s into sorted portion", fmtValue(key)),
			trace.CurrentAt(i),
			func(k int) trace.State {
				switch {
				case k < i:
					return trace.Sorted
				case k == i:
					return trace.Current
				}
				return trace.Default
			},
		)

		j := i - 1
		for j >= 0 && r.value(j) > key {
			r.emit(
				fmt.Sprintf("Moving element %s one position right", fmtValue(r.value(j))),
				trace.Compare(j, j+1),
				func(k int) trace.State {
					switch {
					case k == j || k == j+1:
						return trace.Comparing
					case k <= i:
						return trace.Sorted
					}
					return trace.Default
				},
			)
			r.swap(j, j+1)
			j--
		}

		r.markSorted(rangeInts(0, i)...)
		r.emit(fmt.Sprintf("Element %s placed in correct position", fmtValue(key)), trace.SortedSet(rangeInts(0, i)...), finalizedOrDefault(r))
	}

	return r.finish(msgSorted)
}
