// Package sorting turns sorting algorithms into step logs.
//
// Each [Generator] runs its algorithm on a private copy of the input and
// records a [trace.Step] at every comparison, every exchange and every
// point where a sub-range becomes known to be sorted, ending with a Step
// in which every element is sorted. Generators are pure: equal inputs give
// identical logs.
//
// Highlighting follows one policy across algorithms: finalized indices
// outside the active window are Sorted, compared indices are Comparing,
// exchanged indices are Swapping, and insertion sort marks its key Current.
//
// The [Registry] maps algorithm names to generators. Merge, quick and heap
// sort are declared but replay bubble sort for now; [Registry.Resolve]
// reports the algorithm actually used.
package sorting
