package sorting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/sortviz/internal/trace"
)

type Algorithm string

const (
	Bubble    Algorithm = "bubble"
	Selection Algorithm = "selection"
	Insertion Algorithm = "insertion"
	Merge     Algorithm = "merge"
	Quick     Algorithm = "quick"
	Heap      Algorithm = "heap"
)

func ParseAlgorithm(s string) Algorithm {
	return Algorithm(strings.ToLower(strings.TrimSpace(s)))
}

type Info struct {
	Name            string
	TimeComplexity  string
	SpaceComplexity string
	BestCase        string
	WorstCase       string
	Description     string
	// Placeholder marks an algorithm whose steps currently come from
	// another generator; see Registry.Resolve.
	Placeholder bool
}

type entry struct {
	info      Info
	gen       Generator
	effective Algorithm
}

type Registry struct {
	entries map[Algorithm]entry
}

// NewRegistry registers every built-in algorithm. Merge, quick and heap
// sort are declared but not implemented yet; they replay bubble sort and
// say so through Info.Placeholder and Resolve.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Algorithm]entry)}

	r.Register(Bubble, Info{
		Name: "Bubble Sort", TimeComplexity: "O(n²)", SpaceComplexity: "O(1)", BestCase: "O(n)", WorstCase: "O(n²)",
		Description: "Repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
	}, NewBubble())
	r.Register(Selection, Info{
		Name: "Selection Sort", TimeComplexity: "O(n²)", SpaceComplexity: "O(1)", BestCase: "O(n²)", WorstCase: "O(n²)",
		Description: "Finds the minimum element and places it at the beginning. Repeats for the remaining unsorted portion.",
	}, NewSelection())
	r.Register(Insertion, Info{
		Name: "Insertion Sort", TimeComplexity: "O(n²)", SpaceComplexity: "O(1)", BestCase: "O(n)", WorstCase: "O(n²)",
		Description: "Builds the final sorted array one item at a time by inserting each element into its correct position.",
	}, NewInsertion())

	r.alias(Merge, Bubble, Info{
		Name: "Merge Sort", TimeComplexity: "O(n log n)", SpaceComplexity: "O(n)", BestCase: "O(n log n)", WorstCase: "O(n log n)",
		Description: "Divides the array into halves, sorts them separately, then merges the sorted halves.",
	})
	r.alias(Quick, Bubble, Info{
		Name: "Quick Sort", TimeComplexity: "O(n log n)", SpaceComplexity: "O(log n)", BestCase: "O(n log n)", WorstCase: "O(n²)",
		Description: "Selects a pivot element and partitions the array around it, then recursively sorts the sub-arrays.",
	})
	r.alias(Heap, Bubble, Info{
		Name: "Heap Sort", TimeComplexity: "O(n log n)", SpaceComplexity: "O(1)", BestCase: "O(n log n)", WorstCase: "O(n log n)",
		Description: "Builds a max heap from the array, then repeatedly extracts the maximum element.",
	})

	return r
}

func (r *Registry) Register(a Algorithm, info Info, gen Generator) {
	r.entries[a] = entry{info: info, gen: gen, effective: a}
}

// TODO: replace with real merge/quick/heap generators; quick sort should
// use the Pivot state for its partition element.
func (r *Registry) alias(a, target Algorithm, info Info) {
	info.Placeholder = true
	t := r.entries[target]
	r.entries[a] = entry{info: info, gen: t.gen, effective: target}
}

// Resolve returns the generator for a and the algorithm whose behaviour it
// actually produces.
func (r *Registry) Resolve(a Algorithm) (Generator, Algorithm, error) {
	e, ok := r.entries[a]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", trace.ErrUnsupportedAlgorithm, a)
	}
	return e.gen, e.effective, nil
}

func (r *Registry) Info(a Algorithm) (Info, bool) {
	e, ok := r.entries[a]
	return e.info, ok
}

func (r *Registry) List() []Algorithm {
	names := make([]Algorithm, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Steps generates the step log for a. An unknown selector yields an empty
// sequence together with ErrUnsupportedAlgorithm.
func (r *Registry) Steps(a Algorithm, input []trace.Element) ([]trace.Step, error) {
	gen, _, err := r.Resolve(a)
	if err != nil {
		return []trace.Step{}, err
	}
	return gen.Generate(input), nil
}
