package trace

import (
	"fmt"
	"math"
)

type State int

const (
	Default State = iota
	Comparing
	Swapping
	Sorted
	Pivot
	Current
)

var stateNames = [...]string{"default", "comparing", "swapping", "sorted", "pivot", "current"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("trace: unknown state %q", string(b))
}

// Element is one array value. Index is the element's position in the
// generated input and never changes as the value moves.
type Element struct {
	Value float64 `json:"value"`
	Index int     `json:"index"`
	State State   `json:"state"`
}

type HighlightKind int

const (
	None HighlightKind = iota
	ComparingPair
	SwappingPair
	SortedIndices
	PivotIndex
	CurrentIndex
)

var highlightNames = [...]string{"none", "comparing", "swapping", "sorted", "pivot", "current"}

func (k HighlightKind) String() string {
	if k < 0 || int(k) >= len(highlightNames) {
		return fmt.Sprintf("highlight(%d)", int(k))
	}
	return highlightNames[k]
}

func (k HighlightKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *HighlightKind) UnmarshalText(b []byte) error {
	for i, name := range highlightNames {
		if name == string(b) {
			*k = HighlightKind(i)
			return nil
		}
	}
	return fmt.Errorf("trace: unknown highlight %q", string(b))
}

// Highlight annotates a Step with the indices it is about. Only the fields
// relevant to Kind are set.
type Highlight struct {
	Kind    HighlightKind `json:"kind"`
	Pair    [2]int        `json:"pair,omitempty"`
	Index   int           `json:"index,omitempty"`
	Indices []int         `json:"indices,omitempty"`
}

func Compare(i, j int) Highlight { return Highlight{Kind: ComparingPair, Pair: [2]int{i, j}} }
func Swap(i, j int) Highlight    { return Highlight{Kind: SwappingPair, Pair: [2]int{i, j}} }
func CurrentAt(i int) Highlight  { return Highlight{Kind: CurrentIndex, Index: i} }

func SortedSet(indices ...int) Highlight {
	idx := make([]int, len(indices))
	copy(idx, indices)
	return Highlight{Kind: SortedIndices, Indices: idx}
}

// Step is one immutable moment of an algorithm run. Elements is the full
// array after this step's mutation, if any. Sorted lists, in ascending
// order, every index finalized so far in the run.
type Step struct {
	Elements    []Element `json:"elements"`
	Description string    `json:"description"`
	Highlight   Highlight `json:"highlight"`
	Sorted      []int     `json:"sorted"`
}

// Done reports whether every element of the step is marked sorted.
func (s Step) Done() bool {
	for _, el := range s.Elements {
		if el.State != Sorted {
			return false
		}
	}
	return true
}

func (s Step) Count(state State) int {
	n := 0
	for _, el := range s.Elements {
		if el.State == state {
			n++
		}
	}
	return n
}

// Frame is a Step as seen by a consumer during playback.
type Frame struct {
	Step  Step `json:"step"`
	Index int  `json:"index"`
	Total int  `json:"total"`
}

func (f Frame) Last() bool {
	return f.Index == f.Total-1
}

func Clone(elements []Element) []Element {
	c := make([]Element, len(elements))
	copy(c, elements)
	return c
}

func Values(elements []Element) []float64 {
	vals := make([]float64, len(elements))
	for i, el := range elements {
		vals[i] = el.Value
	}
	return vals
}

// Validate rejects values a step generator cannot order meaningfully.
func Validate(elements []Element) error {
	seen := make(map[int]struct{}, len(elements))
	for pos, el := range elements {
		if math.IsNaN(el.Value) || math.IsInf(el.Value, 0) || el.Value <= 0 {
			return fmt.Errorf("position %d (value %v): %w", pos, el.Value, ErrInvalidValue)
		}
		if _, dup := seen[el.Index]; dup {
			return fmt.Errorf("position %d (index %d): %w", pos, el.Index, ErrDuplicateIndex)
		}
		seen[el.Index] = struct{}{}
	}
	return nil
}

// FromValues builds a validated input array whose identities follow the
// order of values.
func FromValues(values []float64) ([]Element, error) {
	elements := make([]Element, len(values))
	for i, v := range values {
		elements[i] = Element{Value: v, Index: i, State: Default}
	}
	if err := Validate(elements); err != nil {
		return nil, err
	}
	return elements, nil
}
