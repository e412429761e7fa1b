package metrics

import "github.com/san-kum/sortviz/internal/trace"

type kindCounter struct {
	name  string
	kind  trace.HighlightKind
	count int
}

func (k *kindCounter) Name() string { return k.name }

func (k *kindCounter) Observe(s trace.Step) {
	if s.Highlight.Kind == k.kind {
		k.count++
	}
}

func (k *kindCounter) Value() float64 { return float64(k.count) }

func (k *kindCounter) Reset() { k.count = 0 }

func NewComparisons() Metric {
	return &kindCounter{name: "comparisons", kind: trace.ComparingPair}
}

func NewSwaps() Metric {
	return &kindCounter{name: "swaps", kind: trace.SwappingPair}
}

type Steps struct {
	name  string
	count int
}

func NewSteps() *Steps {
	return &Steps{name: "steps"}
}

func (s *Steps) Name() string { return s.name }

func (s *Steps) Observe(trace.Step) { s.count++ }

func (s *Steps) Value() float64 { return float64(s.count) }

func (s *Steps) Reset() { s.count = 0 }
