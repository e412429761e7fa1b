package metrics

import "github.com/san-kum/sortviz/internal/trace"

type Metric interface {
	Name() string
	Observe(s trace.Step)
	Value() float64
	Reset()
}

func Defaults() []Metric {
	return []Metric{
		NewSteps(),
		NewComparisons(),
		NewSwaps(),
		NewProgress(),
	}
}

// Summarize feeds every step to each metric and returns the values by name.
func Summarize(steps []trace.Step, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Defaults()
	}
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range steps {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
