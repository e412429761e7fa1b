package metrics

import "github.com/san-kum/sortviz/internal/trace"

// Progress is the fraction of indices finalized at the last observed step.
type Progress struct {
	name    string
	sorted  int
	total   int
	samples int
}

func NewProgress() *Progress {
	return &Progress{name: "progress"}
}

func (p *Progress) Name() string { return p.name }

func (p *Progress) Observe(s trace.Step) {
	p.sorted = len(s.Sorted)
	p.total = len(s.Elements)
	p.samples++
}

func (p *Progress) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	if p.total == 0 {
		return 1.0
	}
	return float64(p.sorted) / float64(p.total)
}

func (p *Progress) Reset() {
	p.sorted = 0
	p.total = 0
	p.samples = 0
}
