package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

// Playback exports run and step counters. It satisfies playback.Recorder.
type Playback struct {
	runs      *prometheus.CounterVec
	steps     prometheus.Counter
	active    prometheus.Gauge
	generated *prometheus.CounterVec
	runLength *prometheus.HistogramVec
}

var _ playback.Recorder = (*Playback)(nil)

func NewPlayback(reg prometheus.Registerer) (*Playback, error) {
	p := &Playback{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_playback_runs_total",
				Help: "Playback runs by final status",
			},
			[]string{"status"},
		),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sortviz_playback_steps_delivered_total",
			Help: "Steps delivered to playback consumers",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sortviz_playback_active_runs",
			Help: "Playback runs currently in progress",
		}),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sortviz_generated_steps_total",
				Help: "Steps generated per algorithm",
			},
			[]string{"algorithm", "kind"},
		),
		runLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sortviz_run_length_steps",
				Help:    "Number of steps in a generated run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"algorithm"},
		),
	}

	for _, c := range []prometheus.Collector{p.runs, p.steps, p.active, p.generated, p.runLength} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Playback) RunStarted() { p.active.Inc() }

func (p *Playback) StepDelivered() { p.steps.Inc() }

func (p *Playback) RunFinished(s playback.Status) {
	p.active.Dec()
	p.runs.WithLabelValues(s.String()).Inc()
}

// RunPrepared records the shape of a freshly generated step log.
func (p *Playback) RunPrepared(algorithm string, steps []trace.Step) {
	p.runLength.WithLabelValues(algorithm).Observe(float64(len(steps)))
	for _, s := range steps {
		p.generated.WithLabelValues(algorithm, s.Highlight.Kind.String()).Inc()
	}
}
