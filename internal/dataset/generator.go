package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	DefaultMin = 10.0
	DefaultMax = 310.0
)

type Shape string

const (
	Random       Shape = "random"
	Reversed     Shape = "reversed"
	NearlySorted Shape = "nearly-sorted"
	FewUnique    Shape = "few-unique"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case Random, Reversed, NearlySorted, FewUnique:
		return Shape(s), nil
	case "":
		return Random, nil
	}
	return "", fmt.Errorf("unknown shape: %s", s)
}

// Generator produces input arrays. Values are whole numbers drawn
// uniformly from [min, max). Safe for concurrent use.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	min, max float64
	shape    Shape
}

type Option func(*Generator)

func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rnd = rand.New(rand.NewSource(seed)) }
}

func WithRange(min, max float64) Option {
	return func(g *Generator) { g.min, g.max = min, max }
}

func WithShape(shape Shape) Option {
	return func(g *Generator) { g.shape = shape }
}

func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		min:   DefaultMin,
		max:   DefaultMax,
		shape: Random,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.min <= 0 || math.IsInf(g.max, 0) || math.IsNaN(g.max) || g.span() < 1 {
		return nil, fmt.Errorf("dataset: value range [%v, %v): %w", g.min, g.max, trace.ErrInvalidValue)
	}
	if _, err := ParseShape(string(g.shape)); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return g, nil
}

func (g *Generator) span() int {
	return int(math.Ceil(g.max) - math.Ceil(g.min))
}

// Generate returns n elements with Index equal to their position and
// State Default. Each call yields a fresh array.
func (g *Generator) Generate(n int) ([]trace.Element, error) {
	if n < 1 {
		return nil, fmt.Errorf("dataset: size %d: %w", n, trace.ErrInvalidSize)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	base := math.Ceil(g.min)
	span := g.span()
	values := make([]float64, n)
	switch g.shape {
	case FewUnique:
		distinct := make([]float64, 4)
		for i := range distinct {
			distinct[i] = base + float64(g.rnd.Intn(span))
		}
		for i := range values {
			values[i] = distinct[g.rnd.Intn(len(distinct))]
		}
	default:
		for i := range values {
			values[i] = base + float64(g.rnd.Intn(span))
		}
	}

	switch g.shape {
	case Reversed:
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	case NearlySorted:
		sort.Float64s(values)
		for k := 0; k < n/10+1 && n > 1; k++ {
			i := g.rnd.Intn(n - 1)
			values[i], values[i+1] = values[i+1], values[i]
		}
	}

	out := make([]trace.Element, n)
	for i, v := range values {
		out[i] = trace.Element{Value: v, Index: i, State: trace.Default}
	}
	return out, nil
}
