package sorting

import (
	"strconv"

	"github.com/san-kum/sortviz/internal/trace"
)

const (
	msgSorted        = "Array is completely sorted!"
	msgAlreadySorted = "Array is already sorted"
)

// Generator maps an input array to the full ordered Step log of one run.
// Implementations must not modify input and must be deterministic.
type Generator interface {
	Generate(input []trace.Element) []trace.Step
}


func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
