package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

func TestStepToSVG(t *testing.T) {
	els, err := trace.FromValues([]float64{5, 3, 8, 1})
	if err != nil {
		t.Fatal(err)
	}
	steps := sorting.NewBubble().Generate(els)
	last := steps[len(steps)-1]

	svg := StepToSVG(last, 400, 200, nil)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if got := strings.Count(svg, "<rect x="); got != 4 {
		t.Errorf("expected 4 bars, got %d", got)
	}
	if !strings.Contains(svg, DefaultPalette[trace.Sorted]) {
		t.Error("final step should use the sorted color")
	}
	if !strings.Contains(svg, "completely sorted") {
		t.Error("expected description text")
	}
}

func TestStepToSVGEmpty(t *testing.T) {
	if StepToSVG(trace.Step{}, 100, 100, nil) != "" {
		t.Error("expected empty output for no elements")
	}
}

func TestProgressToSVG(t *testing.T) {
	els, _ := trace.FromValues([]float64{4, 3, 2, 1})
	steps := sorting.NewSelection().Generate(els)

	svg := ProgressToSVG(steps, 300, 100, "#00ff88")
	if got := strings.Count(svg, " L"); got != len(steps)-1 {
		t.Errorf("expected %d segments, got %d", len(steps)-1, got)
	}
	if ProgressToSVG(steps[:1], 300, 100, "#fff") != "" {
		t.Error("expected empty output for a single step")
	}
}

func TestEscape(t *testing.T) {
	if got := escape(`a<b & "c"`); got != "a&lt;b &amp; &quot;c&quot;" {
		t.Errorf("escape() = %q", got)
	}
}
