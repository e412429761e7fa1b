package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/trace"
)

const maxBarWidth = 4

// RenderBars draws elements as vertical bars, height rows tall, scaled to
// the largest value and colored by element state. Every bar is at least one
// row high.
func RenderBars(elements []trace.Element, width, height int, theme Theme) string {
	n := len(elements)
	if n == 0 || height < 1 {
		return ""
	}

	maxV := 0.0
	for _, e := range elements {
		maxV = math.Max(maxV, e.Value)
	}

	barW, gap := 1, 0
	if width >= n*2 {
		barW, gap = width/n-1, 1
	}
	barW = min(barW, maxBarWidth)

	heights := make([]int, n)
	for i, e := range elements {
		heights[i] = max(1, int(math.Round(e.Value/maxV*float64(height))))
	}

	styles := make(map[trace.State]lipgloss.Style)
	fill := strings.Repeat("█", barW)
	blank := strings.Repeat(" ", barW)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i, e := range elements {
			if heights[i] >= row {
				st, ok := styles[e.State]
				if !ok {
					st = lipgloss.NewStyle().Foreground(theme.Color(e.State))
					styles[e.State] = st
				}
				b.WriteString(st.Render(fill))
			} else {
				b.WriteString(blank)
			}
			if gap > 0 && i < n-1 {
				b.WriteByte(' ')
			}
		}
		if row > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Legend lists the state colors of theme.
func Legend(theme Theme) string {
	states := []trace.State{trace.Default, trace.Comparing, trace.Swapping, trace.Sorted, trace.Pivot, trace.Current}
	parts := make([]string, 0, len(states))
	for _, s := range states {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Color(s)).Render("■")+" "+s.String())
	}
	return strings.Join(parts, "  ")
}
