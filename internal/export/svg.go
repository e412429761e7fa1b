package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/trace"
)

// Palette maps element states to SVG fill colors.
type Palette map[trace.State]string

var DefaultPalette = Palette{
	trace.Default:   "#3b82f6",
	trace.Comparing: "#facc15",
	trace.Swapping:  "#ef4444",
	trace.Sorted:    "#22c55e",
	trace.Pivot:     "#a855f7",
	trace.Current:   "#f97316",
}

func (p Palette) fill(s trace.State) string {
	if c, ok := p[s]; ok {
		return c
	}
	return DefaultPalette[trace.Default]
}

// StepToSVG draws one step as a bar chart, bars scaled to the largest value.
func StepToSVG(step trace.Step, width, height int, palette Palette) string {
	n := len(step.Elements)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	if palette == nil {
		palette = DefaultPalette
	}

	maxV := 0.0
	for _, e := range step.Elements {
		if e.Value > maxV {
			maxV = e.Value
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	slot := float64(width) / float64(n)
	gap := slot * 0.1
	for i, e := range step.Elements {
		h := e.Value / maxV * float64(height-20)
		x := float64(i)*slot + gap/2
		y := float64(height) - h
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%g</title></rect>
`, x, y, slot-gap, h, palette.fill(e.State), e.Value))
	}

	if step.Description != "" {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="14" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
`, escape(step.Description)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// ProgressToSVG plots the sorted fraction of every step as a line.
func ProgressToSVG(steps []trace.Step, width, height int, strokeColor string) string {
	if len(steps) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(steps) - 1)
	for i, s := range steps {
		frac := 1.0
		if n := len(s.Elements); n > 0 {
			frac = float64(len(s.Sorted)) / float64(n)
		}
		x := float64(i) / last * float64(width)
		y := float64(height) - frac*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
