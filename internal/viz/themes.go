package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/trace"
)

// Theme maps every element state to a bar color.
type Theme struct {
	Name      string
	Default   lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
	Pivot     lipgloss.Color
	Current   lipgloss.Color
	Title     lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:      "classic",
		Default:   lipgloss.Color("#3b82f6"), // blue
		Comparing: lipgloss.Color("#facc15"), // yellow
		Swapping:  lipgloss.Color("#ef4444"), // red
		Sorted:    lipgloss.Color("#22c55e"), // green
		Pivot:     lipgloss.Color("#a855f7"), // purple
		Current:   lipgloss.Color("#f97316"), // orange
		Title:     lipgloss.Color("#00cccc"),
		Muted:     lipgloss.Color("#666688"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Default:   lipgloss.Color("#00ffff"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#ff00ff"),
		Sorted:    lipgloss.Color("#00ff00"),
		Pivot:     lipgloss.Color("#ff8800"),
		Current:   lipgloss.Color("#ffffff"),
		Title:     lipgloss.Color("#ff00ff"),
		Muted:     lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Default:   lipgloss.Color("#005500"),
		Comparing: lipgloss.Color("#88ff88"),
		Swapping:  lipgloss.Color("#ffff00"),
		Sorted:    lipgloss.Color("#00ff00"),
		Pivot:     lipgloss.Color("#00cc00"),
		Current:   lipgloss.Color("#ccffcc"),
		Title:     lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	Themes = []Theme{ThemeClassic, ThemeCyberpunk, ThemeRetroGreen}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

func (t Theme) Color(s trace.State) lipgloss.Color {
	switch s {
	case trace.Comparing:
		return t.Comparing
	case trace.Swapping:
		return t.Swapping
	case trace.Sorted:
		return t.Sorted
	case trace.Pivot:
		return t.Pivot
	case trace.Current:
		return t.Current
	default:
		return t.Default
	}
}
