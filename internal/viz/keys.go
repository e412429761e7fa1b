package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Slower    key.Binding
	Faster    key.Binding
	Bigger    key.Binding
	Smaller   key.Binding
	Algorithm key.Binding
	StepBack  key.Binding
	StepFwd   key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "sort/stop")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new array")),
		Slower:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "slower")),
		Faster:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "faster")),
		Bigger:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "more bars")),
		Smaller:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "fewer bars")),
		Algorithm: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "algorithm")),
		StepBack:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "step back")),
		StepFwd:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "step")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Algorithm, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.StepBack, k.StepFwd},
		{k.Slower, k.Faster, k.Bigger, k.Smaller},
		{k.Algorithm, k.Theme, k.Help, k.Quit},
	}
}
