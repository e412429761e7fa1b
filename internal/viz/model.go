package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	tickInterval    = time.Second / 30
	historyCapacity = 120
	speedStep       = 10
	sizeStep        = 5
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the interactive visualizer. Timed playback runs inside the
// session; the model only polls the session view on every tick, so a
// playback callback never blocks on the UI loop.
type Model struct {
	ctx        context.Context
	sess       *session.Session
	reg        *sorting.Registry
	gen        *dataset.Generator
	algorithms []sorting.Algorithm
	algIdx     int
	size       int
	speed      int

	input []trace.Element
	run   *session.Run

	// manual stepping through a prepared run while playback is stopped
	iter   *sorting.Iterator
	manual trace.Frame
	hasMan bool

	view      session.ViewState
	progress  []float64
	lastIndex int

	err           error
	width, height int
	keys          keyMap
	help          help.Model
	theme         Theme
}

// NewModel builds the visualizer from cfg and generates the first array.
// Explicit values in cfg are shown as given; size changes later switch
// back to generated arrays.
func NewModel(ctx context.Context, cfg *config.Config, sess *session.Session, reg *sorting.Registry) (Model, error) {
	shape, err := dataset.ParseShape(cfg.Shape)
	if err != nil {
		return Model{}, err
	}
	opts := []dataset.Option{dataset.WithRange(cfg.MinValue, cfg.MaxValue), dataset.WithShape(shape)}
	if cfg.Seed != 0 {
		opts = append(opts, dataset.WithSeed(cfg.Seed))
	}
	gen, err := dataset.New(opts...)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:        ctx,
		sess:       sess,
		reg:        reg,
		gen:        gen,
		algorithms: reg.List(),
		size:       config.ClampSize(cfg.Size),
		speed:      cfg.Speed,
		lastIndex:  -1,
		width:      80,
		height:     24,
		keys:       defaultKeys(),
		help:       help.New(),
		theme:      ThemeClassic,
	}
	for i, a := range m.algorithms {
		if a == sorting.ParseAlgorithm(cfg.Algorithm) {
			m.algIdx = i
		}
	}

	if len(cfg.Values) > 0 {
		m.input, err = trace.FromValues(cfg.Values)
		m.size = len(m.input)
	} else {
		m.input, err = gen.Generate(m.size)
	}
	if err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Algorithm() sorting.Algorithm { return m.algorithms[m.algIdx] }

func (m Model) Speed() int { return m.speed }

func (m Model) Size() int { return m.size }

func (m Model) Err() error { return m.err }

// playing reports whether this model's run is being played right now.
func (m Model) playing() bool {
	return m.run != nil && m.run.Status() == playback.Running
}

// Displayed is the step currently on screen.
func (m Model) Displayed() trace.Step {
	switch {
	case m.hasMan:
		return m.manual.Step
	case m.run != nil && m.view.HasFrame && m.view.RunID == m.run.ID:
		return m.view.Frame.Step
	}
	return trace.Step{Elements: m.input}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		m.poll()
		return m, tick()
	}
	return m, nil
}

func (m *Model) poll() {
	m.view = m.sess.View()
	if m.run == nil || m.view.RunID != m.run.ID || !m.view.HasFrame {
		return
	}
	f := m.view.Frame
	if f.Index == m.lastIndex {
		return
	}
	m.lastIndex = f.Index
	frac := 1.0
	if n := len(f.Step.Elements); n > 0 {
		frac = float64(len(f.Step.Sorted)) / float64(n)
	}
	m.progress = append(m.progress, frac*100)
	if len(m.progress) > historyCapacity {
		m.progress = m.progress[len(m.progress)-historyCapacity:]
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sess.Reset()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Next()
	case key.Matches(msg, m.keys.Toggle):
		if m.playing() {
			m.sess.Stop()
			m.view = m.sess.View()
		} else {
			m.start()
		}
	case key.Matches(msg, m.keys.Reset):
		m.regenerate()
	case key.Matches(msg, m.keys.Slower):
		m.setSpeed(m.speed - speedStep)
	case key.Matches(msg, m.keys.Faster):
		m.setSpeed(m.speed + speedStep)
	case key.Matches(msg, m.keys.Bigger):
		m.resize(m.size + sizeStep)
	case key.Matches(msg, m.keys.Smaller):
		m.resize(m.size - sizeStep)
	case key.Matches(msg, m.keys.Algorithm):
		if !m.playing() {
			m.algIdx = (m.algIdx + 1) % len(m.algorithms)
			m.clearRun()
		}
	case key.Matches(msg, m.keys.StepFwd):
		m.stepManual(1)
	case key.Matches(msg, m.keys.StepBack):
		m.stepManual(-1)
	}
	return m, nil
}

// start sorts whatever array is on screen, so a finished run restarted
// replays from its sorted result. Elements keep their identity.
func (m *Model) start() {
	els := trace.Clone(m.Displayed().Elements)
	for i := range els {
		els[i].State = trace.Default
	}
	r, err := m.sess.Play(m.ctx, m.Algorithm(), els, m.speed)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.input = els
	m.run = r
	m.iter, m.hasMan = nil, false
	m.progress, m.lastIndex = nil, -1
}

func (m *Model) stepManual(dir int) {
	if m.playing() {
		return
	}
	if m.iter == nil {
		if m.run == nil {
			r, err := m.sess.Prepare(m.Algorithm(), m.input)
			if err != nil {
				m.err = err
				return
			}
			m.run = r
		}
		// continue from wherever a stopped run left off
		m.iter = sorting.NewIterator(m.run.Steps)
		if c := m.run.Cursor(); c >= 0 {
			m.iter.Seek(c)
		}
	}
	var (
		f  trace.Frame
		ok bool
	)
	if dir > 0 {
		f, ok = m.iter.Next()
	} else {
		f, ok = m.iter.Prev()
	}
	if ok {
		m.manual, m.hasMan = f, true
	}
}

func (m *Model) setSpeed(speed int) {
	speed = max(playback.MinSpeed, min(playback.MaxSpeed, speed))
	if err := m.sess.SetSpeed(speed); err != nil {
		m.err = err
		return
	}
	m.speed = speed
}

func (m *Model) resize(n int) {
	if m.playing() {
		return
	}
	n = config.ClampSize(n)
	if n == m.size {
		return
	}
	m.size = n
	m.regenerate()
}

func (m *Model) regenerate() {
	m.sess.Reset()
	els, err := m.gen.Generate(m.size)
	if err != nil {
		m.err = err
		return
	}
	m.input = els
	m.err = nil
	m.clearRun()
}

func (m *Model) clearRun() {
	m.run, m.iter, m.hasMan = nil, nil, false
	m.view = session.ViewState{}
	m.progress, m.lastIndex = nil, -1
}

func (m Model) View() string {
	var b strings.Builder
	a := m.Algorithm()
	info, _ := m.reg.Info(a)

	title := lipgloss.NewStyle().Foreground(m.theme.Title).Bold(true)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	b.WriteString(title.Render(strings.ToUpper(info.Name)) + "  " + muted.Render(info.Description) + "\n")
	if info.Placeholder {
		b.WriteString(warnStyle.Render("not implemented yet: visualizing bubble sort") + "\n")
	}
	b.WriteString(separator(m.width-4, m.theme.Muted) + "\n")

	step := m.Displayed()
	barHeight := max(6, m.height-16)
	b.WriteString(RenderBars(step.Elements, m.width-4, barHeight, m.theme) + "\n\n")

	desc := step.Description
	if desc == "" {
		desc = "Press space to start sorting"
	}
	b.WriteString(descStyle.Render(desc) + "\n")
	b.WriteString(Legend(m.theme) + "\n\n")
	b.WriteString(m.stats(info, step))

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) stats(info sorting.Info, step trace.Step) string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	status := statusIdle.Render("stopped")
	if m.playing() {
		status = statusRunning.Render("sorting")
	} else if m.run != nil {
		status = statusIdle.Render(m.run.Status().String())
	}

	pos := "-"
	switch {
	case m.hasMan:
		pos = fmt.Sprintf("%d / %d (manual)", m.manual.Index+1, m.manual.Total)
	case m.run != nil && m.view.HasFrame && m.view.RunID == m.run.ID:
		pos = fmt.Sprintf("%d / %d", m.view.Frame.Index+1, m.view.Frame.Total)
	}

	frac := 0.0
	if n := len(step.Elements); n > 0 {
		frac = float64(len(step.Sorted)) / float64(n)
	}

	var left strings.Builder
	left.WriteString(row("status", status))
	left.WriteString(row("step", pos))
	left.WriteString(row("size", fmt.Sprint(m.size)))
	left.WriteString(row("speed", fmt.Sprintf("%d%% (%s)", m.speed, playback.Delay(m.speed))))
	left.WriteString(row("time", info.TimeComplexity+" best "+info.BestCase+" worst "+info.WorstCase))
	left.WriteString(row("space", info.SpaceComplexity))
	left.WriteString(row("sorted", ProgressBar(frac, 20)))

	if len(m.progress) < 2 {
		return panelStyle.Render(strings.TrimRight(left.String(), "\n"))
	}
	chart := asciigraph.Plot(m.progress,
		asciigraph.Height(5), asciigraph.Width(30),
		asciigraph.LowerBound(0), asciigraph.UpperBound(100),
		asciigraph.Caption("sorted %"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(strings.TrimRight(left.String(), "\n")),
		panelStyle.Render(graphStyle.Render(chart)))
}

// Run starts the full-screen program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
