package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/flakesim/internal/anim"
	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/flake"
)

const (
	canvasWidth     = 64
	canvasHeight    = 30
	panelWidth      = 46
	angleCapacity   = 120
	hostFrameRate   = 60
	minCanvasWidth  = 16
	minCanvasHeight = 8
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/hostFrameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts one controller in a bubbletea program. Bubbletea runs Update
// on a single goroutine, which is the only timeline the controller sees.
type Model struct {
	ctrl     *anim.Controller
	canvas   *Canvas
	surface  *Surface
	form     *Form
	link     *ShareLink
	theme    Theme
	start    time.Time
	angles   []float64
	frames   int
	segments int
	halted   bool
	lastErr  error
	showHelp bool
}

// NewModel wires a controller onto a fresh braille canvas. It fails when the
// controller cannot be built.
func NewModel(build func(anim.Location, *Surface) (*anim.Controller, error), link *ShareLink, theme string) (Model, error) {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	surface := NewSurface(canvas)
	ctrl, err := build(link, surface)
	if err != nil {
		return Model{}, err
	}
	form := NewForm()
	form.Populate(ctrl.Params())
	return Model{
		ctrl:    ctrl,
		canvas:  canvas,
		surface: surface,
		form:    form,
		link:    link,
		theme:   GetTheme(theme),
		angles:  make([]float64, 0, angleCapacity),
	}, nil
}

// Err is the error that halted the animation, if any.
func (m Model) Err() error { return m.ctrl.Err() }

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and drives frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.form.Next()
		case "shift+tab":
			m.form.Prev()
		case "up", "k", "+":
			m.form.Adjust(1)
		case "down", "j", "-":
			m.form.Adjust(-1)
		case "d", " ":
			m.form.Toggle()
		case "backspace":
			m.form.Type(0)
		case "r":
			m.form.Reload(m.ctrl.Params())
		case "enter":
			m.lastErr = m.ctrl.Submit(m.form.Values())
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.") {
				m.form.Type(rune(s[0]))
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-4)
	case TickMsg:
		return m.frame(time.Time(msg))
	}
	return m, nil
}

func (m Model) frame(t time.Time) (tea.Model, tea.Cmd) {
	if m.halted {
		return m, nil
	}
	if m.start.IsZero() {
		m.start = t
	}

	opts := m.ctrl.Options()
	p := opts.Ranges.Apply(m.ctrl.Params())
	m.surface.Fit(flake.Extent(p.Size, p.Depth))

	if !m.ctrl.Frame(t.Sub(m.start)) {
		m.halted = true
		m.lastErr = m.ctrl.Err()
		return m, nil
	}

	if st := m.ctrl.State(); st.Frames != m.frames {
		m.frames = st.Frames
		m.segments = flake.Count(p.Branches, p.Depth)
		m.angles = append(m.angles, flake.NormalizeHue(st.Params.BaseAngle))
		if len(m.angles) > angleCapacity {
			m.angles = m.angles[1:]
		}
	}
	return m, tick()
}

func (m *Model) resize(w, h int) {
	w, h = max(w, minCanvasWidth), max(h, minCanvasHeight)
	if w == m.canvas.Width && h == m.canvas.Height {
		return
	}
	m.canvas = NewCanvas(w, h)
	m.surface.Canvas = m.canvas
}

// View renders the flake next to the parameter panel.
func (m Model) View() string {
	th := m.theme
	header := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(th.Text)
	active := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	help := lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1)
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Muted).
		Padding(1, 2).
		Width(panelWidth)

	var s strings.Builder
	s.WriteString(header.Render("FLAKESIM") + "\n")

	status := lipgloss.NewStyle().Foreground(th.Success).Bold(true).Render("RUNNING")
	if m.halted {
		status = lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("HALTED")
	}
	s.WriteString(status + "\n\n")

	p := m.ctrl.Params()
	s.WriteString(label.Render("Frames") + value.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	s.WriteString(label.Render("Segments") + value.Render(fmt.Sprintf("%d", m.segments)) + "\n")
	s.WriteString(label.Render("Angle") + value.Render(fmt.Sprintf("%.1f°", p.BaseAngle)) + "\n")
	s.WriteString(label.Render("Hue") + lipgloss.NewStyle().Foreground(lipgloss.Color(flake.HueColor(p.BaseAngle).Hex())).Render("■ "+flake.HueColor(p.BaseAngle).CSS()) + "\n")

	if len(m.angles) > 1 {
		chart := asciigraph.Plot(m.angles,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(360),
			asciigraph.Caption("hue"),
		)
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Accent).Render(chart) + "\n")
	}

	s.WriteString("\nFORM\n")
	values := m.form.Values()
	for _, fd := range m.form.fields {
		v := values.Get(fd.name)
		if fd.name == config.KeyDirection {
			v = "[ ]"
			if m.form.checked {
				v = "[x]"
			}
		}
		line := fmt.Sprintf("%-11s %s", fd.label, v)
		if fd.name == m.form.Selected() {
			s.WriteString(active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + label.Render(line) + "\n")
		}
	}

	s.WriteString("\n" + label.Render("Link") + "\n" + value.Render(wrap(m.link.String(), panelWidth-6)) + "\n")
	if m.lastErr != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Error).Render(wrap(m.lastErr.Error(), panelWidth-6)) + "\n")
	}
	s.WriteString(help.Render("Tab:Field ↑↓:Edit D:Direction\nEnter:Submit R:Reload T:Theme\n?:Help Q:Quit"))

	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.Render())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel.Render(s.String()))
	if m.showHelp {
		return `
  Tab / Shift+Tab  select form field
  Up / Down        step the selected field
  0-9 . Backspace  type into the selected field
  D / Space        toggle direction
  Enter            submit the form (updates the link)
  R                reload the form from the running params
  T                cycle themes
  Q                quit
` + "\n" + mainView
	}
	return mainView
}

func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width] + "\n")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
