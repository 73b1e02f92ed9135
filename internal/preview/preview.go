// Package preview is a terminal monitor for a running show. It plays the
// same choreography as the window but draws amplitude bars, the lifecycle
// state and an object-height plot instead of the sphere.
package preview

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/harmonia/internal/driver"
	"github.com/san-kum/harmonia/internal/scene"
)

const (
	barWidth        = 30
	historyCapacity = 120
)

type tickMsg time.Time

// Model is a bubbletea model that also serves as the driver's renderer.
type Model struct {
	driver *driver.Driver
	fps    int
	bars   bars

	spawned  bool
	vertices int
	frame    driver.Frame
	heights  []float64
	last     time.Time
	exit     bool
	err      error

	width, height int
}

// New builds the monitor. The model draws on the whole terminal, so a nil
// log discards driver logging rather than writing to stderr.
func New(source driver.Source, fps int, log *slog.Logger, opts ...driver.Option) *Model {
	if fps <= 0 {
		fps = 30
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{fps: fps, bars: newBars(fps), width: 80, height: 24}
	opts = append([]driver.Option{driver.WithLogger(log)}, opts...)
	m.driver = driver.New(source, m, opts...)
	return m
}

// Run blocks until the show ends or the user quits.
func Run(source driver.Source, fps int, log *slog.Logger, opts ...driver.Option) error {
	m := New(source, fps, log, opts...)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.err
}

func (m *Model) SpawnScene(cmds scene.Commands) {
	m.spawned = true
	m.vertices = scene.VertexCount(cmds.Mesh.Subdivisions)
}

func (m *Model) Submit(f driver.Frame) {
	m.frame = f
	m.bars.update(f.Amplitudes)
	m.heights = append(m.heights, float64(f.ObjectHeight))
	if len(m.heights) > historyCapacity {
		m.heights = m.heights[1:]
	}
}

func (m *Model) RequestExit() { m.exit = true }

func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		if err := m.driver.Tick(dt); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.exit {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	var s strings.Builder
	state := m.driver.State().String()
	s.WriteString(title.Render("harmonia") + "  " + stateStyles[state].Render(state) + "\n\n")

	if !m.spawned {
		s.WriteString(hint.Render("loading configuration...") + "\n")
		return panel.Render(s.String())
	}

	s.WriteString(row("time", fmt.Sprintf("%.2fs", m.frame.Time)))
	s.WriteString(row("height", fmt.Sprintf("%.3f", m.frame.ObjectHeight)))
	s.WriteString(row("focus", fmt.Sprintf("%.3f", m.frame.FocusDistance)))
	p := m.frame.CameraPosition
	s.WriteString(row("camera", fmt.Sprintf("%.2f %.2f %.2f", p[0], p[1], p[2])))
	s.WriteString(row("mesh", fmt.Sprintf("%d vertices", m.vertices)))
	s.WriteString("\n")

	for i, v := range m.bars.pos {
		s.WriteString(label.Render(fmt.Sprintf("c%d ", i)) + bar(v, barWidth) + value.Render(fmt.Sprintf(" %+.3f", v)) + "\n")
	}

	if len(m.heights) > 1 {
		chart := asciigraph.Plot(m.heights, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("object height"))
		s.WriteString("\n" + graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + hint.Render("q quit"))
	return panel.Render(s.String())
}

func row(name, v string) string {
	return label.Render(fmt.Sprintf("%-8s", name)) + value.Render(v) + "\n"
}

// bar draws v centred on a zero line; |v| of 1 fills one half.
func bar(v float64, width int) string {
	half := width / 2
	n := int(math.Round(math.Min(math.Abs(v), 1) * float64(half)))
	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)
	if v < 0 {
		left = strings.Repeat(" ", half-n) + barNegative.Render(strings.Repeat("█", n))
	} else {
		right = barPositive.Render(strings.Repeat("█", n)) + strings.Repeat(" ", half-n)
	}
	return left + "│" + right
}
