package preview

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/harmonia/internal/config"
	"github.com/san-kum/harmonia/internal/lifecycle"
	"github.com/san-kum/harmonia/internal/oscillator"
	"github.com/san-kum/harmonia/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func snapshot(end float32) *config.Snapshot {
	s := config.DefaultSettings()
	s.EndTime = end
	return &config.Snapshot{Oscillators: config.DefaultOscillators(), Settings: s}
}

type failing struct{}

func (failing) Poll() (*config.Snapshot, bool, error) {
	return nil, false, errors.New("boom")
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_SpawnsAndAnimates(t *testing.T) {
	m := New(config.Ready(snapshot(60)), 30, quiet)
	assert.Contains(t, m.View(), "loading")

	start := time.Unix(0, 0)
	_, cmd := m.Update(tickMsg(start))
	assert.False(t, isQuit(t, cmd))
	assert.True(t, m.spawned)
	assert.Equal(t, scene.VertexCount(config.DefaultSubdivisions), m.vertices)

	m.Update(tickMsg(start.Add(time.Second)))
	assert.Equal(t, lifecycle.Running, m.driver.State())
	assert.Len(t, m.bars.pos, oscillator.HarmonicCount)
	assert.Len(t, m.heights, 2)
	assert.InDelta(t, 1.0, m.frame.Time, 1e-4)

	view := m.View()
	assert.Contains(t, view, "running")
	assert.Contains(t, view, "object height")
}

func TestModel_QuitsWhenShowEnds(t *testing.T) {
	m := New(config.Ready(snapshot(1)), 30, quiet)
	start := time.Unix(0, 0)
	m.Update(tickMsg(start))
	_, cmd := m.Update(tickMsg(start.Add(2 * time.Second)))

	assert.True(t, m.exit)
	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, lifecycle.Terminated, m.driver.State())
	assert.NoError(t, m.Err())
}

func TestModel_LoadErrorQuits(t *testing.T) {
	m := New(failing{}, 30, quiet)
	_, cmd := m.Update(tickMsg(time.Unix(0, 0)))

	assert.True(t, isQuit(t, cmd))
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "boom")
}

func TestModel_KeyQuits(t *testing.T) {
	m := New(config.Ready(snapshot(60)), 30, quiet)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, isQuit(t, cmd))
}

func TestModel_HistoryIsCapped(t *testing.T) {
	m := New(config.Ready(snapshot(600)), 30, quiet)
	start := time.Unix(0, 0)
	for i := range historyCapacity + 20 {
		m.Update(tickMsg(start.Add(time.Duration(i) * 10 * time.Millisecond)))
	}
	assert.Len(t, m.heights, historyCapacity)
}

func TestBar(t *testing.T) {
	assert.Equal(t, 0, strings.Count(bar(0, 10), "█"))
	assert.Equal(t, 5, strings.Count(bar(1, 10), "█"))
	assert.Equal(t, 5, strings.Count(bar(-3, 10), "█"))
	assert.Equal(t, 2, strings.Count(bar(0.4, 10), "█"))
}

func TestBars_ApproachTarget(t *testing.T) {
	b := newBars(30)
	target := []float32{1, -1}
	var pos []float64
	for range 120 {
		pos = b.update(target)
	}
	assert.InDelta(t, 1.0, pos[0], 0.01)
	assert.InDelta(t, -1.0, pos[1], 0.01)
}

func TestModel_NilLoggerStaysOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	m := New(config.Ready(snapshot(1)), 30, nil)
	start := time.Unix(0, 0)
	m.Update(tickMsg(start))
	m.Update(tickMsg(start.Add(2 * time.Second)))

	assert.Equal(t, lifecycle.Terminated, m.driver.State())
	assert.Empty(t, buf.String())
}
