package preview

import "github.com/charmbracelet/lipgloss"

var (
	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	label = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	value = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	hint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)

	barPositive = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barNegative = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	graph       = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
)

var stateStyles = map[string]lipgloss.Style{
	"building":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888899")),
	"running":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
	"quitting":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
	"terminated": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")),
}
