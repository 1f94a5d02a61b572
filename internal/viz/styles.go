package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	sidebar lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	paused  lipgloss.Style
	help    lipgloss.Style
	cursor  lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(40),
		title:  lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Label).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Value),
		graph:  lipgloss.NewStyle().Foreground(t.Graph),
		paused: lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		cursor: lipgloss.NewStyle().Foreground(t.Title).Bold(true),
	}
}

// ColorBar renders a row of swatches, one per color.
func ColorBar(hexes []string, width int) string {
	if len(hexes) == 0 {
		return strings.Repeat(" ", width)
	}
	step := len(hexes) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < width && i*step < len(hexes); i++ {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexes[i*step])).Render("█"))
	}
	return b.String()
}
