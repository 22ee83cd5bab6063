package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ProgressBar draws "label  ████░░░░  42%" in a fixed total width.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

const minBarCells = 4

var (
	filledCell = lipgloss.NewStyle().Foreground(theme.Secondary)
	emptyCell  = lipgloss.NewStyle().Foreground(theme.Border)
)

func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 100)

	var label, suffix string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = theme.Muted.Render(fmt.Sprintf("%5d%%", pct))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), minBarCells)
	filled := cells * pct / 100
	return label +
		filledCell.Render(strings.Repeat("█", filled)) +
		emptyCell.Render(strings.Repeat("░", cells-filled)) +
		suffix
}
