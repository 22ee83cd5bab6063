// Package theme holds the quizdeck palette and the lipgloss styles built on it.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#8B5CF6") // violet: brand, focus
	Secondary = lipgloss.Color("#14B8A6") // teal: progress
	Accent    = lipgloss.Color("#FBBF24") // amber: streaks, in progress
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8391A7")
	BgCard    = lipgloss.Color("#1A2233")
	Border    = lipgloss.Color("#3B4A61")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true)
	Subtitle = fg(TextDim)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Muted    = fg(TextDim)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)

	BadgeCompleted  = fg(Success).Bold(true)
	BadgeInProgress = fg(Accent).Bold(true)
	BadgeNotStarted = fg(TextDim)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
