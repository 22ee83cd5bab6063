// Package layout draws the chrome around every screen: a breadcrumb header
// with the learner's overall progress and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// compactBody is the body height under which screens drop secondary text.
	compactBody = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStatus is the learner summary on the right of the header.
type HeaderStatus struct {
	Overall int
	Streak  int
}

// TooSmall reports whether the terminal is below the supported size.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether a screen body of the given height should use
// its condensed form.
func Compact(bodyHeight int) bool {
	return bodyHeight < compactBody
}

// Chrome is everything drawn around a screen body.
type Chrome struct {
	Trail  []string
	Status HeaderStatus
	Hints  []KeyHint
}

// Render lays out header, body and footer in a width x height frame. body
// is called with the space left between header and footer.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	if TooSmall(width, height) {
		return tooSmall(width, height)
	}
	header := c.header(width)
	footer := c.footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	main := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, main, footer)
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

func (c Chrome) header(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("quizdeck")
	trail := breadcrumbs(c.Trail)
	status := lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("%d%% overall", c.Status.Overall)) +
		"   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(streakLabel(c.Status.Streak))

	inner := max(width-4, 0)
	left := " " + brand + "  " + trail
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(status), 1)
	return bar.Width(width).Render(left + strings.Repeat(" ", gap) + status)
}

// breadcrumbs joins screen titles, dimming all but the last.
func breadcrumbs(trail []string) string {
	if len(trail) == 0 {
		return ""
	}
	sep := theme.Muted.Render(" › ")
	parts := make([]string, len(trail))
	for i, t := range trail {
		if i == len(trail)-1 {
			parts[i] = theme.Body.Render(t)
		} else {
			parts[i] = theme.Muted.Render(t)
		}
	}
	return strings.Join(parts, sep)
}

func (c Chrome) footer(width int) string {
	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Muted.Render(h.Description)
	}
	return bar.Width(width).Render(" " + strings.Join(parts, theme.Muted.Render("  ·  ")))
}

func tooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("quizdeck needs at least %dx%d\n(currently %dx%d)", MinWidth, MinHeight, width, height))
}

func streakLabel(days int) string {
	if days == 1 {
		return "1 day streak"
	}
	return fmt.Sprintf("%d day streak", days)
}
