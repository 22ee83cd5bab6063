package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MultiChoice renders the options of one question.
// Cursor marks the highlighted option and Chosen the recorded answer
// (-1 for none). When Reveal is set the correct option is shown in green
// and a wrong choice in red.
type MultiChoice struct {
	Options      []string
	Cursor       int
	Chosen       int
	Reveal       bool
	CorrectIndex int
}

// NewMultiChoice creates an option list with nothing chosen.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// MoveUp moves the cursor to the previous option.
func (m *MultiChoice) MoveUp() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

// MoveDown moves the cursor to the next option.
func (m *MultiChoice) MoveDown() {
	if m.Cursor < len(m.Options)-1 {
		m.Cursor++
	}
}

// OptionLabel returns the letter shown next to option i.
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// View renders the option list.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d. %s) %s", prefix, mark, i+1, OptionLabel(i), opt)

		switch {
		case m.Reveal && i == m.CorrectIndex:
			line = theme.Correct.Render(line + "  ✓")
		case m.Reveal && i == m.Chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.Reveal:
			line = theme.Muted.Render(line)
		case i == m.Cursor:
			line = theme.Selected.Render(line)
		case i == m.Chosen:
			line = theme.Body.Bold(true).Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
