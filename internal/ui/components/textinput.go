package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput as a one-line filter box.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput creates a focused search input.
func NewSearchInput(placeholder string, charLimit int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return SearchInput{Model: ti}
}

// Update forwards messages to the underlying textinput.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input.
func (s SearchInput) View() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Render(s.Model.View())
}

// Value returns the current filter text.
func (s SearchInput) Value() string {
	return s.Model.Value()
}

// Reset clears the filter text.
func (s *SearchInput) Reset() {
	s.Model.SetValue("")
}
