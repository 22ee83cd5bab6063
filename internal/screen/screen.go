// Package screen declares the contract between the router and the
// individual TUI pages.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Screen is one page on the navigation stack. The router owns the chrome;
// a screen only draws its body into the size it is given.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is the screen's breadcrumb label.
	Title() string
}

// KeyHintProvider lets a screen put its own bindings in the footer,
// ahead of the global ones.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer screens refresh when they return to the top of the stack.
type Resumer interface {
	Resume() tea.Cmd
}
