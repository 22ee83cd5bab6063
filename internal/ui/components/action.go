package components

import "github.com/abhisek/quizdeck/internal/ui/theme"

// Action renders the call to action bound to Enter. An unavailable action
// is drawn as an outline with the reason it is blocked.
func Action(label string, available bool, blocked string) string {
	if available {
		return theme.ButtonActive.Render("⏎ " + label)
	}
	out := theme.ButtonInactive.Render(label)
	if blocked != "" {
		out += "  " + theme.Hint.Render(blocked)
	}
	return out
}
