package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MenuItem is one row of a Menu. Detail is rendered dimmed after the label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that never rests on a disabled row.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.seek(0, 1)
	return m
}

// WithItems swaps the rows while keeping the cursor where it was when that
// row still exists and is enabled.
func (m Menu) WithItems(items []MenuItem) Menu {
	prev := m.Selected
	m = NewMenu(items)
	if prev >= 0 && prev < len(items) && !items[prev].Disabled {
		m.Selected = prev
	}
	return m
}

// seek moves the cursor to the first enabled row at or after from, walking
// in direction dir. The cursor stays put when there is none.
func (m *Menu) seek(from, dir int) {
	for i := from; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.seek(m.Selected-1, -1)
	case "down", "j":
		m.seek(m.Selected+1, 1)
	case "home", "g":
		m.seek(0, 1)
	case "end", "G":
		m.seek(len(m.Items)-1, -1)
	case "enter":
		if item, ok := m.Current(); ok && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// Current returns the highlighted row.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style, cursor := theme.Unselected, "  "
		switch {
		case item.Disabled:
			style = theme.Muted
		case i == m.Selected:
			style, cursor = theme.Selected, "▸ "
		}
		b.WriteString(style.Render("  " + cursor + item.Label))
		if item.Detail != "" {
			b.WriteString("  " + theme.Muted.Render(item.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
