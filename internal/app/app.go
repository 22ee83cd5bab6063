// Package app is the root Bubble Tea model of the interactive quizdeck UI.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/dashboard"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// AppModel owns the screen stack and the window chrome.
type AppModel struct {
	router *router.Router
	status layout.HeaderStatus
	width  int
	height int
}

func newAppModel(env screen.Env) AppModel {
	return AppModel{router: router.New(dashboard.New(env))}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case screen.ProgressMsg:
		// Screens also consume this message; the header only mirrors it.
		if msg.Err == nil {
			m.status = layout.HeaderStatus{
				Overall: msg.Report.Overview.Overall,
				Streak:  msg.Report.Stats.Streak,
			}
		}

	case tea.KeyPressMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles keys that work on every screen.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch {
	case key == "ctrl+c":
		return tea.Quit, true
	case key == "esc" && m.router.Depth() > 1:
		return navigate(router.PopScreenMsg{}), true
	case key == "home" && m.router.Depth() > 2:
		return navigate(router.PopToRootMsg{}), true
	}
	return nil, false
}

func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m AppModel) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if m.router.Depth() > 2 {
		hints = append(hints, layout.KeyHint{Key: "Home", Description: "Dashboard"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	chrome := layout.Chrome{Trail: m.router.Trail(), Status: m.status, Hints: m.hints()}
	v.SetContent(chrome.Render(m.width, m.height, m.router.View))
	return v
}

// Run blocks until the learner quits.
func Run(env screen.Env) error {
	_, err := tea.NewProgram(newAppModel(env)).Run()
	return err
}
