// Package router keeps the stack of open screens. Screens navigate by
// returning the messages defined here rather than touching the stack.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// PopToRootMsg closes every screen above the first one.
type PopToRootMsg struct{}

// Router is a stack of screens; the top one is active. The root screen is
// never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and resumes the one revealed below it.
func (r *Router) Pop() tea.Cmd {
	return r.popTo(len(r.stack) - 2)
}

// PopToRoot closes everything above the root and resumes it.
func (r *Router) PopToRoot() tea.Cmd {
	return r.popTo(0)
}

func (r *Router) popTo(depth int) tea.Cmd {
	if depth < 0 || depth >= len(r.stack)-1 {
		return nil
	}
	clear(r.stack[depth+1:])
	r.stack = r.stack[:depth+1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Trail lists the titles of the open screens from root to top.
func (r *Router) Trail() []string {
	titles := make([]string, len(r.stack))
	for i, s := range r.stack {
		titles[i] = s.Title()
	}
	return titles
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}
	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen into width x height.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
