package screen

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/store"
)

// Env carries the dependencies shared by every screen.
type Env struct {
	Catalog   *catalog.Catalog
	Repo      store.EventRepo // nil disables persistence
	Threshold int
	Now       func() time.Time
}

// Clock returns the current time from Now, defaulting to time.Now.
func (e Env) Clock() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// ProgressMsg carries a freshly computed progress report.
type ProgressMsg struct {
	Report progress.Report
	Err    error
}

// LoadProgress returns a command that computes the progress report.
// Without a repo the report reflects no attempts.
func LoadProgress(env Env) tea.Cmd {
	return func() tea.Msg {
		if env.Repo == nil {
			return ProgressMsg{Report: progress.Compute(env.Catalog, nil, env.Clock())}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rep, err := progress.Load(ctx, env.Catalog, env.Repo, env.Clock())
		return ProgressMsg{Report: rep, Err: err}
	}
}
