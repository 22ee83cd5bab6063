package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

type stubRepo struct {
	store.EventRepo
	results []store.QuizResult
	err     error
	opts    store.QueryOpts
}

func (r *stubRepo) QueryQuizResults(_ context.Context, opts store.QueryOpts) ([]store.QuizResult, error) {
	r.opts = opts
	return r.results, r.err
}

func sampleResults() []store.QuizResult {
	at := time.Date(2026, 4, 1, 14, 30, 0, 0, time.UTC)
	return []store.QuizResult{
		{ID: 2, Timestamp: at, QuizResultData: store.QuizResultData{
			CourseID: catalog.CourseJavaScript, LessonID: catalog.LessonJSVariables,
			Correct: 2, Total: 3, Percentage: 67, PassThreshold: 70,
			Answers: map[int]int{0: 0, 1: 3, 2: 0}, DurationMs: 75_000,
		}},
		{ID: 1, Timestamp: at.Add(-time.Hour), QuizResultData: store.QuizResultData{
			CourseID: catalog.CourseJavaScript, LessonID: catalog.LessonJSVariables,
			Correct: 3, Total: 3, Percentage: 100, PassThreshold: 70,
		}},
	}
}

func loaded(t *testing.T, repo *stubRepo) *HistoryScreen {
	t.Helper()
	s := New(screen.Env{Catalog: catalog.Default(), Repo: repo})
	msg := s.load()()
	s.Update(msg)
	return s
}

func TestHistoryScreen_LoadsWithLimit(t *testing.T) {
	repo := &stubRepo{results: sampleResults()}
	s := loaded(t, repo)

	if repo.opts.Limit != Limit {
		t.Errorf("Limit = %d, want %d", repo.opts.Limit, Limit)
	}
	if len(s.results) != 2 {
		t.Fatalf("results = %d, want 2", len(s.results))
	}
	view := s.View(120, 40)
	if !strings.Contains(view, "Introduction to Variables") {
		t.Error("expected lesson title in view")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &stubRepo{})
	if !strings.Contains(s.View(100, 30), "No quizzes taken yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &stubRepo{err: errors.New("no such table")})
	if !strings.Contains(s.View(100, 30), "no such table") {
		t.Error("expected error in view")
	}
}

func TestHistoryScreen_LoadingView(t *testing.T) {
	s := New(screen.Env{Catalog: catalog.Default()})
	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading view before results arrive")
	}
}

func TestHistoryScreen_ExpandDetails(t *testing.T) {
	s := loaded(t, &stubRepo{results: sampleResults()})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	lines := s.detailLines(s.results[0])
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"JavaScript Fundamentals", "1:15", "70%", "✗ Q3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("details missing %q:\n%s", want, joined)
		}
	}
	if !s.expanded[0] {
		t.Error("expected first row expanded")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, &stubRepo{results: sampleResults()})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}
