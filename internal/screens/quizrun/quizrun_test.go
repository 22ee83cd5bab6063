package quizrun

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	results []store.QuizResultData
	err     error
}

func (r *recordingRepo) AppendQuizResult(_ context.Context, data store.QuizResultData) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.results = append(r.results, data)
	return len(r.results), nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(t *testing.T, repo store.EventRepo) *QuizScreen {
	t.Helper()
	cat := catalog.Default()
	course, err := cat.Course(catalog.CourseJavaScript)
	if err != nil {
		t.Fatal(err)
	}
	lesson, err := cat.Lesson(catalog.CourseJavaScript, catalog.LessonJSVariables)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(screen.Env{Catalog: cat, Repo: repo}, course, lesson)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// answer presses the number key for option i (0-based) and then Enter.
func answer(s *QuizScreen, i int) {
	s.Update(keyPress(rune('1' + i)))
	s.Update(specialKey(tea.KeyEnter))
}

func TestQuizScreen_Title(t *testing.T) {
	s := testScreen(t, nil)
	if s.Title() != "Introduction to Variables Quiz" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_NumberKeySelects(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(keyPress('3'))

	if got, ok := s.attempt.Engine.Selected(0); !ok || got != 2 {
		t.Errorf("Selected(0) = %d, %v; want 2, true", got, ok)
	}
	if s.options.Cursor != 2 || s.options.Chosen != 2 {
		t.Errorf("cursor/chosen = %d/%d, want 2/2", s.options.Cursor, s.options.Chosen)
	}
}

func TestQuizScreen_OutOfRangeKeyShowsNotice(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(keyPress('9'))

	if _, ok := s.attempt.Engine.Selected(0); ok {
		t.Error("expected no selection for option 9")
	}
	if s.notice == "" {
		t.Error("expected notice for out-of-range option")
	}
}

func TestQuizScreen_EnterSelectsCursorAndAdvances(t *testing.T) {
	s := testScreen(t, nil)
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if s.state.CurrentIndex != 1 {
		t.Fatalf("CurrentIndex = %d, want 1", s.state.CurrentIndex)
	}
	if got, _ := s.attempt.Engine.Selected(0); got != 1 {
		t.Errorf("Selected(0) = %d, want 1", got)
	}
	if s.options.Cursor != 0 || s.options.Chosen != -1 {
		t.Errorf("options not reset for next question: %+v", s.options)
	}
}

func TestQuizScreen_CompletesIntoResults(t *testing.T) {
	s := testScreen(t, nil)
	answer(s, 0)
	answer(s, 3)
	answer(s, 0)

	if s.Phase() != PhaseResults {
		t.Fatalf("Phase = %v, want results", s.Phase())
	}
	view := s.View(100, 40)
	for _, want := range []string{"67%", "2 of 3 correct", "Correct:", "integer"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestQuizScreen_RetryResets(t *testing.T) {
	s := testScreen(t, nil)
	answer(s, 0)
	answer(s, 3)
	answer(s, 1)
	first := s.attempt.ID()

	s.Update(keyPress('r'))

	if s.Phase() != PhaseAnswering {
		t.Errorf("Phase = %v, want answering", s.Phase())
	}
	if s.state.CurrentIndex != 0 || len(s.state.Answers) != 0 {
		t.Errorf("state not reset: %+v", s.state)
	}
	if s.attempt.ID() == first {
		t.Error("expected new attempt ID after retry")
	}
}

func TestQuizScreen_ContinueSavesAndPops(t *testing.T) {
	repo := &recordingRepo{}
	s := testScreen(t, repo)
	answer(s, 0)
	answer(s, 3)
	answer(s, 1)

	_, cmd := s.Update(keyPress('c'))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()
	saved, ok := msg.(resultSavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want resultSavedMsg", msg)
	}
	if len(repo.results) != 1 || repo.results[0].Percentage != 100 {
		t.Fatalf("saved = %+v", repo.results)
	}
	if saved.Data.LessonID != catalog.LessonJSVariables {
		t.Errorf("LessonID = %q", saved.Data.LessonID)
	}

	_, cmd = s.Update(saved)
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg after save")
	}
}

func TestQuizScreen_SaveErrorStays(t *testing.T) {
	repo := &recordingRepo{err: errors.New("db locked")}
	s := testScreen(t, repo)
	answer(s, 0)
	answer(s, 3)
	answer(s, 1)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	_, cmd = s.Update(cmd())
	if cmd != nil {
		t.Error("expected no pop after save error")
	}
	if !strings.Contains(s.errMsg, "db locked") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestQuizScreen_NoRepoPopsDirectly(t *testing.T) {
	s := testScreen(t, nil)
	answer(s, 0)
	answer(s, 3)
	answer(s, 1)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestQuizScreen_KeyHintsByPhase(t *testing.T) {
	s := testScreen(t, nil)
	if s.KeyHints()[0].Key != "1-9" {
		t.Errorf("answering hints = %+v", s.KeyHints())
	}
	answer(s, 0)
	answer(s, 0)
	answer(s, 0)
	if s.KeyHints()[1].Key != "r" {
		t.Errorf("results hints = %+v", s.KeyHints())
	}
}
