package cmd

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

type captureRepo struct {
	store.EventRepo
	saved []store.QuizResultData
}

func (r *captureRepo) AppendQuizResult(_ context.Context, d store.QuizResultData) (int, error) {
	r.saved = append(r.saved, d)
	return len(r.saved), nil
}

func startVariables(t *testing.T) *attempt.Attempt {
	t.Helper()
	cat := catalog.Default()
	c, err := cat.Course(catalog.CourseJavaScript)
	if err != nil {
		t.Fatal(err)
	}
	l, err := cat.Lesson(catalog.CourseJavaScript, catalog.LessonJSVariables)
	if err != nil {
		t.Fatal(err)
	}
	a, err := attempt.Start(c, l)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func runSession(t *testing.T, input string, repo store.EventRepo) (string, *attempt.Attempt) {
	t.Helper()
	a := startVariables(t)
	var out bytes.Buffer
	s := takeSession{in: bufio.NewScanner(strings.NewReader(input)), out: &out}
	if err := s.run(context.Background(), a, repo); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), a
}

func TestTakeSession_SavesResult(t *testing.T) {
	repo := &captureRepo{}
	out, _ := runSession(t, "1\n4\n1\n\n", repo)

	if !strings.Contains(out, "2/3 correct (67%)") {
		t.Errorf("missing score line:\n%s", out)
	}
	if !strings.Contains(out, "Correct:     number") {
		t.Errorf("missing correction for question 3:\n%s", out)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(repo.saved))
	}
	if repo.saved[0].Percentage != 67 {
		t.Errorf("Percentage = %d, want 67", repo.saved[0].Percentage)
	}
}

func TestTakeSession_RejectsBadInput(t *testing.T) {
	out, a := runSession(t, "x\n9\n1\n4\n2\n\n", nil)

	if !strings.Contains(out, "Enter a number between 1 and 4.") {
		t.Errorf("expected number hint:\n%s", out)
	}
	if !strings.Contains(out, "out of range") {
		t.Errorf("expected range error:\n%s", out)
	}
	if got := a.Engine.Score().Percentage; got != 100 {
		t.Errorf("Percentage = %d, want 100", got)
	}
}

func TestTakeSession_Retry(t *testing.T) {
	repo := &captureRepo{}
	runSession(t, "2\n2\n2\nr\n1\n4\n2\n\n", repo)

	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1 (retry discards)", len(repo.saved))
	}
	if repo.saved[0].Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", repo.saved[0].Percentage)
	}
}

func TestTakeSession_InputClosed(t *testing.T) {
	repo := &captureRepo{}
	out, _ := runSession(t, "1\n", repo)

	if !strings.Contains(out, "result discarded") {
		t.Errorf("expected discard notice:\n%s", out)
	}
	if len(repo.saved) != 0 {
		t.Errorf("saved = %d, want 0", len(repo.saved))
	}
}

func TestTakeSession_InputClosedAtFinishPrompt(t *testing.T) {
	repo := &captureRepo{}
	out, _ := runSession(t, "1\n4\n2\n", repo)

	if !strings.Contains(out, "3/3 correct") || !strings.Contains(out, "result discarded") {
		t.Errorf("expected results then discard notice:\n%s", out)
	}
	if len(repo.saved) != 0 {
		t.Errorf("saved = %d, want 0", len(repo.saved))
	}
}

func TestWithLessonQuiz(t *testing.T) {
	c, _ := catalog.Default().Course(catalog.CourseJavaScript)
	qs := []quiz.Question{{ID: 1, Prompt: "P", Options: []string{"a", "b"}}}

	got := withLessonQuiz(c, catalog.LessonJSVariables, qs)
	if len(got.Lessons) != 1 {
		t.Fatalf("lessons = %d, want 1", len(got.Lessons))
	}
	if got.Lessons[0].Questions[0].Prompt != "P" {
		t.Errorf("questions not replaced: %+v", got.Lessons[0].Questions)
	}
	if len(c.Lessons) < 2 || len(c.Lessons[0].Questions) != 3 {
		t.Error("source course was modified")
	}
}
