package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/course"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/store"
)

var testNow = time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testDashboard() *DashboardScreen {
	return New(screen.Env{Catalog: catalog.Default(), Now: func() time.Time { return testNow }})
}

func TestDashboard_ListsAllCourses(t *testing.T) {
	d := testDashboard()
	if len(d.menu.Items) != catalog.Default().Len() {
		t.Errorf("menu items = %d, want %d", len(d.menu.Items), catalog.Default().Len())
	}
	if !strings.Contains(d.menu.Items[0].Detail, "Not started 0%") {
		t.Errorf("Detail = %q", d.menu.Items[0].Detail)
	}
}

func TestDashboard_ProgressMsg(t *testing.T) {
	d := testDashboard()
	results := []store.QuizResult{{
		Timestamp: testNow,
		QuizResultData: store.QuizResultData{
			CourseID: catalog.CourseJavaScript, LessonID: catalog.LessonJSVariables,
			Correct: 3, Total: 3, Percentage: 100, PassThreshold: 70,
		},
	}}
	d.Update(screen.ProgressMsg{Report: progress.Compute(catalog.Default(), results, testNow)})

	if d.Report().Stats.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", d.Report().Stats.Attempts)
	}
	if !strings.Contains(d.menu.Items[0].Detail, "In progress 25%") {
		t.Errorf("Detail = %q", d.menu.Items[0].Detail)
	}
}

func TestDashboard_SearchFilters(t *testing.T) {
	d := testDashboard()
	d.Update(keyPress('/'))
	if !d.searching {
		t.Fatal("expected search mode after /")
	}
	for _, r := range "react" {
		d.Update(keyPress(r))
	}
	if len(d.courses) != 1 || d.courses[0].ID != catalog.CourseReact {
		t.Fatalf("filtered = %+v", d.courses)
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if d.searching {
		t.Error("expected enter to leave search mode")
	}
	if len(d.courses) != 1 {
		t.Error("expected filter kept after enter")
	}

	d.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(d.courses) != catalog.Default().Len() {
		t.Errorf("courses = %d after clearing, want all", len(d.courses))
	}
}

func TestDashboard_SearchNoMatch(t *testing.T) {
	d := testDashboard()
	d.Update(keyPress('/'))
	for _, r := range "zzz" {
		d.Update(keyPress(r))
	}
	if !strings.Contains(d.View(100, 40), "No courses match") {
		t.Error("expected no-match message")
	}
}

func TestDashboard_EnterOpensCourse(t *testing.T) {
	d := testDashboard()
	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*course.CourseScreen); !ok {
		t.Errorf("pushed %T, want *course.CourseScreen", push.Screen)
	}
}

func TestDashboard_HistoryKey(t *testing.T) {
	d := testDashboard()
	_, cmd := d.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestDashboard_View(t *testing.T) {
	d := testDashboard()
	view := d.View(100, 40)
	for _, want := range []string{"Welcome back", "Overall progress", "JavaScript Fundamentals"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
