// Package course holds the course overview and lesson detail screens.
package course

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// CourseScreen lists a course's lessons with their quiz status.
type CourseScreen struct {
	env      screen.Env
	course   catalog.Course
	progress progress.CourseProgress
	menu     components.Menu
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)
var _ screen.Resumer = (*CourseScreen)(nil)

// New creates a CourseScreen.
func New(env screen.Env, course catalog.Course) *CourseScreen {
	s := &CourseScreen{
		env:      env,
		course:   course,
		progress: progress.CourseProgress{Course: course},
	}
	s.buildMenu()
	return s
}

func (s *CourseScreen) Init() tea.Cmd {
	return screen.LoadProgress(s.env)
}

func (s *CourseScreen) Resume() tea.Cmd {
	return screen.LoadProgress(s.env)
}

func (s *CourseScreen) Title() string {
	return s.course.Title
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CourseScreen) buildMenu() {
	items := make([]components.MenuItem, len(s.course.Lessons))
	for i, lesson := range s.course.Lessons {
		lp, _ := s.progress.Lesson(lesson.ID)
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", i+1, lesson.Title),
			Detail: lessonDetail(lesson, lp),
			Action: s.openLesson(lesson),
		}
	}
	s.menu = s.menu.WithItems(items)
}

func (s *CourseScreen) openLesson(lesson catalog.Lesson) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: NewLesson(s.env, s.course, lesson)}
		}
	}
}

func lessonDetail(lesson catalog.Lesson, lp progress.LessonProgress) string {
	parts := []string{lesson.Duration}
	switch {
	case !lesson.HasQuiz():
		parts = append(parts, "no quiz")
	case lp.Completed:
		parts = append(parts, fmt.Sprintf("✓ best %d%%", lp.BestScore))
	case lp.Started():
		parts = append(parts, fmt.Sprintf("best %d%%", lp.BestScore))
	default:
		parts = append(parts, fmt.Sprintf("%d questions", len(lesson.Questions)))
	}
	return strings.Join(parts, " · ")
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		if cp, ok := msg.Report.Overview.Course(s.course.ID); ok {
			s.progress = cp
		}
		s.buildMenu()
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CourseScreen) View(width, height int) string {
	cw := min(width-4, 76)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(s.course.Title))
	b.WriteString("  ")
	b.WriteString(statusBadge(s.progress.Status()))
	b.WriteString("\n")
	meta := []string{s.course.Instructor, s.course.Category}
	if s.course.Level != "" {
		meta = append(meta, string(s.course.Level))
	}
	b.WriteString(theme.Subtitle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")
	if s.course.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(s.course.Description))
		b.WriteString("\n\n")
	}

	label := fmt.Sprintf("%d of %d quizzes passed", s.progress.Completed, s.progress.Total)
	b.WriteString(components.NewProgressBar(label, s.progress.Percent, true, cw).View())
	b.WriteString("\n\n")

	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("Error: " + s.errMsg))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func statusBadge(st progress.Status) string {
	switch st {
	case progress.StatusCompleted:
		return theme.BadgeCompleted.Render(st.Label())
	case progress.StatusInProgress:
		return theme.BadgeInProgress.Render(st.Label())
	default:
		return theme.BadgeNotStarted.Render(st.Label())
	}
}
