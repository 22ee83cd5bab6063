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
	"github.com/abhisek/quizdeck/internal/screens/quizrun"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// LessonScreen shows one lesson and starts its quiz.
type LessonScreen struct {
	env      screen.Env
	course   catalog.Course
	lesson   catalog.Lesson
	progress progress.LessonProgress
	errMsg   string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.Resumer = (*LessonScreen)(nil)

// NewLesson creates a LessonScreen.
func NewLesson(env screen.Env, course catalog.Course, lesson catalog.Lesson) *LessonScreen {
	return &LessonScreen{env: env, course: course, lesson: lesson}
}

func (s *LessonScreen) Init() tea.Cmd {
	return screen.LoadProgress(s.env)
}

func (s *LessonScreen) Resume() tea.Cmd {
	return screen.LoadProgress(s.env)
}

func (s *LessonScreen) Title() string {
	return s.lesson.Title
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if !s.lesson.HasQuiz() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Take quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if cp, ok := msg.Report.Overview.Course(s.course.ID); ok {
			s.progress, _ = cp.Lesson(s.lesson.ID)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "t":
			return s, s.takeQuiz()
		}
	}
	return s, nil
}

func (s *LessonScreen) takeQuiz() tea.Cmd {
	if !s.lesson.HasQuiz() {
		return nil
	}
	qs, err := quizrun.New(s.env, s.course, s.lesson)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: qs} }
}

func (s *LessonScreen) View(width, height int) string {
	cw := min(width-4, 76)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.course.Title))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(s.lesson.Title))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("Duration " + s.lesson.Duration))
	b.WriteString("\n\n")

	if s.lesson.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(s.lesson.Description))
		b.WriteString("\n\n")
	}
	if s.lesson.VideoURL != "" {
		b.WriteString(theme.Muted.Render("Video: "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(s.lesson.VideoURL))
		b.WriteString("\n\n")
	}

	if !s.lesson.HasQuiz() {
		b.WriteString(theme.Hint.Render("This lesson has no quiz."))
	} else {
		b.WriteString(theme.Body.Render(fmt.Sprintf("Quiz: %d questions", len(s.lesson.Questions))))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(s.statusLine()))
		b.WriteString("\n\n")
		b.WriteString(components.Action("Take quiz", true, ""))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("Error: " + s.errMsg))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *LessonScreen) statusLine() string {
	lp := s.progress
	switch {
	case lp.Completed:
		return fmt.Sprintf("Completed · best %d%% · %s", lp.BestScore, attempts(lp.Attempts))
	case lp.Started():
		return fmt.Sprintf("Not passed yet · best %d%% · %s", lp.BestScore, attempts(lp.Attempts))
	default:
		return "Not attempted"
	}
}

func attempts(n int) string {
	if n == 1 {
		return "1 attempt"
	}
	return fmt.Sprintf("%d attempts", n)
}
