package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Limit is the number of recent results shown.
const Limit = 50

type historyLoadedMsg struct {
	Results []store.QuizResult
	Err     error
}

// HistoryScreen lists recent quiz results.
type HistoryScreen struct {
	env      screen.Env
	results  []store.QuizResult
	selected int
	expanded map[int]bool
	spinner  spinner.Model
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		expanded: make(map[int]bool),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load())
}

func (s *HistoryScreen) load() tea.Cmd {
	repo := s.env.Repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		results, err := repo.QueryQuizResults(ctx, store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	if s.errMsg != "" {
		return "\n\n" + center(theme.Incorrect.Render("Error: "+s.errMsg))
	}
	if !s.loaded {
		return "\n\n" + center(s.spinner.View()+theme.Muted.Render(" Loading history..."))
	}
	if len(s.results) == 0 {
		return "\n\n" + center(theme.Hint.Render("No quizzes taken yet. Pick a lesson to get started!"))
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.results {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		b.WriteString(center(style.Render(prefix+s.summaryLine(r)) + "  " + verdict(r)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, line := range s.detailLines(r) {
				b.WriteString(center(theme.Muted.Render(line)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) summaryLine(r store.QuizResult) string {
	return fmt.Sprintf("%s  %-28s %3d%%  %d/%d",
		r.Timestamp.Format("Jan 02 15:04"), truncate(s.lessonTitle(r), 28), r.Percentage, r.Correct, r.Total)
}

func verdict(r store.QuizResult) string {
	if r.Passed() {
		return theme.Correct.Render("passed")
	}
	return theme.Incorrect.Render("not passed")
}

func (s *HistoryScreen) detailLines(r store.QuizResult) []string {
	courseTitle := r.CourseID
	if c, err := s.env.Catalog.Course(r.CourseID); err == nil {
		courseTitle = c.Title
	}
	lines := []string{
		fmt.Sprintf("    Course: %s", courseTitle),
		fmt.Sprintf("    Time: %s   Pass mark: %d%%", formatDuration(r.DurationMs), r.PassThreshold),
	}

	lesson, err := s.env.Catalog.Lesson(r.CourseID, r.LessonID)
	if err != nil {
		return lines
	}
	idx := make([]int, 0, len(r.Answers))
	for i := range r.Answers {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		if i < 0 || i >= len(lesson.Questions) {
			continue
		}
		q := lesson.Questions[i]
		mark := "✗"
		if r.Answers[i] == q.CorrectIndex {
			mark = "✓"
		}
		lines = append(lines, fmt.Sprintf("    %s Q%d %s", mark, i+1, truncate(q.Prompt, 50)))
	}
	return lines
}

func (s *HistoryScreen) lessonTitle(r store.QuizResult) string {
	if l, err := s.env.Catalog.Lesson(r.CourseID, r.LessonID); err == nil {
		return l.Title
	}
	return r.LessonID
}

func formatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
