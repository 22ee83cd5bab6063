package quizrun

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const maxContentWidth = 72

func (s *QuizScreen) View(width, height int) string {
	cw := min(width-4, maxContentWidth)
	var body string
	if s.phase == PhaseResults {
		body = s.renderResults(cw, height)
	} else {
		body = s.renderQuestion(cw)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	e := s.attempt.Engine
	q := e.Questions().Question(s.state.CurrentIndex)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.attempt.Course.Title))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Question %d of %d", s.state.CurrentIndex+1, s.state.Total)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", e.ProgressPercent(), true, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	b.WriteString("\n")
	next := "Next"
	if s.state.CurrentIndex == s.state.Total-1 {
		next = "Finish"
	}
	_, answered := s.state.Answers[s.state.CurrentIndex]
	b.WriteString(components.Action(next, answered, "pick an option first"))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.notice))
	}
	return b.String()
}

func (s *QuizScreen) renderResults(cw, height int) string {
	e := s.attempt.Engine
	res := e.Score()
	passed := res.IsPassing(s.attempt.Threshold)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Quiz complete"))
	b.WriteString("\n\n")

	scoreStyle := theme.Incorrect
	verdict := fmt.Sprintf("Below the %d%% pass mark. Review the answers and try again.", s.attempt.Threshold)
	if passed {
		scoreStyle = theme.Correct
		verdict = "Passed. Lesson complete!"
	}
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d%%", res.Percentage)))
	b.WriteString(theme.Body.Render(fmt.Sprintf("   %d of %d correct", res.Correct, res.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(verdict))
	b.WriteString("\n\n")

	divider := theme.Muted.Render(strings.Repeat("─", cw))
	b.WriteString(divider)
	b.WriteString("\n")

	reviews := e.Review()
	// Reserve lines for the header above and a little slack.
	budget := max(height-10, 6)
	used := 0
	for _, r := range reviews[s.scroll:] {
		block := renderReview(r, cw)
		lines := lipgloss.Height(block)
		if used > 0 && used+lines > budget {
			b.WriteString(theme.Hint.Render("  ↓ more"))
			b.WriteString("\n")
			break
		}
		b.WriteString(block)
		b.WriteString("\n")
		used += lines + 1
	}

	if s.saving {
		b.WriteString(theme.Hint.Render("Saving result..."))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Incorrect.Render("Error: " + s.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func renderReview(r quiz.QuestionReview, cw int) string {
	mark := theme.Correct.Render("✓")
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	prompt := lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).
		Render(fmt.Sprintf("%d. %s", r.Index+1, r.Question.Prompt))

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, " "+mark+"  ", prompt))
	b.WriteString("\n")

	answer := "not answered"
	if r.Answered {
		answer = r.SelectedOption()
	}
	b.WriteString(theme.Muted.Render("    Your answer: "))
	if r.Correct {
		b.WriteString(theme.Correct.Render(answer))
	} else {
		b.WriteString(theme.Incorrect.Render(answer))
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render("    Correct: "))
		b.WriteString(theme.Correct.Render(r.Question.CorrectOption()))
	}
	if r.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw-4).PaddingLeft(4).Foreground(theme.TextDim).Italic(true).
			Render(r.Question.Explanation))
	}
	return b.String()
}
