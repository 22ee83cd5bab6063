// Package quizrun is the screen that runs one lesson quiz: answering,
// results with per-question review, retry and saving.
package quizrun

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Phase is the screen's display mode.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseResults
)

type resultSavedMsg struct {
	Data store.QuizResultData
	Err  error
}

// QuizScreen runs a lesson quiz. It observes the engine through Subscribe
// and renders from the latest snapshot.
type QuizScreen struct {
	attempt *attempt.Attempt
	repo    store.EventRepo

	state   quiz.State
	options components.MultiChoice
	phase   Phase

	notice string
	errMsg string
	saving bool
	scroll int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the lesson. Without env.Repo results are
// not persisted.
func New(env screen.Env, course catalog.Course, lesson catalog.Lesson) (*QuizScreen, error) {
	var opts []attempt.Option
	if env.Threshold > 0 {
		opts = append(opts, attempt.WithThreshold(env.Threshold))
	}
	if env.Now != nil {
		opts = append(opts, attempt.WithClock(env.Now))
	}
	a, err := attempt.Start(course, lesson, opts...)
	if err != nil {
		return nil, err
	}
	s := &QuizScreen{attempt: a, repo: env.Repo}
	s.state = a.Engine.State()
	a.Engine.Subscribe(s.onState)
	s.syncOptions()
	return s, nil
}

func (s *QuizScreen) onState(st quiz.State) {
	moved := st.CurrentIndex != s.state.CurrentIndex || st.Completed != s.state.Completed
	s.state = st
	if st.Completed {
		s.phase = PhaseResults
		s.scroll = 0
	} else {
		s.phase = PhaseAnswering
	}
	if moved {
		s.syncOptions()
	} else if chosen, ok := st.Answers[st.CurrentIndex]; ok {
		s.options.Chosen = chosen
	}
}

// syncOptions rebuilds the option list for the current question.
func (s *QuizScreen) syncOptions() {
	q := s.attempt.Engine.Questions().Question(s.state.CurrentIndex)
	s.options = components.NewMultiChoice(q.Options)
	if chosen, ok := s.state.Answers[s.state.CurrentIndex]; ok {
		s.options.Chosen = chosen
		s.options.Cursor = chosen
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.attempt.Lesson.Title + " Quiz"
}

// Phase returns the current display mode.
func (s *QuizScreen) Phase() Phase {
	return s.phase
}

// Attempt returns the attempt being run.
func (s *QuizScreen) Attempt() *attempt.Attempt {
	return s.attempt
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.phase == PhaseResults {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save & continue"},
			{Key: "r", Description: "Retry"},
			{Key: "↑↓", Description: "Scroll"},
			{Key: "Esc", Description: "Discard"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Choose"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyPressMsg:
		if s.phase == PhaseResults {
			return s.updateResults(msg)
		}
		return s.updateAnswering(msg)
	}
	return s, nil
}

func (s *QuizScreen) updateAnswering(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	key := msg.String()
	switch key {
	case "up", "k":
		s.options.MoveUp()
	case "down", "j":
		s.options.MoveDown()
	case "space":
		s.choose(s.options.Cursor)
	case "enter":
		if _, ok := s.state.Answers[s.state.CurrentIndex]; !ok {
			if !s.choose(s.options.Cursor) {
				return s, nil
			}
		} else if s.options.Cursor != s.options.Chosen {
			s.choose(s.options.Cursor)
		}
		if err := s.attempt.Engine.Advance(); err != nil {
			s.notice = operationMessage(err)
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '1')
			if s.choose(n) {
				s.options.Cursor = n
			}
		}
	}
	return s, nil
}

// choose records option i for the current question.
func (s *QuizScreen) choose(i int) bool {
	if err := s.attempt.Engine.SelectAnswer(i); err != nil {
		s.notice = operationMessage(err)
		return false
	}
	return true
}

func (s *QuizScreen) updateResults(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.saving {
		return s, nil
	}
	switch msg.String() {
	case "r":
		s.errMsg = ""
		s.attempt.Retry()
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.scroll < s.state.Total-1 {
			s.scroll++
		}
	case "enter", "c":
		return s, s.save()
	}
	return s, nil
}

func (s *QuizScreen) save() tea.Cmd {
	if s.repo == nil {
		if _, err := s.attempt.Finish(); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.saving = true
	a, repo := s.attempt, s.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		data, err := a.Save(ctx, repo)
		return resultSavedMsg{Data: data, Err: err}
	}
}

func operationMessage(err error) string {
	var opErr *quiz.OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	return err.Error()
}
