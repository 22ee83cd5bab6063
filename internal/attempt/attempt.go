// Package attempt binds a quiz engine to the lesson it runs and the
// bookkeeping needed to persist its result.
package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

// Attempt is one run of a lesson quiz. Retry starts a new attempt ID on
// the same engine.
type Attempt struct {
	Course    catalog.Course
	Lesson    catalog.Lesson
	Engine    *quiz.Engine
	Threshold int

	id        string
	startedAt time.Time
	now       func() time.Time
}

// Option configures an Attempt.
type Option func(*Attempt)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Attempt) { a.now = now }
}

// WithThreshold sets the pass threshold percentage.
func WithThreshold(threshold int) Option {
	return func(a *Attempt) { a.Threshold = threshold }
}

// Start builds the lesson's question set and positions a new engine on the
// first question.
func Start(course catalog.Course, lesson catalog.Lesson, opts ...Option) (*Attempt, error) {
	set, err := catalog.LessonQuestionSet(lesson)
	if err != nil {
		return nil, err
	}
	engine, err := quiz.New(set, nil)
	if err != nil {
		return nil, fmt.Errorf("start quiz %s/%s: %w", course.ID, lesson.ID, err)
	}

	a := &Attempt{
		Course:    course,
		Lesson:    lesson,
		Engine:    engine,
		Threshold: quiz.DefaultPassThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reset()
	return a, nil
}

// ID returns the current attempt identifier.
func (a *Attempt) ID() string {
	return a.id
}

// StartedAt returns when the current attempt began.
func (a *Attempt) StartedAt() time.Time {
	return a.startedAt
}

// Retry clears the engine and starts a fresh attempt.
func (a *Attempt) Retry() {
	a.Engine.Retry()
	a.reset()
}

// Passed reports whether the current answers meet the threshold.
func (a *Attempt) Passed() bool {
	return a.Engine.IsPassing(a.Threshold)
}

// Finish grades the completed attempt and returns the record to persist.
func (a *Attempt) Finish() (store.QuizResultData, error) {
	res, err := a.Engine.Finish()
	if err != nil {
		return store.QuizResultData{}, err
	}
	completed := a.now()
	return store.QuizResultData{
		AttemptID:     a.id,
		CourseID:      a.Course.ID,
		LessonID:      a.Lesson.ID,
		Correct:       res.Correct,
		Total:         res.Total,
		Percentage:    res.Percentage,
		PassThreshold: a.Threshold,
		Answers:       a.Engine.State().Answers,
		DurationMs:    completed.Sub(a.startedAt).Milliseconds(),
		CompletedAt:   completed,
	}, nil
}

// Save finishes the attempt and appends the result to repo.
func (a *Attempt) Save(ctx context.Context, repo store.EventRepo) (store.QuizResultData, error) {
	data, err := a.Finish()
	if err != nil {
		return data, err
	}
	if _, err := repo.AppendQuizResult(ctx, data); err != nil {
		return data, fmt.Errorf("save quiz result: %w", err)
	}
	return data, nil
}

func (a *Attempt) reset() {
	a.id = uuid.New().String()
	a.startedAt = a.now()
}
