// Package quiz implements the multiple-choice quiz state machine: question
// navigation, answer capture, grading and retry.
package quiz

import (
	"slices"
	"sync"
)

// State is a snapshot of an attempt.
type State struct {
	CurrentIndex int
	Answers      map[int]int
	Completed    bool
	Total        int
}

// Answered reports whether the question at index i has a selection.
func (s State) Answered(i int) bool {
	_, ok := s.Answers[i]
	return ok
}

// Engine drives one attempt over a fixed QuestionSet. It is safe for
// concurrent use. Listeners see snapshots in transition order; they may
// read the engine but must not call SelectAnswer, Advance or Retry.
// A zero Engine has no questions and rejects every transition.
type Engine struct {
	set        QuestionSet
	onComplete func(Result)

	// publishing is held across a transition and the delivery of its
	// snapshot, so deliveries cannot overtake each other.
	publishing sync.Mutex

	mu        sync.Mutex
	current   int
	answers   map[int]int
	completed bool
	listeners []func(State)
}

// New creates an engine positioned on the first question. onComplete may be
// nil and is invoked by Finish.
func New(set QuestionSet, onComplete func(Result)) (*Engine, error) {
	if set.Empty() {
		return nil, &ConfigError{Problems: []string{"no questions"}}
	}
	return &Engine{
		set:        set,
		onComplete: onComplete,
		answers:    make(map[int]int),
	}, nil
}

// Questions returns the set this engine runs over.
func (e *Engine) Questions() QuestionSet {
	return e.set
}

// Subscribe registers fn to receive a snapshot after every successful
// transition.
func (e *Engine) Subscribe(fn func(State)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// SelectAnswer records option for the current question, replacing any
// earlier selection.
func (e *Engine) SelectAnswer(option int) error {
	return e.transition(func() error {
		if err := e.checkOpenLocked("select answer"); err != nil {
			return err
		}
		n := len(e.set.questions[e.current].Options)
		if option < 0 || option >= n {
			return invalidOp("select answer", "option %d out of range [0, %d)", option, n)
		}
		e.answers[e.current] = option
		return nil
	})
}

// Advance moves to the next question, or completes the attempt when the
// current question is the last one. The current question must be answered.
func (e *Engine) Advance() error {
	return e.transition(func() error {
		if err := e.checkOpenLocked("advance"); err != nil {
			return err
		}
		if _, ok := e.answers[e.current]; !ok {
			return invalidOp("advance", "question %d has no answer", e.current+1)
		}
		if e.current < e.set.Len()-1 {
			e.current++
		} else {
			e.completed = true
		}
		return nil
	})
}

// Retry discards all answers and returns to the first question.
func (e *Engine) Retry() {
	_ = e.transition(func() error {
		e.current = 0
		e.answers = make(map[int]int)
		e.completed = false
		return nil
	})
}

// Finish hands the final result to the completion callback. Only valid once
// the attempt is completed.
func (e *Engine) Finish() (Result, error) {
	e.mu.Lock()
	if !e.completed {
		e.mu.Unlock()
		return Result{}, invalidOp("finish", "quiz is not completed")
	}
	res := Grade(e.set, e.answers)
	cb := e.onComplete
	e.mu.Unlock()

	if cb != nil {
		cb(res)
	}
	return res, nil
}

// Score grades the current answers. Unanswered questions count as incorrect.
func (e *Engine) Score() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Grade(e.set, e.answers)
}

// IsPassing reports whether the current score meets threshold.
func (e *Engine) IsPassing(threshold int) bool {
	return e.Score().IsPassing(threshold)
}

// State returns a snapshot of the attempt.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Completed reports whether the last question has been advanced past.
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Current returns the index and a copy of the question being answered.
// The question is zero when the engine has no questions.
func (e *Engine) Current() (int, Question) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Empty() {
		return 0, Question{}
	}
	return e.current, e.set.Question(e.current)
}

// Selected returns the option chosen for question i.
func (e *Engine) Selected(i int) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel, ok := e.answers[i]
	return sel, ok
}

// Review returns the per-question breakdown of the current answers.
func (e *Engine) Review() []QuestionReview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Review(e.set, e.answers)
}

// ProgressPercent is the position of the current question as a rounded
// percentage of the set.
func (e *Engine) ProgressPercent() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Percent(e.current+1, e.set.Len())
}

func (e *Engine) snapshotLocked() State {
	answers := make(map[int]int, len(e.answers))
	for k, v := range e.answers {
		answers[k] = v
	}
	return State{
		CurrentIndex: e.current,
		Answers:      answers,
		Completed:    e.completed,
		Total:        e.set.Len(),
	}
}

func (e *Engine) checkOpenLocked(op string) error {
	if e.set.Empty() {
		return invalidOp(op, "no questions")
	}
	if e.completed {
		return invalidOp(op, "quiz is completed")
	}
	return nil
}

// transition applies change under the state lock and, when it succeeds,
// delivers the resulting snapshot to every listener.
func (e *Engine) transition(change func() error) error {
	e.publishing.Lock()
	defer e.publishing.Unlock()

	e.mu.Lock()
	if err := change(); err != nil {
		e.mu.Unlock()
		return err
	}
	snap := e.snapshotLocked()
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return nil
}
