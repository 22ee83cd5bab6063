package quiz

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
)

func jsQuestions() []Question {
	return []Question{
		{ID: 1, Prompt: "What is the correct way to declare a variable in JavaScript?", Options: []string{"var x = 5;", "variable x = 5;", "v x = 5;", "declare x = 5;"}, CorrectIndex: 0},
		{ID: 2, Prompt: "Which of these is NOT a valid JavaScript data type?", Options: []string{"string", "number", "boolean", "character"}, CorrectIndex: 3},
		{ID: 3, Prompt: "What will console.log(typeof 42) output?", Options: []string{"integer", "number", "float", "numeric"}, CorrectIndex: 1},
	}
}

func newTestEngine(t *testing.T, onComplete func(Result)) *Engine {
	t.Helper()
	set, err := NewQuestionSet(jsQuestions())
	if err != nil {
		t.Fatalf("NewQuestionSet: %v", err)
	}
	e, err := New(set, onComplete)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func answerAll(t *testing.T, e *Engine, picks []int) {
	t.Helper()
	for i, p := range picks {
		if err := e.SelectAnswer(p); err != nil {
			t.Fatalf("SelectAnswer(%d) on question %d: %v", p, i, err)
		}
		if err := e.Advance(); err != nil {
			t.Fatalf("Advance on question %d: %v", i, err)
		}
	}
}

func TestEngine_InitialState(t *testing.T) {
	e := newTestEngine(t, nil)
	s := e.State()
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
	if s.Completed {
		t.Error("Completed = true, want false")
	}
	if len(s.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(s.Answers))
	}
	if got := e.ProgressPercent(); got != 33 {
		t.Errorf("ProgressPercent() = %d, want 33", got)
	}
}

func TestEngine_New_EmptySet(t *testing.T) {
	_, err := New(QuestionSet{}, nil)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("New(empty) error = %v, want ErrConfiguration", err)
	}
}

func TestEngine_FullRunCompletes(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 3, 1})

	if !e.Completed() {
		t.Fatal("Completed() = false after answering every question")
	}
	if idx, _ := e.Current(); idx != 2 {
		t.Errorf("current index = %d, want frozen at 2", idx)
	}
	res := e.Score()
	if res != (Result{Correct: 3, Total: 3, Percentage: 100}) {
		t.Errorf("Score() = %+v, want 3/3 100%%", res)
	}
	if !e.IsPassing(DefaultPassThreshold) {
		t.Error("IsPassing(70) = false, want true")
	}
}

func TestEngine_PartialScore(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 3, 0})

	res := e.Score()
	want := Result{Correct: 2, Total: 3, Percentage: 67}
	if res != want {
		t.Errorf("Score() = %+v, want %+v", res, want)
	}
	if e.IsPassing(DefaultPassThreshold) {
		t.Error("IsPassing(70) = true for 67%, want false")
	}
}

func TestEngine_NoneCorrect(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{1, 0, 0})

	res := e.Score()
	if res.Percentage != 0 || res.Correct != 0 {
		t.Errorf("Score() = %+v, want 0 correct 0%%", res)
	}
	if e.IsPassing(DefaultPassThreshold) {
		t.Error("IsPassing = true, want false")
	}
}

func TestEngine_ScoreIdempotent(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 1, 1})
	first := e.Score()
	for i := 0; i < 5; i++ {
		if got := e.Score(); got != first {
			t.Fatalf("Score() call %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestEngine_SelectOutOfRange(t *testing.T) {
	e := newTestEngine(t, nil)
	before := e.State()

	for _, opt := range []int{5, 4, -1} {
		err := e.SelectAnswer(opt)
		if !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("SelectAnswer(%d) error = %v, want ErrInvalidOperation", opt, err)
		}
	}

	after := e.State()
	if after.CurrentIndex != before.CurrentIndex || len(after.Answers) != 0 || after.Completed {
		t.Errorf("state changed after rejected selects: %+v", after)
	}
}

func TestEngine_AdvanceWithoutAnswer(t *testing.T) {
	e := newTestEngine(t, nil)
	err := e.Advance()
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("Advance() error = %v, want ErrInvalidOperation", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("Advance() error type = %T, want *OperationError", err)
	}
	if opErr.Op != "advance" {
		t.Errorf("Op = %q, want %q", opErr.Op, "advance")
	}
	if idx, _ := e.Current(); idx != 0 {
		t.Errorf("current index = %d, want 0", idx)
	}
}

func TestEngine_OverwriteSelection(t *testing.T) {
	e := newTestEngine(t, nil)
	if err := e.SelectAnswer(2); err != nil {
		t.Fatal(err)
	}
	if err := e.SelectAnswer(0); err != nil {
		t.Fatal(err)
	}
	sel, ok := e.Selected(0)
	if !ok || sel != 0 {
		t.Errorf("Selected(0) = %d, %v, want 0, true", sel, ok)
	}
}

func TestEngine_OperationsAfterCompletion(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 3, 1})

	if err := e.SelectAnswer(0); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("SelectAnswer after completion error = %v, want ErrInvalidOperation", err)
	}
	if err := e.Advance(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Advance after completion error = %v, want ErrInvalidOperation", err)
	}
	if got := e.Score().Correct; got != 3 {
		t.Errorf("Score().Correct = %d after rejected ops, want 3", got)
	}
}

func TestEngine_Retry(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 3, 1})
	e.Retry()

	s := e.State()
	if s.CurrentIndex != 0 || s.Completed || len(s.Answers) != 0 {
		t.Errorf("State after Retry = %+v, want fresh attempt", s)
	}
	if got := e.Score(); got != (Result{Correct: 0, Total: 3, Percentage: 0}) {
		t.Errorf("Score after Retry = %+v, want 0/3 0%%", got)
	}
}

func TestEngine_RetryMidway(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0})
	e.Retry()
	if idx, _ := e.Current(); idx != 0 {
		t.Errorf("current index = %d, want 0", idx)
	}
	if _, ok := e.Selected(0); ok {
		t.Error("answer for question 0 survived Retry")
	}
}

func TestEngine_Finish(t *testing.T) {
	var got []Result
	e := newTestEngine(t, func(r Result) { got = append(got, r) })

	if _, err := e.Finish(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Finish before completion error = %v, want ErrInvalidOperation", err)
	}
	if len(got) != 0 {
		t.Fatalf("callback invoked %d times before completion", len(got))
	}

	answerAll(t, e, []int{0, 3, 0})
	res, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("callback invoked %d times, want 1", len(got))
	}
	if got[0] != res {
		t.Errorf("callback result = %+v, want %+v", got[0], res)
	}
	if res.Percentage != 67 {
		t.Errorf("Percentage = %d, want 67", res.Percentage)
	}
}

func TestEngine_Subscribe(t *testing.T) {
	e := newTestEngine(t, nil)
	var states []State
	e.Subscribe(func(s State) { states = append(states, s) })

	_ = e.Advance() // rejected, must not publish
	if err := e.SelectAnswer(1); err != nil {
		t.Fatal(err)
	}
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	e.Retry()

	if len(states) != 3 {
		t.Fatalf("published %d states, want 3", len(states))
	}
	if states[0].Answers[0] != 1 {
		t.Errorf("first snapshot answer = %d, want 1", states[0].Answers[0])
	}
	if states[1].CurrentIndex != 1 {
		t.Errorf("second snapshot index = %d, want 1", states[1].CurrentIndex)
	}
	if states[2].CurrentIndex != 0 || len(states[2].Answers) != 0 {
		t.Errorf("retry snapshot = %+v, want fresh", states[2])
	}

	// Snapshots must not alias engine state.
	states[0].Answers[0] = 3
	if sel, _ := e.Selected(0); sel == 3 {
		t.Error("mutating snapshot changed engine answers")
	}
}

func TestEngine_ListenerMayCallEngine(t *testing.T) {
	e := newTestEngine(t, nil)
	var seen Result
	e.Subscribe(func(State) { seen = e.Score() })
	if err := e.SelectAnswer(0); err != nil {
		t.Fatal(err)
	}
	if seen.Correct != 1 {
		t.Errorf("listener saw Correct = %d, want 1", seen.Correct)
	}
}

func TestEngine_Review(t *testing.T) {
	e := newTestEngine(t, nil)
	answerAll(t, e, []int{0, 2})

	r := e.Review()
	if len(r) != 3 {
		t.Fatalf("len(Review) = %d, want 3", len(r))
	}
	if !r[0].Correct || !r[0].Answered {
		t.Errorf("review[0] = %+v, want answered correct", r[0])
	}
	if r[1].Correct || r[1].SelectedOption() != "boolean" {
		t.Errorf("review[1] = %+v, want answered incorrect with boolean", r[1])
	}
	if r[2].Answered || r[2].Selected != -1 || r[2].SelectedOption() != "" {
		t.Errorf("review[2] = %+v, want unanswered", r[2])
	}
}

func TestEngine_ConcurrentSelect(t *testing.T) {
	e := newTestEngine(t, nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(opt int) {
			defer wg.Done()
			_ = e.SelectAnswer(opt % 4)
			_ = e.Score()
		}(i)
	}
	wg.Wait()
	if _, ok := e.Selected(0); !ok {
		t.Error("no answer recorded after concurrent selects")
	}
}

func TestEngine_ListenersSeeLatestStateLast(t *testing.T) {
	e := newTestEngine(t, nil)
	var (
		mu   sync.Mutex
		last State
		seen int
	)
	e.Subscribe(func(s State) {
		mu.Lock()
		last = s
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(opt int) {
			defer wg.Done()
			_ = e.SelectAnswer(opt % 4)
		}(i)
	}
	wg.Wait()

	want, _ := e.Selected(0)
	if seen != 100 {
		t.Fatalf("delivered %d snapshots, want 100", seen)
	}
	if last.Answers[0] != want {
		t.Errorf("last delivered answer = %d, engine holds %d", last.Answers[0], want)
	}
}

func TestEngine_ZeroValueRejectsTransitions(t *testing.T) {
	var e Engine
	if err := e.SelectAnswer(0); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("SelectAnswer() error = %v, want ErrInvalidOperation", err)
	}
	if err := e.Advance(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Advance() error = %v, want ErrInvalidOperation", err)
	}
	if _, err := e.Finish(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Finish() error = %v, want ErrInvalidOperation", err)
	}
	if i, q := e.Current(); i != 0 || q.Prompt != "" {
		t.Errorf("Current() = %d, %+v", i, q)
	}
	if r := e.Score(); r.Total != 0 || r.Percentage != 0 {
		t.Errorf("Score() = %+v", r)
	}
}

func randomSet(r *rand.Rand) []Question {
	n := 1 + r.IntN(12)
	qs := make([]Question, n)
	for i := range qs {
		opts := 2 + r.IntN(5)
		options := make([]string, opts)
		for j := range options {
			options[j] = string(rune('A' + j))
		}
		qs[i] = Question{
			ID:           i + 1,
			Prompt:       "question",
			Options:      options,
			CorrectIndex: r.IntN(opts),
		}
	}
	return qs
}

func TestEngine_RandomizedProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for iter := 0; iter < 200; iter++ {
		qs := randomSet(r)
		set, err := NewQuestionSet(qs)
		if err != nil {
			t.Fatalf("iter %d: NewQuestionSet: %v", iter, err)
		}
		e, err := New(set, nil)
		if err != nil {
			t.Fatalf("iter %d: New: %v", iter, err)
		}

		wantCorrect := 0
		for i, q := range qs {
			if idx, _ := e.Current(); idx != i {
				t.Fatalf("iter %d: current = %d, want %d", iter, idx, i)
			}
			pick := r.IntN(len(q.Options))
			if pick == q.CorrectIndex {
				wantCorrect++
			}
			if err := e.SelectAnswer(pick); err != nil {
				t.Fatalf("iter %d: SelectAnswer: %v", iter, err)
			}
			if err := e.Advance(); err != nil {
				t.Fatalf("iter %d: Advance: %v", iter, err)
			}
		}

		if !e.Completed() {
			t.Fatalf("iter %d: not completed after %d advances", iter, len(qs))
		}
		res := e.Score()
		if res.Correct != wantCorrect || res.Total != len(qs) {
			t.Errorf("iter %d: Score() = %+v, want %d/%d", iter, res, wantCorrect, len(qs))
		}
		if res.Percentage < 0 || res.Percentage > 100 {
			t.Errorf("iter %d: Percentage = %d out of [0,100]", iter, res.Percentage)
		}
		if res.IsPassing(DefaultPassThreshold) != (res.Percentage >= 70) {
			t.Errorf("iter %d: IsPassing disagrees with percentage %d", iter, res.Percentage)
		}

		e.Retry()
		if got := e.Score(); got.Correct != 0 || got.Percentage != 0 {
			t.Errorf("iter %d: Score after Retry = %+v", iter, got)
		}
	}
}
