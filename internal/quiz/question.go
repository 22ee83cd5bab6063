package quiz

import (
	"fmt"
	"strings"
)

// MinOptions is the smallest number of options a question may offer.
const MinOptions = 2

// Question is a single multiple-choice question.
type Question struct {
	ID           int      `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// QuestionSet is an ordered, non-empty, immutable list of questions.
// The zero value is an empty set and is rejected by New.
type QuestionSet struct {
	questions []Question
}

// NewQuestionSet validates questions and returns an immutable set holding
// a private copy of them. Returns a *ConfigError describing every problem.
func NewQuestionSet(questions []Question) (QuestionSet, error) {
	if err := Validate(questions); err != nil {
		return QuestionSet{}, err
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.clone()
	}
	return QuestionSet{questions: out}, nil
}

// MustQuestionSet is like NewQuestionSet but panics on invalid input.
// Intended for compiled-in seed data.
func MustQuestionSet(questions []Question) QuestionSet {
	set, err := NewQuestionSet(questions)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of questions.
func (s QuestionSet) Len() int {
	return len(s.questions)
}

// Empty reports whether the set has no questions.
func (s QuestionSet) Empty() bool {
	return len(s.questions) == 0
}

// Question returns a copy of the question at index i.
func (s QuestionSet) Question(i int) Question {
	return s.questions[i].clone()
}

// Questions returns a copy of all questions in order.
func (s QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.clone()
	}
	return out
}

// Validate checks the shape invariants of a question list.
func Validate(questions []Question) error {
	if len(questions) == 0 {
		return &ConfigError{Problems: []string{"no questions"}}
	}

	var problems []string
	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		prefix := fmt.Sprintf("question %d (id %d)", i, q.ID)
		if seen[q.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate id", prefix))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Prompt) == "" {
			problems = append(problems, fmt.Sprintf("%s: prompt is empty", prefix))
		}
		if len(q.Options) < MinOptions {
			problems = append(problems, fmt.Sprintf("%s: needs at least %d options, got %d", prefix, MinOptions, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			problems = append(problems, fmt.Sprintf("%s: correct index %d out of range [0, %d)", prefix, q.CorrectIndex, len(q.Options)))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}
