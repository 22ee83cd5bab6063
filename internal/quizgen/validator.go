package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Validator checks a generated batch of questions.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g. "structural".
	Name() string

	// Validate returns nil if the batch passes.
	Validate(qs []quiz.Question, input GenerateInput, want int) *ValidationError
}

// ValidationError describes why a batch failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// CountValidator checks the batch has the requested number of questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(qs []quiz.Question, _ GenerateInput, want int) *ValidationError {
	if len(qs) != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", want, len(qs)),
			Retryable: true,
		}
	}
	return nil
}

// StructuralValidator checks field presence, lengths and option shape.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(qs []quiz.Question, _ GenerateInput, _ int) *ValidationError {
	fail := func(i int, format string, args ...any) *ValidationError {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question %d: %s", i+1, fmt.Sprintf(format, args...)),
			Retryable: true,
		}
	}

	for i, q := range qs {
		switch {
		case strings.TrimSpace(q.Prompt) == "":
			return fail(i, "prompt is empty")
		case len(q.Prompt) > 500:
			return fail(i, "prompt exceeds 500 characters")
		case len(q.Options) < quiz.MinOptions:
			return fail(i, "needs at least %d options", quiz.MinOptions)
		case len(q.Options) > 6:
			return fail(i, "has %d options, at most 6 allowed", len(q.Options))
		case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
			return fail(i, "correct_index %d out of range", q.CorrectIndex)
		case len(q.Explanation) > 1000:
			return fail(i, "explanation exceeds 1000 characters")
		}

		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			key := normalize(opt)
			if key == "" {
				return fail(i, "has an empty option")
			}
			if seen[key] {
				return fail(i, "has duplicate option %q", opt)
			}
			seen[key] = true
		}
	}
	return nil
}

// DuplicateValidator rejects repeated prompts within the batch or against
// the learner's prior questions.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(qs []quiz.Question, input GenerateInput, _ int) *ValidationError {
	seen := make(map[string]bool, len(qs)+len(input.PriorQuestions))
	for _, p := range input.PriorQuestions {
		seen[normalize(p)] = true
	}
	for _, l := range input.Lesson.Questions {
		seen[normalize(l.Prompt)] = true
	}
	for i, q := range qs {
		key := normalize(q.Prompt)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats an earlier question: %q", i+1, q.Prompt),
				Retryable: true,
			}
		}
		seen[key] = true
	}
	return nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
