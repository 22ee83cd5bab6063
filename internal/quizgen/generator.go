// Package quizgen generates lesson quizzes with an LLM provider.
package quizgen

import (
	"context"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// Generator produces multiple-choice questions for a lesson.
type Generator interface {
	// Generate returns Count validated questions with IDs 1..Count.
	// All configured validators run before returning.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// GenerateInput is the lesson context sent to the generator.
type GenerateInput struct {
	Course catalog.Course
	Lesson catalog.Lesson

	// Count is the number of questions wanted. Zero uses Config.DefaultCount.
	Count int

	// PriorQuestions are prompts the learner has already seen; the
	// generator is asked not to repeat them.
	PriorQuestions []string
}
