package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice quiz questions for an online course.

Rules:
- Each question checks one idea taught in the given lesson.
- Every question has exactly one correct option. Distractors should reflect common misconceptions, not random values.
- Keep prompts short and self-contained. Do not refer to "the video" or "the lesson above".
- Options must be distinct. Do not use "all of the above" or "none of the above".
- Vary the position of the correct option across questions.
- The explanation says briefly why the correct option is right.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, count int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Course: %s\n", input.Course.Title)
	if input.Course.Level != "" {
		fmt.Fprintf(&b, "Level: %s\n", input.Course.Level)
	}
	if input.Course.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", input.Course.Category)
	}
	fmt.Fprintf(&b, "Lesson: %s\n", input.Lesson.Title)
	if input.Lesson.Description != "" {
		fmt.Fprintf(&b, "Lesson summary: %s\n", input.Lesson.Description)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "Options per question: %d\n", cfg.OptionsPerQuestion)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// retryMessage tells the model why its previous answer was rejected.
func retryMessage(verr *ValidationError) string {
	return fmt.Sprintf("Your previous answer was rejected: %s. Generate the full set again.", verr.Message)
}
