package quiz

import "math"

// DefaultPassThreshold is the percentage a learner needs to pass a quiz.
const DefaultPassThreshold = 70

// Result is the score of an attempt. It is always derived from the answer
// map and never stored by the engine.
type Result struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Incorrect returns the number of questions not answered correctly,
// including unanswered ones.
func (r Result) Incorrect() int {
	return r.Total - r.Correct
}

// IsPassing reports whether the percentage meets threshold.
func (r Result) IsPassing(threshold int) bool {
	return r.Percentage >= threshold
}

// Grade scores answers against set. Unanswered questions count as incorrect.
func Grade(set QuestionSet, answers map[int]int) Result {
	total := set.Len()
	correct := 0
	for i, q := range set.questions {
		if sel, ok := answers[i]; ok && sel == q.CorrectIndex {
			correct++
		}
	}
	return Result{
		Correct:    correct,
		Total:      total,
		Percentage: Percent(correct, total),
	}
}

// Percent returns round(100 * n / total), or 0 when total is 0.
func Percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}

// QuestionReview describes how one question was answered.
type QuestionReview struct {
	Index    int
	Question Question
	Selected int // -1 when unanswered
	Answered bool
	Correct  bool
}

// SelectedOption returns the text of the chosen option, or "" when unanswered.
func (r QuestionReview) SelectedOption() string {
	if !r.Answered || r.Selected < 0 || r.Selected >= len(r.Question.Options) {
		return ""
	}
	return r.Question.Options[r.Selected]
}

// Review builds a per-question breakdown of answers against set.
func Review(set QuestionSet, answers map[int]int) []QuestionReview {
	out := make([]QuestionReview, set.Len())
	for i, q := range set.questions {
		sel, ok := answers[i]
		if !ok {
			sel = -1
		}
		out[i] = QuestionReview{
			Index:    i,
			Question: q.clone(),
			Selected: sel,
			Answered: ok,
			Correct:  ok && sel == q.CorrectIndex,
		}
	}
	return out
}
