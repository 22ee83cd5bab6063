package quiz

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
		wantErr   string
	}{
		{
			name:    "empty",
			wantErr: "no questions",
		},
		{
			name:      "one option",
			questions: []Question{{ID: 1, Prompt: "p", Options: []string{"a"}, CorrectIndex: 0}},
			wantErr:   "at least 2 options",
		},
		{
			name:      "correct index out of range",
			questions: []Question{{ID: 1, Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 2}},
			wantErr:   "correct index 2 out of range",
		},
		{
			name:      "negative correct index",
			questions: []Question{{ID: 1, Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: -1}},
			wantErr:   "out of range",
		},
		{
			name:      "blank prompt",
			questions: []Question{{ID: 1, Prompt: "  ", Options: []string{"a", "b"}}},
			wantErr:   "prompt is empty",
		},
		{
			name: "duplicate id",
			questions: []Question{
				{ID: 1, Prompt: "p", Options: []string{"a", "b"}},
				{ID: 1, Prompt: "q", Options: []string{"a", "b"}},
			},
			wantErr: "duplicate id",
		},
		{
			name:      "valid",
			questions: jsQuestions(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.questions)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("error %v does not wrap ErrConfiguration", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	err := Validate([]Question{
		{ID: 1, Prompt: "", Options: []string{"a"}, CorrectIndex: 3},
	})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if len(cfgErr.Problems) != 3 {
		t.Errorf("len(Problems) = %d, want 3: %v", len(cfgErr.Problems), cfgErr.Problems)
	}
}

func TestQuestionSet_Immutable(t *testing.T) {
	qs := jsQuestions()
	set, err := NewQuestionSet(qs)
	if err != nil {
		t.Fatal(err)
	}

	qs[0].Prompt = "changed"
	qs[0].Options[0] = "changed"
	if got := set.Question(0); got.Prompt == "changed" || got.Options[0] == "changed" {
		t.Error("mutating the input slice changed the set")
	}

	out := set.Questions()
	out[1].Options[3] = "changed"
	if got := set.Question(1).CorrectOption(); got != "character" {
		t.Errorf("CorrectOption() = %q, want %q", got, "character")
	}
}

func TestGrade_Rounding(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13}, // 12.5 rounds up
		{5, 8, 63}, // 62.5 rounds up
		{0, 5, 0},
		{7, 7, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
	if got := Percent(3, 0); got != 0 {
		t.Errorf("Percent(3, 0) = %d, want 0", got)
	}
}

func TestGrade_UnansweredIsIncorrect(t *testing.T) {
	set := MustQuestionSet(jsQuestions())
	res := Grade(set, map[int]int{0: 0})
	if res.Correct != 1 || res.Incorrect() != 2 {
		t.Errorf("Grade = %+v, want 1 correct 2 incorrect", res)
	}
}
