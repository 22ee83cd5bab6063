package catalog

import (
	"github.com/abhisek/quizdeck/internal/quiz"
)

// Level is the difficulty band of a course.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// AllLevels returns all levels in display order.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Course is a titled, ordered list of lessons.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Instructor  string   `json:"instructor"`
	Category    string   `json:"category"`
	Level       Level    `json:"level,omitempty"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson is a single video lesson with an optional quiz.
type Lesson struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Duration    string          `json:"duration"`
	VideoURL    string          `json:"video_url,omitempty"`
	Description string          `json:"description,omitempty"`
	Questions   []quiz.Question `json:"questions,omitempty"`
}

// HasQuiz reports whether the lesson ends with a quiz.
func (l Lesson) HasQuiz() bool {
	return len(l.Questions) > 0
}

// QuizLessons returns the lessons of c that carry a quiz.
func (c Course) QuizLessons() []Lesson {
	var out []Lesson
	for _, l := range c.Lessons {
		if l.HasQuiz() {
			out = append(out, l)
		}
	}
	return out
}

// LessonIndex returns the position of lessonID in c, or -1.
func (c Course) LessonIndex(lessonID string) int {
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}

func (c Course) clone() Course {
	lessons := make([]Lesson, len(c.Lessons))
	for i, l := range c.Lessons {
		qs := make([]quiz.Question, len(l.Questions))
		for j, q := range l.Questions {
			q.Options = append([]string(nil), q.Options...)
			qs[j] = q
		}
		if len(qs) == 0 {
			qs = nil
		}
		l.Questions = qs
		lessons[i] = l
	}
	c.Lessons = lessons
	return c
}
