// Package catalog holds the courses, lessons and lesson quizzes a learner
// can browse.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/quizdeck/internal/quiz"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNoQuiz         = errors.New("lesson has no quiz")
)

// Catalog is a validated, read-only set of courses.
type Catalog struct {
	courses []Course
	byID    map[string]int
}

// New validates courses and builds a catalog over a private copy.
func New(courses []Course) (*Catalog, error) {
	if err := validateCourses(courses); err != nil {
		return nil, err
	}
	c := &Catalog{
		courses: make([]Course, len(courses)),
		byID:    make(map[string]int, len(courses)),
	}
	for i, course := range courses {
		c.courses[i] = course.clone()
		c.byID[course.ID] = i
	}
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. Panics if the seed is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(seedCourses())
		if err != nil {
			panic(fmt.Sprintf("built-in catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Courses returns all courses in catalog order.
func (c *Catalog) Courses() []Course {
	out := make([]Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = course.clone()
	}
	return out
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Course returns a course by ID.
func (c *Catalog) Course(id string) (Course, error) {
	i, ok := c.byID[id]
	if !ok {
		return Course{}, fmt.Errorf("%w: %q", ErrCourseNotFound, id)
	}
	return c.courses[i].clone(), nil
}

// Lesson returns a lesson of a course.
func (c *Catalog) Lesson(courseID, lessonID string) (Lesson, error) {
	course, err := c.Course(courseID)
	if err != nil {
		return Lesson{}, err
	}
	idx := course.LessonIndex(lessonID)
	if idx < 0 {
		return Lesson{}, fmt.Errorf("%w: %q in course %q", ErrLessonNotFound, lessonID, courseID)
	}
	return course.Lessons[idx], nil
}

// QuestionSet returns the quiz of a lesson as a fresh question set.
func (c *Catalog) QuestionSet(courseID, lessonID string) (quiz.QuestionSet, error) {
	lesson, err := c.Lesson(courseID, lessonID)
	if err != nil {
		return quiz.QuestionSet{}, err
	}
	return LessonQuestionSet(lesson)
}

// LessonQuestionSet builds the question set of lesson.
func LessonQuestionSet(lesson Lesson) (quiz.QuestionSet, error) {
	if !lesson.HasQuiz() {
		return quiz.QuestionSet{}, fmt.Errorf("%w: %q", ErrNoQuiz, lesson.ID)
	}
	return quiz.NewQuestionSet(lesson.Questions)
}

// Search returns courses whose title or instructor contains term,
// case-insensitively. An empty term matches everything.
func (c *Catalog) Search(term string) []Course {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []Course
	for _, course := range c.courses {
		if term == "" ||
			strings.Contains(strings.ToLower(course.Title), term) ||
			strings.Contains(strings.ToLower(course.Instructor), term) {
			out = append(out, course.clone())
		}
	}
	return out
}

// Categories returns the distinct course categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, course := range c.courses {
		if !seen[course.Category] {
			seen[course.Category] = true
			out = append(out, course.Category)
		}
	}
	slices.Sort(out)
	return out
}

// LessonCount returns the total number of lessons across all courses.
func (c *Catalog) LessonCount() int {
	n := 0
	for _, course := range c.courses {
		n += len(course.Lessons)
	}
	return n
}
