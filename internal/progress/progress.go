// Package progress aggregates stored quiz results into per-lesson,
// per-course and learner-level progress.
package progress

import (
	"math"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/store"
)

// LessonProgress summarises the attempts at one lesson quiz.
type LessonProgress struct {
	CourseID    string
	LessonID    string
	Title       string
	HasQuiz     bool
	Attempts    int
	BestScore   int
	LastScore   int
	Completed   bool // passed at least once
	LastAttempt time.Time
}

// Started reports whether the lesson quiz has been attempted.
func (l LessonProgress) Started() bool {
	return l.Attempts > 0
}

// CourseProgress summarises a course.
type CourseProgress struct {
	Course    catalog.Course
	Lessons   []LessonProgress
	Completed int // completed quiz lessons
	Total     int // lessons carrying a quiz
	Percent   int
}

// Status is the coarse state of a course.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusCompleted
)

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Status derives the course state from its percentage.
func (c CourseProgress) Status() Status {
	switch {
	case c.Total > 0 && c.Percent >= 100:
		return StatusCompleted
	case c.Percent > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// Lesson returns the progress of lessonID, if the course has it.
func (c CourseProgress) Lesson(lessonID string) (LessonProgress, bool) {
	for _, l := range c.Lessons {
		if l.LessonID == lessonID {
			return l, true
		}
	}
	return LessonProgress{}, false
}

// Overview is the dashboard summary across all courses.
type Overview struct {
	Courses    []CourseProgress
	Overall    int // mean course percentage, rounded
	Completed  int
	InProgress int
}

// Course returns the progress of courseID, if present.
func (o Overview) Course(courseID string) (CourseProgress, bool) {
	for _, c := range o.Courses {
		if c.Course.ID == courseID {
			return c, true
		}
	}
	return CourseProgress{}, false
}

// Stats are learner-level totals.
type Stats struct {
	Attempts         int
	Passed           int
	CompletedLessons int
	AverageScore     int // mean percentage over all attempts, rounded
	UniqueCourses    int // courses with at least one attempt
	Streak           int // consecutive days with an attempt, ending today or yesterday
	LastActivity     time.Time
}

// Report bundles the overview and stats computed from one result set.
type Report struct {
	Overview Overview
	Stats    Stats
}

type lessonKey struct{ course, lesson string }

// Compute aggregates results against cat. now anchors the day streak.
// Results for lessons missing from cat count toward Stats only.
func Compute(cat *catalog.Catalog, results []store.QuizResult, now time.Time) Report {
	byLesson := make(map[lessonKey]*LessonProgress)
	for _, r := range results {
		k := lessonKey{r.CourseID, r.LessonID}
		lp, ok := byLesson[k]
		if !ok {
			lp = &LessonProgress{CourseID: r.CourseID, LessonID: r.LessonID}
			byLesson[k] = lp
		}
		lp.Attempts++
		if r.Percentage > lp.BestScore {
			lp.BestScore = r.Percentage
		}
		if r.Passed() {
			lp.Completed = true
		}
		if !r.Timestamp.Before(lp.LastAttempt) {
			lp.LastAttempt = r.Timestamp
			lp.LastScore = r.Percentage
		}
	}

	var ov Overview
	sum := 0
	for _, course := range cat.Courses() {
		cp := CourseProgress{Course: course}
		for _, lesson := range course.Lessons {
			lp := LessonProgress{CourseID: course.ID, LessonID: lesson.ID}
			if got, ok := byLesson[lessonKey{course.ID, lesson.ID}]; ok {
				lp = *got
			}
			lp.Title = lesson.Title
			lp.HasQuiz = lesson.HasQuiz()
			if lp.HasQuiz {
				cp.Total++
				if lp.Completed {
					cp.Completed++
				}
			}
			cp.Lessons = append(cp.Lessons, lp)
		}
		cp.Percent = roundedPercent(cp.Completed, cp.Total)
		sum += cp.Percent

		switch cp.Status() {
		case StatusCompleted:
			ov.Completed++
		case StatusInProgress:
			ov.InProgress++
		}
		ov.Courses = append(ov.Courses, cp)
	}
	if len(ov.Courses) > 0 {
		ov.Overall = roundedMean(sum, len(ov.Courses))
	}

	return Report{
		Overview: ov,
		Stats:    computeStats(results, byLesson, now),
	}
}

func computeStats(results []store.QuizResult, byLesson map[lessonKey]*LessonProgress, now time.Time) Stats {
	st := Stats{Attempts: len(results)}
	if len(results) == 0 {
		return st
	}

	courses := make(map[string]bool)
	sum := 0
	for _, r := range results {
		sum += r.Percentage
		courses[r.CourseID] = true
		if r.Passed() {
			st.Passed++
		}
		if r.Timestamp.After(st.LastActivity) {
			st.LastActivity = r.Timestamp
		}
	}
	for _, lp := range byLesson {
		if lp.Completed {
			st.CompletedLessons++
		}
	}
	st.AverageScore = roundedMean(sum, len(results))
	st.UniqueCourses = len(courses)
	st.Streak = Streak(results, now)
	return st
}

// Streak counts consecutive calendar days (in now's location) with at
// least one attempt. The run must end today or yesterday.
func Streak(results []store.QuizResult, now time.Time) int {
	loc := now.Location()
	days := make(map[time.Time]bool, len(results))
	for _, r := range results {
		days[dayOf(r.Timestamp.In(loc))] = true
	}

	day := dayOf(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
		if !days[day] {
			return 0
		}
	}

	n := 0
	for days[day] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func roundedPercent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}

func roundedMean(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
