package api

import (
	"time"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

type courseSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Instructor  string        `json:"instructor"`
	Category    string        `json:"category"`
	Level       catalog.Level `json:"level,omitempty"`
	Description string        `json:"description,omitempty"`
	Lessons     int           `json:"lessons"`
}

type courseDetail struct {
	courseSummary
	LessonList []lessonSummary `json:"lesson_list"`
}

type lessonSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"video_url,omitempty"`
	Description string `json:"description,omitempty"`
	Questions   int    `json:"questions"`
}

func toCourseSummary(c catalog.Course) courseSummary {
	return courseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Instructor:  c.Instructor,
		Category:    c.Category,
		Level:       c.Level,
		Description: c.Description,
		Lessons:     len(c.Lessons),
	}
}

func toCourseDetail(c catalog.Course) courseDetail {
	d := courseDetail{courseSummary: toCourseSummary(c)}
	for _, l := range c.Lessons {
		d.LessonList = append(d.LessonList, lessonSummary{
			ID:          l.ID,
			Title:       l.Title,
			Duration:    l.Duration,
			VideoURL:    l.VideoURL,
			Description: l.Description,
			Questions:   len(l.Questions),
		})
	}
	return d
}

// questionView omits the correct index and explanation.
type questionView struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type reviewView struct {
	Index        int    `json:"index"`
	Prompt       string `json:"prompt"`
	Selected     int    `json:"selected"`
	CorrectIndex int    `json:"correct_index"`
	Correct      bool   `json:"correct"`
	Explanation  string `json:"explanation,omitempty"`
}

type scoreView struct {
	Correct    int  `json:"correct"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Threshold  int  `json:"pass_threshold"`
	Passed     bool `json:"passed"`
}

type attemptView struct {
	ID              string        `json:"id"`
	CourseID        string        `json:"course_id"`
	LessonID        string        `json:"lesson_id"`
	CurrentIndex    int           `json:"current_index"`
	Total           int           `json:"total"`
	Answers         map[int]int   `json:"answers"`
	Completed       bool          `json:"completed"`
	ProgressPercent int           `json:"progress_percent"`
	Question        *questionView `json:"question,omitempty"`
	Score           *scoreView    `json:"score,omitempty"`
	Review          []reviewView  `json:"review,omitempty"`
}

func toAttemptView(id string, a *attempt.Attempt) attemptView {
	e := a.Engine
	st := e.State()
	v := attemptView{
		ID:              id,
		CourseID:        a.Course.ID,
		LessonID:        a.Lesson.ID,
		CurrentIndex:    st.CurrentIndex,
		Total:           st.Total,
		Answers:         st.Answers,
		Completed:       st.Completed,
		ProgressPercent: e.ProgressPercent(),
	}
	if !st.Completed {
		_, q := e.Current()
		v.Question = &questionView{ID: q.ID, Prompt: q.Prompt, Options: q.Options}
		return v
	}

	sc := toScoreView(e.Score(), a.Threshold)
	v.Score = &sc
	for _, r := range e.Review() {
		v.Review = append(v.Review, reviewView{
			Index:        r.Index,
			Prompt:       r.Question.Prompt,
			Selected:     r.Selected,
			CorrectIndex: r.Question.CorrectIndex,
			Correct:      r.Correct,
			Explanation:  r.Question.Explanation,
		})
	}
	return v
}

func toScoreView(r quiz.Result, threshold int) scoreView {
	return scoreView{
		Correct:    r.Correct,
		Total:      r.Total,
		Percentage: r.Percentage,
		Threshold:  threshold,
		Passed:     r.IsPassing(threshold),
	}
}

type resultView struct {
	ID          int       `json:"id,omitempty"`
	AttemptID   string    `json:"attempt_id"`
	CourseID    string    `json:"course_id"`
	LessonID    string    `json:"lesson_id"`
	Score       scoreView `json:"score"`
	DurationMs  int64     `json:"duration_ms"`
	CompletedAt time.Time `json:"completed_at"`
}

func toResultView(r store.QuizResult) resultView {
	v := fromResultData(r.QuizResultData)
	v.ID = r.ID
	v.CompletedAt = r.Timestamp
	return v
}

func fromResultData(d store.QuizResultData) resultView {
	return resultView{
		AttemptID: d.AttemptID,
		CourseID:  d.CourseID,
		LessonID:  d.LessonID,
		Score: toScoreView(quiz.Result{
			Correct:    d.Correct,
			Total:      d.Total,
			Percentage: d.Percentage,
		}, d.PassThreshold),
		DurationMs:  d.DurationMs,
		CompletedAt: d.CompletedAt,
	}
}

type lessonProgressView struct {
	LessonID  string `json:"lesson_id"`
	Title     string `json:"title"`
	HasQuiz   bool   `json:"has_quiz"`
	Attempts  int    `json:"attempts"`
	BestScore int    `json:"best_score"`
	Completed bool   `json:"completed"`
}

type courseProgressView struct {
	CourseID  string               `json:"course_id"`
	Title     string               `json:"title"`
	Completed int                  `json:"completed"`
	Total     int                  `json:"total"`
	Percent   int                  `json:"percent"`
	Status    string               `json:"status"`
	Lessons   []lessonProgressView `json:"lessons"`
}

type statsView struct {
	Attempts         int        `json:"attempts"`
	Passed           int        `json:"passed"`
	CompletedLessons int        `json:"completed_lessons"`
	AverageScore     int        `json:"average_score"`
	UniqueCourses    int        `json:"unique_courses"`
	Streak           int        `json:"streak"`
	LastActivity     *time.Time `json:"last_activity,omitempty"`
}

type progressView struct {
	Overall    int                  `json:"overall"`
	Completed  int                  `json:"completed"`
	InProgress int                  `json:"in_progress"`
	Courses    []courseProgressView `json:"courses"`
	Stats      statsView            `json:"stats"`
}

func toProgressView(rep progress.Report) progressView {
	v := progressView{
		Overall:    rep.Overview.Overall,
		Completed:  rep.Overview.Completed,
		InProgress: rep.Overview.InProgress,
		Stats: statsView{
			Attempts:         rep.Stats.Attempts,
			Passed:           rep.Stats.Passed,
			CompletedLessons: rep.Stats.CompletedLessons,
			AverageScore:     rep.Stats.AverageScore,
			UniqueCourses:    rep.Stats.UniqueCourses,
			Streak:           rep.Stats.Streak,
		},
	}
	if !rep.Stats.LastActivity.IsZero() {
		t := rep.Stats.LastActivity
		v.Stats.LastActivity = &t
	}
	for _, cp := range rep.Overview.Courses {
		cv := courseProgressView{
			CourseID:  cp.Course.ID,
			Title:     cp.Course.Title,
			Completed: cp.Completed,
			Total:     cp.Total,
			Percent:   cp.Percent,
			Status:    cp.Status().Label(),
		}
		for _, lp := range cp.Lessons {
			cv.Lessons = append(cv.Lessons, lessonProgressView{
				LessonID:  lp.LessonID,
				Title:     lp.Title,
				HasQuiz:   lp.HasQuiz,
				Attempts:  lp.Attempts,
				BestScore: lp.BestScore,
				Completed: lp.Completed,
			})
		}
		v.Courses = append(v.Courses, cv)
	}
	return v
}
