package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/progress"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /courses?q=term
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses := s.cat.Search(r.URL.Query().Get("q"))
	out := make([]courseSummary, len(courses))
	for i, c := range courses {
		out[i] = toCourseSummary(c)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := s.cat.Course(chi.URLParam(r, "courseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCourseDetail(c))
}

type createAttemptRequest struct {
	CourseID string `json:"course_id"`
	LessonID string `json:"lesson_id"`
}

func (s *Server) handleCreateAttempt(w http.ResponseWriter, r *http.Request) {
	var req createAttemptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	course, err := s.cat.Course(req.CourseID)
	if err != nil {
		respondError(w, err)
		return
	}
	lesson, err := s.cat.Lesson(req.CourseID, req.LessonID)
	if err != nil {
		respondError(w, err)
		return
	}
	a, err := attempt.Start(course, lesson, attempt.WithThreshold(s.threshold), attempt.WithClock(s.now))
	if err != nil {
		respondError(w, err)
		return
	}
	id := s.attempts.Add(a)
	w.Header().Set("Location", "/attempts/"+id)
	respondJSON(w, http.StatusCreated, toAttemptView(id, a))
}

func (s *Server) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	s.withAttempt(w, r, func(*attempt.Attempt) error { return nil })
}

type selectRequest struct {
	Option *int `json:"option"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Option == nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "option is required"})
		return
	}
	s.withAttempt(w, r, func(a *attempt.Attempt) error {
		return a.Engine.SelectAnswer(*req.Option)
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.withAttempt(w, r, func(a *attempt.Attempt) error {
		return a.Engine.Advance()
	})
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.withAttempt(w, r, func(a *attempt.Attempt) error {
		a.Retry()
		return nil
	})
}

// POST /attempts/{id}/finish grades, persists and removes the attempt.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "attemptID")
	var data store.QuizResultData
	err := s.attempts.Take(id, func(a *attempt.Attempt) error {
		var err error
		if s.repo == nil {
			data, err = a.Finish()
		} else {
			data, err = a.Save(r.Context(), s.repo)
		}
		return err
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fromResultData(data))
}

func (s *Server) handleDeleteAttempt(w http.ResponseWriter, r *http.Request) {
	if !s.attempts.Remove(chi.URLParam(r, "attemptID")) {
		respondError(w, ErrAttemptNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var results []store.QuizResult
	if s.repo != nil {
		var err error
		results, err = s.repo.QueryQuizResults(r.Context(), store.QueryOpts{})
		if err != nil {
			respondError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, toProgressView(progress.Compute(s.cat, results, s.now())))
}

// GET /results?limit=N&course_id=...&lesson_id=...
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	out := []resultView{}
	if s.repo == nil {
		respondJSON(w, http.StatusOK, out)
		return
	}
	q := r.URL.Query()
	limit := 50
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	results, err := s.repo.QueryQuizResults(r.Context(), store.QueryOpts{
		Limit:    limit,
		CourseID: q.Get("course_id"),
		LessonID: q.Get("lesson_id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	for _, res := range results {
		out = append(out, toResultView(res))
	}
	respondJSON(w, http.StatusOK, out)
}

// withAttempt runs op on the addressed attempt and responds with its view.
func (s *Server) withAttempt(w http.ResponseWriter, r *http.Request, op func(*attempt.Attempt) error) {
	id := chi.URLParam(r, "attemptID")
	var view attemptView
	err := s.attempts.With(id, func(a *attempt.Attempt) error {
		if err := op(a); err != nil {
			return err
		}
		view = toAttemptView(id, a)
		return nil
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, catalog.ErrCourseNotFound),
		errors.Is(err, catalog.ErrLessonNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrInvalidOperation):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrConfiguration),
		errors.Is(err, catalog.ErrNoQuiz):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), errorBody{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}
