package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	CourseID string    // quiz results only
	LessonID string    // quiz results only
	Purpose  string    // LLM events only
}

// QuizResultData captures a finished quiz attempt.
type QuizResultData struct {
	AttemptID     string
	CourseID      string
	LessonID      string
	Correct       int
	Total         int
	Percentage    int
	PassThreshold int
	Answers       map[int]int // question index -> selected option
	DurationMs    int64
	CompletedAt   time.Time // zero means now
}

// QuizResult is a stored quiz attempt.
type QuizResult struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizResultData
}

// Passed reports whether the attempt met its pass threshold.
func (r QuizResult) Passed() bool {
	return r.Percentage >= r.PassThreshold
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to stored events.
type EventRepo interface {
	// AppendQuizResult records a finished quiz attempt and returns its ID.
	AppendQuizResult(ctx context.Context, data QuizResultData) (int, error)

	// QueryQuizResults returns quiz results, newest first.
	QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error)

	// DeleteQuizResults removes every stored quiz result.
	DeleteQuizResults(ctx context.Context) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// DeleteLLMEvents removes every stored LLM event.
	DeleteLLMEvents(ctx context.Context) (int64, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
