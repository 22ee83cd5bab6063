package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	assert.NotNil(t, s.DB())
	assert.Equal(t, DriverSQLite, s.Driver())
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{"", DriverSQLite, false},
		{"sqlite", DriverSQLite, false},
		{"SQLite3", DriverSQLite, false},
		{"postgres", DriverPostgres, false},
		{"pgx", DriverPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDriver(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizdeck.db")
	ctx := context.Background()

	s, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	first, err := s.seq.Next(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(DriverSQLite, path)
	require.NoError(t, err)
	defer s.Close()
	second, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestQuizResult_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	when := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := repo.AppendQuizResult(ctx, QuizResultData{
		AttemptID:     "a-1",
		CourseID:      "javascript-fundamentals",
		LessonID:      "js-variables",
		Correct:       2,
		Total:         3,
		Percentage:    67,
		PassThreshold: 70,
		Answers:       map[int]int{0: 0, 1: 3, 2: 0},
		DurationMs:    4200,
		CompletedAt:   when,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	results, err := repo.QueryQuizResults(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "a-1", r.AttemptID)
	assert.Equal(t, 67, r.Percentage)
	assert.False(t, r.Passed())
	assert.Equal(t, map[int]int{0: 0, 1: 3, 2: 0}, r.Answers)
	assert.Equal(t, int64(4200), r.DurationMs)
	assert.True(t, r.Timestamp.Equal(when), "timestamp = %v, want %v", r.Timestamp, when)
}

func TestQuizResult_Filters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []struct{ course, lesson string }{
		{"js", "vars"},
		{"js", "funcs"},
		{"react", "hooks"},
		{"js", "vars"},
	}
	for i, sd := range seed {
		_, err := repo.AppendQuizResult(ctx, QuizResultData{
			AttemptID: fmt.Sprintf("a-%d", i), CourseID: sd.course, LessonID: sd.lesson,
			Correct: i, Total: 3, Percentage: i * 33, PassThreshold: 70,
			CompletedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string // attempt ids, newest first
	}{
		{"all", QueryOpts{}, []string{"a-3", "a-2", "a-1", "a-0"}},
		{"limit", QueryOpts{Limit: 2}, []string{"a-3", "a-2"}},
		{"course", QueryOpts{CourseID: "js"}, []string{"a-3", "a-1", "a-0"}},
		{"lesson", QueryOpts{CourseID: "js", LessonID: "vars"}, []string{"a-3", "a-0"}},
		{"from", QueryOpts{From: base.Add(48 * time.Hour)}, []string{"a-3", "a-2"}},
		{"to", QueryOpts{To: base.Add(24 * time.Hour)}, []string{"a-1", "a-0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.QueryQuizResults(ctx, tt.opts)
			require.NoError(t, err)
			var got []string
			for _, r := range results {
				got = append(got, r.AttemptID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuizResult_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.AppendQuizResult(ctx, QuizResultData{AttemptID: "x", CourseID: "c", LessonID: "l", Total: 1})
		require.NoError(t, err)
	}
	n, err := repo.DeleteQuizResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	results, err := repo.QueryQuizResults(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m-1", Purpose: "quiz-gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"questions":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m-1", Purpose: "explain",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 100, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "explain", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.True(t, events[1].Success)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"questions":[]}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "explain", byPurpose[0].Purpose)
	assert.Equal(t, 1, byPurpose[0].Calls)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 110, byModel[0].InputTokens)
	assert.Equal(t, int64(150), byModel[0].AvgLatencyMs)
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_, err := repo.AppendQuizResult(ctx, QuizResultData{AttemptID: "a", CourseID: "c", LessonID: "l", Total: 1})
	require.NoError(t, err)
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m"}))

	results, err := repo.QueryQuizResults(ctx, QueryOpts{})
	require.NoError(t, err)
	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Less(t, results[0].Sequence, events[0].Sequence)
}

func TestDefaultDBPath_Env(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sub", "x.db")
	t.Setenv("QUIZDECK_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quizdeck", "quizdeck.db"), got)
}
