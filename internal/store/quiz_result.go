package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by the database and the global
// sequence counter. Queries are built with ent's dialect-aware builder so
// placeholders and quoting match the backend.
type eventRepo struct {
	db     *sql.DB
	driver Driver
	seq    *sequenceCounter
}

var quizResultColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "course_id", "lesson_id",
	"correct", "total", "percentage", "pass_threshold", "answers", "duration_ms",
}

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizResultData) (int, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return 0, fmt.Errorf("encode answers: %w", err)
	}
	if data.Answers == nil {
		answers = []byte("{}")
	}

	ts := data.CompletedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	b := r.driver.builder()
	ins := b.Insert(tableQuizResults).
		Columns("sequence", "timestamp", "attempt_id", "course_id", "lesson_id",
			"correct", "total", "percentage", "pass_threshold", "answers", "duration_ms").
		Values(seqNum, ts.UnixMilli(), data.AttemptID, data.CourseID, data.LessonID,
			data.Correct, data.Total, data.Percentage, data.PassThreshold, string(answers), data.DurationMs)

	id, err := r.insert(ctx, ins)
	if err != nil {
		return 0, fmt.Errorf("save quiz result: %w", err)
	}
	return int(id), nil
}

func (r *eventRepo) QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error) {
	b := r.driver.builder()
	sel := b.Select(quizResultColumns...).From(b.Table(tableQuizResults))
	applyOpts(sel, opts)
	if opts.CourseID != "" {
		sel.Where(entsql.EQ("course_id", opts.CourseID))
	}
	if opts.LessonID != "" {
		sel.Where(entsql.EQ("lesson_id", opts.LessonID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var (
			res     QuizResult
			tsMs    int64
			answers string
		)
		if err := rows.Scan(&res.ID, &res.Sequence, &tsMs, &res.AttemptID, &res.CourseID, &res.LessonID,
			&res.Correct, &res.Total, &res.Percentage, &res.PassThreshold, &answers, &res.DurationMs); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		res.Timestamp = time.UnixMilli(tsMs)
		res.CompletedAt = res.Timestamp
		if err := json.Unmarshal([]byte(answers), &res.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of result %d: %w", res.ID, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	return out, nil
}

func (r *eventRepo) DeleteQuizResults(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, tableQuizResults)
}

// applyOpts adds the shared sequence/time filters, newest-first ordering
// and limit to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

// insert executes ins and returns the generated id.
func (r *eventRepo) insert(ctx context.Context, ins *entsql.InsertBuilder) (int64, error) {
	if r.driver == DriverPostgres {
		query, args := ins.Returning("id").Query()
		var id int64
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args := ins.Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *eventRepo) deleteAll(ctx context.Context, table string) (int64, error) {
	query, args := r.driver.builder().Delete(table).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return n, nil
}
