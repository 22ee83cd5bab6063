package store

import (
	"database/sql"
	"fmt"
)

const (
	tableQuizResults = "quiz_results"
	tableLLMEvents   = "llm_request_events"
)

// Timestamps are stored as unix milliseconds and booleans as 0/1 so the
// same queries run unchanged on both backends.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		attempt_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percentage INTEGER NOT NULL,
		pass_threshold INTEGER NOT NULL,
		answers TEXT NOT NULL DEFAULT '{}',
		duration_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_results_lesson ON quiz_results (course_id, lesson_id)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL UNIQUE,
		timestamp BIGINT NOT NULL,
		attempt_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		total INTEGER NOT NULL,
		percentage INTEGER NOT NULL,
		pass_threshold INTEGER NOT NULL,
		answers TEXT NOT NULL DEFAULT '{}',
		duration_ms BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_results_lesson ON quiz_results (course_id, lesson_id)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id BIGSERIAL PRIMARY KEY,
		sequence BIGINT NOT NULL UNIQUE,
		timestamp BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(db *sql.DB, driver Driver) error {
	stmts := sqliteSchema
	if driver == DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
