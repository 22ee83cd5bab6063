package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/quizdeck/internal/store"
)

// LoggingProvider appends an llm.request event for every call it forwards.
type LoggingProvider struct {
	inner Provider
	name  string
	repo  store.EventRepo
	warn  io.Writer
}

// WithLogging wraps p so each call is recorded in repo under provider name.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, repo: repo, warn: os.Stderr}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	event := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(started).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	switch {
	case resp != nil:
		event.Model = resp.Model
		event.InputTokens = resp.Usage.InputTokens
		event.OutputTokens = resp.Usage.OutputTokens
		event.ResponseBody = string(resp.Content)
	case err != nil:
		event.ResponseBody = rejectedOutput(err)
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}

	// A failed audit write never fails the generation.
	if werr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), event); werr != nil {
		fmt.Fprintf(l.warn, "warning: could not record llm request: %v\n", werr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// rejectedOutput recovers the raw model output carried by schema and
// truncation failures, so the event shows what the model actually said.
func rejectedOutput(err error) string {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return string(invalid.Content)
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return string(maxTok.Content)
	}
	return ""
}

// transcript renders req as the plain text stored in RequestBody.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
