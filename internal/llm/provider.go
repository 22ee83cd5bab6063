// Package llm talks to hosted language models on behalf of the question
// generator. Every vendor SDK is adapted to the same Provider contract and
// decorated with timeout, retry and event logging by NewProvider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON that has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the vendor model identifier requests are sent to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the vendor into structured output mode. Nil means
	// free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation sent with a Request.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who authored a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document, e.g. "lesson-quiz".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the outcome of a successful Generate call.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token accounting reported by the vendor.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is what a vendor adapter extracts from its SDK response.
type completion struct {
	text      string
	usage     Usage
	model     string
	truncated bool
}

type completeFunc func(context.Context, Request) (completion, error)

// generate runs one vendor call and settles its output.
func generate(ctx context.Context, req Request, complete completeFunc) (*Response, error) {
	c, err := complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return settle(req, c)
}

// settle enforces the request schema on a completion. Truncated structured
// output is reported as ErrMaxTokensExceeded since it can never validate.
func settle(req Request, c completion) (*Response, error) {
	content := json.RawMessage(unfence(c.text))
	if req.Schema != nil {
		if c.truncated {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if len(content) == 0 {
			return nil, &ErrInvalidResponse{Err: errors.New("empty completion")}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	stop := StopEnd
	if c.truncated {
		stop = StopMaxTokens
	}
	return &Response{Content: content, Usage: c.usage, Model: c.model, StopReason: stop}, nil
}

// unfence strips a surrounding markdown code fence, which some models emit
// even in JSON mode.
func unfence(text string) []byte {
	b := bytes.TrimSpace([]byte(text))
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if nl := bytes.IndexByte(b, '\n'); nl >= 0 {
		b = b[nl+1:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}
