package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

// vendorStub serves a fixed status and JSON body and records the last
// decoded request body.
func vendorStub(t *testing.T, status int, header http.Header, body any) (*httptest.Server, *map[string]any) {
	t.Helper()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func quizRequest() Request {
	return Request{
		System:    "You write multiple-choice questions for a programming course.",
		Messages:  []Message{{Role: RoleUser, Content: "Lesson: Variables and Data Types. Write 1 question."}},
		Schema:    quizSchema(),
		MaxTokens: 512,
	}
}

func anthropicStub(t *testing.T, status int, header http.Header, body any) (*AnthropicProvider, *map[string]any) {
	t.Helper()
	srv, got := vendorStub(t, status, header, body)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p, got
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_quiz",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 180, "output_tokens": 60},
	}
}

func anthropicFailure(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p, got := anthropicStub(t, http.StatusOK, nil, anthropicMessage(oneQuestion, "end_turn"))
	if p.ModelID() != "claude-haiku-4-5-20251001" {
		t.Fatalf("ModelID() = %q, alias not resolved", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), quizRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != oneQuestion {
		t.Errorf("Content = %s", resp.Content)
	}
	if resp.Usage != (Usage{InputTokens: 180, OutputTokens: 60, TotalTokens: 240}) {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd || resp.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("StopReason = %q, Model = %q", resp.StopReason, resp.Model)
	}
	if (*got)["model"] != "claude-haiku-4-5-20251001" {
		t.Errorf("request model = %v", (*got)["model"])
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p, _ := anthropicStub(t, http.StatusOK, nil, anthropicMessage(`{"questions":[{"prompt":"Wh`, "max_tokens"))
	_, err := p.Generate(context.Background(), quizRequest())
	if !isErr[*ErrMaxTokensExceeded](err) {
		t.Fatalf("err = %v, want ErrMaxTokensExceeded", err)
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit carries retry-after", func(t *testing.T) {
		p, _ := anthropicStub(t, http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, anthropicFailure("rate_limit_error"))
		_, err := p.Generate(context.Background(), quizRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("err = %T (%v), want ErrRateLimit", err, err)
		}
		if rl.RetryAfter != 7*time.Second {
			t.Errorf("RetryAfter = %v, want 7s", rl.RetryAfter)
		}
	})

	t.Run("bad key is rejected", func(t *testing.T) {
		p, _ := anthropicStub(t, http.StatusUnauthorized, nil, anthropicFailure("authentication_error"))
		_, err := p.Generate(context.Background(), quizRequest())
		var rej *ErrRejected
		if !errors.As(err, &rej) || rej.Status != http.StatusUnauthorized {
			t.Fatalf("err = %T (%v), want ErrRejected 401", err, err)
		}
	})

	t.Run("server error is unavailable", func(t *testing.T) {
		p, _ := anthropicStub(t, http.StatusInternalServerError, nil, anthropicFailure("api_error"))
		_, err := p.Generate(context.Background(), quizRequest())
		if !isErr[*ErrProviderUnavailable](err) {
			t.Fatalf("err = %T (%v), want ErrProviderUnavailable", err, err)
		}
	})
}

func chatStub(t *testing.T, status int, body any) (*OpenAIProvider, *map[string]any) {
	t.Helper()
	srv, got := vendorStub(t, status, nil, body)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p, got
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-quiz",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 150, "completion_tokens": 55, "total_tokens": 205},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	p, got := chatStub(t, http.StatusOK, chatCompletion("```json\n"+oneQuestion+"\n```", "stop"))

	resp, err := p.Generate(context.Background(), quizRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != oneQuestion {
		t.Errorf("Content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 205 || resp.Model != "gpt-4o-mini-2024-07-18" {
		t.Errorf("Usage = %+v, Model = %q", resp.Usage, resp.Model)
	}

	msgs, _ := (*got)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != openai.ChatMessageRoleSystem {
		t.Errorf("first message role = %v", first["role"])
	}
	format, _ := (*got)["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format = %v", format)
	}
}

func TestOpenAIProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(error) bool
	}{
		{"truncated", http.StatusOK, chatCompletion(`{"questions":[`, "length"), isErr[*ErrMaxTokensExceeded]},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "choices": []any{}}, isErr[*ErrInvalidResponse]},
		{"rate limited", http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "slow down", "type": "requests"}}, isErr[*ErrRateLimit]},
		{"unknown model", http.StatusNotFound, map[string]any{"error": map[string]any{"message": "model not found", "type": "invalid_request_error"}}, isErr[*ErrRejected]},
		{"server error", http.StatusBadGateway, map[string]any{"error": map[string]any{"message": "upstream", "type": "server_error"}}, isErr[*ErrProviderUnavailable]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := chatStub(t, tt.status, tt.body)
			_, err := p.Generate(context.Background(), quizRequest())
			if !tt.check(err) {
				t.Fatalf("err = %T (%v)", err, err)
			}
		})
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
		t.Fatal("expected error without API key")
	}

	srv, got := vendorStub(t, http.StatusOK, nil, chatCompletion(oneQuestion, "stop"))
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "gemini-flash", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gemini-flash" {
		t.Errorf("ModelID() = %q, gateway models must not be aliased", p.ModelID())
	}
	if _, err := p.Generate(context.Background(), quizRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if (*got)["model"] != "gemini-flash" {
		t.Errorf("request model = %v", (*got)["model"])
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(quizSchema().Definition)
	if s.Type != "OBJECT" || len(s.Required) != 1 {
		t.Fatalf("root = %s, required %v", s.Type, s.Required)
	}
	questions := s.Properties["questions"]
	if questions.Type != "ARRAY" || questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("questions = %+v", questions)
	}
	item := questions.Items
	if item.Properties["correct_index"].Type != "INTEGER" {
		t.Errorf("correct_index type = %s", item.Properties["correct_index"].Type)
	}
	options := item.Properties["options"]
	if options.Items.Type != "STRING" || *options.MinItems != 2 {
		t.Errorf("options = %+v", options)
	}
	if len(item.Required) != 3 {
		t.Errorf("item required = %v", item.Required)
	}

	level := geminiSchema(map[string]any{"enum": []string{"Beginner", "Intermediate", "Advanced"}})
	if level.Type != "STRING" || len(level.Enum) != 3 {
		t.Errorf("enum schema = %+v", level)
	}
}

func TestResolveModel(t *testing.T) {
	tests := map[string]string{
		"claude-sonnet":            "claude-sonnet-4-20250514",
		"claude-haiku":             "claude-haiku-4-5-20251001",
		"gemini-flash":             "gemini-2.0-flash",
		"gpt-4o-mini":              "gpt-4o-mini",
		"claude-sonnet-4-20250514": "claude-sonnet-4-20250514",
	}
	for in, want := range tests {
		if got := resolveModel(in); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}
