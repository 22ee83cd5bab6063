package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces a validated batch of questions for the lesson.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	count := input.Count
	if count <= 0 {
		count = g.config.DefaultCount
	}
	if g.config.MaxCount > 0 && count > g.config.MaxCount {
		return nil, fmt.Errorf("requested %d questions, at most %d allowed", count, g.config.MaxCount)
	}

	attempts := g.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildUserMessage(input, count, g.config)},
	}

	var lastErr error
	for range attempts {
		qs, raw, err := g.generateOnce(ctx, messages)
		if err != nil {
			return nil, err
		}

		verr := g.validate(qs, input, count)
		if verr == nil {
			return qs, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(raw)},
			llm.Message{Role: llm.RoleUser, Content: retryMessage(verr)},
		)
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, messages []llm.Message) ([]quiz.Question, json.RawMessage, error) {
	req := llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	qs := make([]quiz.Question, len(out.Questions))
	for i, q := range out.Questions {
		qs[i] = quiz.Question{
			ID:           i + 1,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}
	return qs, resp.Content, nil
}

func (g *LLMGenerator) validate(qs []quiz.Question, input GenerateInput, want int) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(qs, input, want); verr != nil {
			return verr
		}
	}
	// Final gate: the batch must form a valid question set.
	if err := quiz.Validate(qs); err != nil {
		var cfgErr *quiz.ConfigError
		msg := err.Error()
		if errors.As(err, &cfgErr) && len(cfgErr.Problems) > 0 {
			msg = cfgErr.Problems[0]
		}
		return &ValidationError{Validator: "question-set", Message: msg, Retryable: true}
	}
	return nil
}
