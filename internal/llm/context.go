package llm

import (
	"context"
	"time"
)

// PurposeQuizGen labels question generation requests.
const PurposeQuizGen = "quiz-gen"

type purposeKey struct{}

// WithPurpose tags requests made with ctx so the audit log can group them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return "unknown"
}

// TimeoutProvider gives each Generate call its own deadline.
type TimeoutProvider struct {
	inner Provider
	limit time.Duration
}

func WithTimeout(p Provider, d time.Duration) Provider {
	return &TimeoutProvider{inner: p, limit: d}
}

func (p *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.limit)
	defer cancel()
	return p.inner.Generate(ctx, req)
}

func (p *TimeoutProvider) ModelID() string { return p.inner.ModelID() }
