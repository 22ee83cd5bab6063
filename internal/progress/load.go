package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/store"
)

// ResultQuerier is the subset of store.EventRepo needed to load progress.
type ResultQuerier interface {
	QueryQuizResults(ctx context.Context, opts store.QueryOpts) ([]store.QuizResult, error)
}

// Load reads every stored result and computes the report against cat.
func Load(ctx context.Context, cat *catalog.Catalog, repo ResultQuerier, now time.Time) (Report, error) {
	results, err := repo.QueryQuizResults(ctx, store.QueryOpts{})
	if err != nil {
		return Report{}, fmt.Errorf("load quiz results: %w", err)
	}
	return Compute(cat, results, now), nil
}
