package model

import (
	"context"
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/split"

	"golang.org/x/sync/errgroup"
)

// FitFunc builds and fits a predictor on a training dataset.
type FitFunc func(train *Dataset) (Predictor, error)

// CVError computes the mean cross-validated RMSE of a fit procedure over
// the folds, honoring context cancellation between folds.
func CVError(ctx context.Context, d *Dataset, folds []split.Fold, fit FitFunc) (float64, error) {
	if len(folds) == 0 {
		return 0, errors.SearchInvalid("no cross-validation folds supplied")
	}
	sum := 0.0
	for _, fold := range folds {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		predictor, err := fit(d.Subset(fold.Train))
		if err != nil {
			return 0, err
		}
		sum += rmse(predictor, d.Subset(fold.Validation))
	}
	return sum / float64(len(folds)), nil
}

// GridResult is the cross-validated error at one grid point.
type GridResult struct {
	Index int
	Error float64
}

// GridSearch evaluates candidate fit procedures in parallel across grid
// points. Candidates share read-only training data, so no locking is
// needed beyond the bounded worker group.
type GridSearch struct {
	workers int
}

// NewGridSearch creates a searcher with the given worker bound (minimum 1).
func NewGridSearch(workers int) *GridSearch {
	if workers < 1 {
		workers = 1
	}
	return &GridSearch{workers: workers}
}

// Run evaluates every candidate by mean CV error and returns the index of
// the best plus all per-candidate errors. An empty grid is invalid input.
func (g *GridSearch) Run(ctx context.Context, d *Dataset, folds []split.Fold, candidates []FitFunc) (int, []GridResult, error) {
	if len(candidates) == 0 {
		return -1, nil, errors.SearchInvalid("hyperparameter grid is empty")
	}

	results := make([]GridResult, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			cvErr, err := CVError(groupCtx, d, folds, candidate)
			if err != nil {
				return err
			}
			results[i] = GridResult{Index: i, Error: cvErr}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return -1, nil, err
	}

	best := -1
	for i, r := range results {
		if math.IsNaN(r.Error) {
			continue
		}
		if best == -1 || r.Error < results[best].Error {
			best = i
		}
	}
	if best == -1 {
		return -1, nil, errors.SearchInvalid("every grid point produced NaN error")
	}
	return best, results, nil
}
