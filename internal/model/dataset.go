// Package model implements the three model families (ridge, lasso,
// gradient-boosted trees), cross-validated grid search over their
// hyperparameters, and the staged tuning procedures that select them.
package model

import (
	"fmt"
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

// Predictor maps a feature vector to a scalar prediction.
type Predictor interface {
	Predict(row []float64) float64
}

// Dataset is a dense design matrix with its outcome vector, extracted from
// a preprocessed table. Rows with a missing outcome are excluded at
// extraction; predictors are expected already imputed.
type Dataset struct {
	X        [][]float64
	Y        []float64
	Features []string
}

// FromTable extracts the predictor matrix and outcome vector for one
// outcome column.
func FromTable(t *survey.Table, roles survey.Roles, outcome string) (*Dataset, error) {
	predictors := roles.PredictorColumns(t)
	if len(predictors) == 0 {
		return nil, fmt.Errorf("no predictor columns available for outcome %q", outcome)
	}
	y, err := t.Float64Column(outcome)
	if err != nil {
		return nil, fmt.Errorf("outcome column %q: %w", outcome, err)
	}
	matrix, err := t.Matrix(predictors)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Features: predictors}
	for i, target := range y {
		if math.IsNaN(target) {
			continue
		}
		ds.X = append(ds.X, matrix[i])
		ds.Y = append(ds.Y, target)
	}
	if len(ds.Y) == 0 {
		return nil, fmt.Errorf("outcome %q has no observed values", outcome)
	}
	return ds, nil
}

// Len returns the row count.
func (d *Dataset) Len() int { return len(d.Y) }

// Subset returns the rows at the given indices, sharing row slices.
func (d *Dataset) Subset(rows []int) *Dataset {
	out := &Dataset{Features: d.Features, X: make([][]float64, len(rows)), Y: make([]float64, len(rows))}
	for i, r := range rows {
		out.X[i] = d.X[r]
		out.Y[i] = d.Y[r]
	}
	return out
}

// MeanY returns the outcome mean, the intercept-only baseline prediction.
func (d *Dataset) MeanY() float64 {
	sum := 0.0
	for _, v := range d.Y {
		sum += v
	}
	return sum / float64(len(d.Y))
}

// rmse computes root-mean-squared prediction error of p over d.
func rmse(p Predictor, d *Dataset) float64 {
	sum := 0.0
	for i, row := range d.X {
		diff := p.Predict(row) - d.Y[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(d.Y)))
}

// constantPredictor is the intercept-only baseline.
type constantPredictor float64

func (c constantPredictor) Predict([]float64) float64 { return float64(c) }
