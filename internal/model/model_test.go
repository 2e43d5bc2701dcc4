package model

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/split"
)

// linearDataset builds y = 3*x0 - 2*x1 + noise over standardized-ish
// predictors with a deterministic generator.
func linearDataset(n int, noise float64, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	d := &Dataset{Features: []string{"x0", "x1", "x2"}}
	for i := 0; i < n; i++ {
		row := []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		y := 3*row[0] - 2*row[1] + noise*rng.NormFloat64()
		d.X = append(d.X, row)
		d.Y = append(d.Y, y)
	}
	return d
}

func TestRidgeRecoversPlantedCoefficients(t *testing.T) {
	d := linearDataset(200, 0.01, 1)
	net := NewElasticNet(DefaultElasticNetConfig(0.001, 0))
	if err := net.Fit(d); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coefs := net.Coefficients()
	if len(coefs) == 0 {
		t.Fatal("Expected nonzero coefficients")
	}
	if coefs[0].Feature != "x0" || math.Abs(coefs[0].Score-3) > 0.1 {
		t.Errorf("Top coefficient should be x0 near 3, got %+v", coefs[0])
	}
	if coefs[1].Feature != "x1" || math.Abs(coefs[1].Score+2) > 0.1 {
		t.Errorf("Second coefficient should be x1 near -2, got %+v", coefs[1])
	}
}

func TestLassoZeroesIrrelevantFeature(t *testing.T) {
	d := linearDataset(200, 0.01, 2)
	net := NewElasticNet(DefaultElasticNetConfig(0.1, 1))
	if err := net.Fit(d); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	for _, c := range net.Coefficients() {
		if c.Feature == "x2" && math.Abs(c.Score) > 0.05 {
			t.Errorf("Lasso should shrink the irrelevant x2 to (near) zero, got %v", c.Score)
		}
	}
}

func TestHeavyLassoPenaltyShrinksEverything(t *testing.T) {
	d := linearDataset(100, 0.1, 3)
	net := NewElasticNet(DefaultElasticNetConfig(1000, 1))
	if err := net.Fit(d); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(net.Coefficients()) != 0 {
		t.Errorf("Extreme penalty should zero all coefficients, got %v", net.Coefficients())
	}
	// Prediction falls back to the intercept.
	pred := net.Predict([]float64{1, 1, 1})
	if math.Abs(pred-d.MeanY()) > 1e-9 {
		t.Errorf("All-zero model should predict the mean, got %v vs %v", pred, d.MeanY())
	}
}

func TestGBTLearnsNonlinearSignal(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	d := &Dataset{Features: []string{"x"}}
	for i := 0; i < 300; i++ {
		x := rng.Float64()*4 - 2
		d.X = append(d.X, []float64{x})
		d.Y = append(d.Y, x*x) // nonlinear target
	}

	gbt := NewGradientBoosted(GBTConfig{Trees: 100, Depth: 3, MinLeaf: 5, LearningRate: 0.1})
	if err := gbt.Fit(d); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	baseline := rmse(constantPredictor(d.MeanY()), d)
	fitted := rmse(gbt, d)
	if fitted >= baseline/2 {
		t.Errorf("Boosted trees should beat the baseline on x^2: baseline=%v fitted=%v", baseline, fitted)
	}

	importances := gbt.Importances()
	if len(importances) != 1 || importances[0].Feature != "x" {
		t.Errorf("All importance should land on x, got %v", importances)
	}
	if math.Abs(importances[0].Score-1) > 1e-9 {
		t.Errorf("Normalized importance should sum to 1, got %v", importances[0].Score)
	}
}

func TestGBTRejectsBadConfig(t *testing.T) {
	d := linearDataset(20, 0.1, 5)
	if err := NewGradientBoosted(GBTConfig{Trees: 0, Depth: 3, MinLeaf: 5, LearningRate: 0.1}).Fit(d); err == nil {
		t.Error("Zero trees should be rejected")
	}
	if err := NewGradientBoosted(GBTConfig{Trees: 10, Depth: 3, MinLeaf: 5, LearningRate: 0}).Fit(d); err == nil {
		t.Error("Zero learning rate should be rejected")
	}
}

func TestGridSearchFindsPlantedOptimum(t *testing.T) {
	d := linearDataset(100, 0.5, 6)
	folds, err := split.KFold(d.Len(), 5, 7)
	if err != nil {
		t.Fatalf("KFold failed: %v", err)
	}

	// Candidate 1 is the only sensible penalty; 0 and 2 are extreme.
	lambdas := []float64{1e6, 0.01, 1e5}
	candidates := make([]FitFunc, len(lambdas))
	for i, lambda := range lambdas {
		lambda := lambda
		candidates[i] = func(train *Dataset) (Predictor, error) {
			net := NewElasticNet(DefaultElasticNetConfig(lambda, 0))
			if err := net.Fit(train); err != nil {
				return nil, err
			}
			return net, nil
		}
	}

	best, results, err := NewGridSearch(4).Run(context.Background(), d, folds, candidates)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if best != 1 {
		t.Errorf("Expected grid point 1 to win, got %d (results %v)", best, results)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
}

func TestGridSearchSkipsNaNCandidates(t *testing.T) {
	d := linearDataset(40, 0.5, 12)
	folds, _ := split.KFold(d.Len(), 2, 13)

	// A degenerate candidate at index 0 must not block the finite one.
	candidates := []FitFunc{
		func(train *Dataset) (Predictor, error) {
			return constantPredictor(math.NaN()), nil
		},
		func(train *Dataset) (Predictor, error) {
			return constantPredictor(train.MeanY()), nil
		},
	}

	best, results, err := NewGridSearch(2).Run(context.Background(), d, folds, candidates)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if best != 1 {
		t.Errorf("Finite candidate should win over the NaN one, got %d (results %v)", best, results)
	}
	if !math.IsNaN(results[0].Error) {
		t.Errorf("NaN candidate should report NaN error, got %v", results[0].Error)
	}

	allNaN := []FitFunc{candidates[0], candidates[0]}
	if _, _, err := NewGridSearch(2).Run(context.Background(), d, folds, allNaN); errors.GetCode(err) != errors.CodeSearchInvalid {
		t.Errorf("All-NaN grid should be SEARCH_INVALID, got %v", err)
	}
}

func TestGridSearchEmptyGridIsInvalid(t *testing.T) {
	d := linearDataset(20, 0.5, 8)
	folds, _ := split.KFold(d.Len(), 2, 9)
	_, _, err := NewGridSearch(2).Run(context.Background(), d, folds, nil)
	if err == nil {
		t.Fatal("Empty grid must be an error")
	}
	if errors.GetCode(err) != errors.CodeSearchInvalid {
		t.Errorf("Expected SEARCH_INVALID, got %s", errors.GetCode(err))
	}
}

func TestTuneElasticNetNarrows(t *testing.T) {
	d := linearDataset(120, 0.5, 10)
	folds, _ := split.KFold(d.Len(), 4, 11)

	result, err := TuneElasticNet(context.Background(), d, folds, 0, 2, 4, nil)
	if err != nil {
		t.Fatalf("TuneElasticNet failed: %v", err)
	}
	if result.Lambda <= 0 {
		t.Errorf("Chosen lambda should be positive, got %v", result.Lambda)
	}
	if math.IsNaN(result.CVError) || result.CVError <= 0 {
		t.Errorf("CV error should be positive-finite, got %v", result.CVError)
	}
	// With strong signal and little noise, the tuned model must beat the
	// intercept-only baseline by a wide margin.
	baselineErr, _ := CVError(context.Background(), d, folds, func(train *Dataset) (Predictor, error) {
		return constantPredictor(train.MeanY()), nil
	})
	if result.CVError >= baselineErr {
		t.Errorf("Tuned linear model should beat baseline: tuned=%v baseline=%v", result.CVError, baselineErr)
	}
}

func TestTuneGBTStagesFlowForward(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	d := &Dataset{Features: []string{"x", "z"}}
	for i := 0; i < 120; i++ {
		x := rng.Float64()*2 - 1
		z := rng.NormFloat64()
		d.X = append(d.X, []float64{x, z})
		d.Y = append(d.Y, math.Abs(x)+0.05*rng.NormFloat64())
	}
	folds, _ := split.KFold(d.Len(), 3, 13)

	grids := GBTGrids{Trees: []int{25, 50}, Depths: []int{2, 3}, MinLeaves: []int{5}}
	result, err := TuneGBT(context.Background(), d, folds, 2, grids)
	if err != nil {
		t.Fatalf("TuneGBT failed: %v", err)
	}
	if result.Config.Trees != 25 && result.Config.Trees != 50 {
		t.Errorf("Chosen tree count must come from the grid, got %d", result.Config.Trees)
	}
	if result.Config.LearningRate != 0.01 {
		t.Errorf("Stage 3 should lower the learning rate to 0.01, got %v", result.Config.LearningRate)
	}
	if result.Config.MinLeaf != 5 {
		t.Errorf("MinLeaf should flow from stage 2, got %d", result.Config.MinLeaf)
	}
}

func TestLoadGridOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grids.json")
	content := `{"linear": {"lambdas": [0.01, 0.1]}, "gbt": {"trees": [100], "learning_rate": 0.05}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write grid file: %v", err)
	}

	overrides, err := LoadGridOverrides(path)
	if err != nil {
		t.Fatalf("LoadGridOverrides failed: %v", err)
	}
	if len(overrides.LinearLambdas) != 2 || overrides.LinearLambdas[1] != 0.1 {
		t.Errorf("Linear lambdas wrong: %v", overrides.LinearLambdas)
	}
	if len(overrides.GBT.Trees) != 1 || overrides.GBT.Trees[0] != 100 {
		t.Errorf("GBT trees wrong: %v", overrides.GBT.Trees)
	}
	if overrides.GBT.LearningRate != 0.05 {
		t.Errorf("Learning rate wrong: %v", overrides.GBT.LearningRate)
	}
}

func TestLoadGridOverridesMissingFile(t *testing.T) {
	_, err := LoadGridOverrides("/nonexistent/grids.json")
	if err == nil {
		t.Fatal("Expected error for missing grid file")
	}
	if errors.GetCode(err) != errors.CodeArtifactMissing {
		t.Errorf("Expected ARTIFACT_MISSING, got %s", errors.GetCode(err))
	}
}
