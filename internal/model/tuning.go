package model

import (
	"context"
	"log"
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/split"
)

// LinearTuneResult is the chosen penalty for one linear family.
type LinearTuneResult struct {
	Lambda  float64
	Alpha   float64
	CVError float64
}

// TuneElasticNet selects the penalty strength by successive narrowing
// passes: a coarse logarithmic grid, then finer grids centered on the
// incumbent best. Alpha (the L1/L2 mix) is fixed per family.
func TuneElasticNet(ctx context.Context, d *Dataset, folds []split.Fold, alpha float64, passes, workers int, grid []float64) (*LinearTuneResult, error) {
	search := NewGridSearch(workers)
	if len(grid) == 0 {
		grid = logGrid(1e-4, 1e2, 13)
	}
	if passes < 1 {
		passes = 1
	}

	var best LinearTuneResult
	for pass := 0; pass < passes; pass++ {
		candidates := make([]FitFunc, len(grid))
		for i, lambda := range grid {
			lambda := lambda
			candidates[i] = func(train *Dataset) (Predictor, error) {
				net := NewElasticNet(DefaultElasticNetConfig(lambda, alpha))
				if err := net.Fit(train); err != nil {
					return nil, err
				}
				return net, nil
			}
		}
		bestIdx, results, err := search.Run(ctx, d, folds, candidates)
		if err != nil {
			return nil, err
		}
		best = LinearTuneResult{Lambda: grid[bestIdx], Alpha: alpha, CVError: results[bestIdx].Error}
		log.Printf("[Tuning] Linear pass %d (alpha=%.1f): lambda=%.6g cv_rmse=%.4f", pass+1, alpha, best.Lambda, best.CVError)

		// Next pass narrows one decade around the incumbent, halving the
		// log-range each pass.
		span := 1.0 / float64(pass+1)
		grid = logGrid(best.Lambda*math.Pow(10, -span), best.Lambda*math.Pow(10, span), 9)
	}
	return &best, nil
}

// GBTTuneResult is the staged tuning outcome for the boosted-tree family.
type GBTTuneResult struct {
	Config  GBTConfig
	CVError float64
}

// GBTGrids holds the staged sweep values; zero-valued fields use defaults.
type GBTGrids struct {
	Trees        []int
	Depths       []int
	MinLeaves    []int
	LearningRate float64 // stage 1-2 rate
	FinalRate    float64 // stage 3 lowered rate
}

func (g GBTGrids) withDefaults() GBTGrids {
	if len(g.Trees) == 0 {
		g.Trees = []int{50, 100, 150, 200, 300, 400, 500}
	}
	if len(g.Depths) == 0 {
		g.Depths = []int{1, 2, 3, 4, 5}
	}
	if len(g.MinLeaves) == 0 {
		g.MinLeaves = []int{5, 10, 20}
	}
	if g.LearningRate == 0 {
		g.LearningRate = 0.1
	}
	if g.FinalRate == 0 {
		g.FinalRate = 0.01
	}
	return g
}

// TuneGBT performs the three-stage sweep: (1) tree count at fixed depth and
// leaf size, picking the plateau point; (2) depth by leaf size at that
// count; (3) a lowered learning rate with the tree count re-swept at the
// stage-2 shape. Each stage's winner feeds the next.
func TuneGBT(ctx context.Context, d *Dataset, folds []split.Fold, workers int, grids GBTGrids) (*GBTTuneResult, error) {
	grids = grids.withDefaults()
	search := NewGridSearch(workers)
	base := DefaultGBTConfig()
	base.LearningRate = grids.LearningRate

	fitFor := func(config GBTConfig) FitFunc {
		return func(train *Dataset) (Predictor, error) {
			gbt := NewGradientBoosted(config)
			if err := gbt.Fit(train); err != nil {
				return nil, err
			}
			return gbt, nil
		}
	}

	// Stage 1: sweep tree count, choose the plateau (smallest count within
	// one standard error of the minimum).
	stage1 := make([]FitFunc, len(grids.Trees))
	for i, trees := range grids.Trees {
		config := base
		config.Trees = trees
		stage1[i] = fitFor(config)
	}
	_, results, err := search.Run(ctx, d, folds, stage1)
	if err != nil {
		return nil, err
	}
	chosenTrees := grids.Trees[plateauIndex(results)]
	log.Printf("[Tuning] GBT stage 1: trees=%d", chosenTrees)

	// Stage 2: depth by minimum leaf size at the chosen count.
	type shape struct{ depth, minLeaf int }
	var shapes []shape
	var stage2 []FitFunc
	for _, depth := range grids.Depths {
		for _, minLeaf := range grids.MinLeaves {
			config := base
			config.Trees = chosenTrees
			config.Depth = depth
			config.MinLeaf = minLeaf
			shapes = append(shapes, shape{depth, minLeaf})
			stage2 = append(stage2, fitFor(config))
		}
	}
	bestIdx, _, err := search.Run(ctx, d, folds, stage2)
	if err != nil {
		return nil, err
	}
	chosenShape := shapes[bestIdx]
	log.Printf("[Tuning] GBT stage 2: depth=%d min_leaf=%d", chosenShape.depth, chosenShape.minLeaf)

	// Stage 3: lower the learning rate and re-sweep tree count at the
	// chosen shape.
	stage3 := make([]FitFunc, len(grids.Trees))
	var configs []GBTConfig
	for _, trees := range grids.Trees {
		config := GBTConfig{
			Trees:        trees,
			Depth:        chosenShape.depth,
			MinLeaf:      chosenShape.minLeaf,
			LearningRate: grids.FinalRate,
		}
		configs = append(configs, config)
	}
	for i, config := range configs {
		stage3[i] = fitFor(config)
	}
	bestIdx, results, err = search.Run(ctx, d, folds, stage3)
	if err != nil {
		return nil, err
	}
	chosen := configs[bestIdx]
	log.Printf("[Tuning] GBT stage 3: rate=%.3f trees=%d cv_rmse=%.4f",
		chosen.LearningRate, chosen.Trees, results[bestIdx].Error)

	return &GBTTuneResult{Config: chosen, CVError: results[bestIdx].Error}, nil
}

// plateauIndex finds the smallest grid index whose error is within one
// standard error of the minimum, the usual early-plateau choice for tree
// counts.
func plateauIndex(results []GridResult) int {
	minIdx := 0
	for i, r := range results {
		if r.Error < results[minIdx].Error {
			minIdx = i
		}
	}
	se := standardError(results)
	for i, r := range results {
		if r.Error <= results[minIdx].Error+se {
			return i
		}
	}
	return minIdx
}

func standardError(results []GridResult) float64 {
	n := float64(len(results))
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range results {
		mean += r.Error
	}
	mean /= n
	variance := 0.0
	for _, r := range results {
		variance += (r.Error - mean) * (r.Error - mean)
	}
	variance /= n - 1
	return math.Sqrt(variance / n)
}

// logGrid builds a logarithmically spaced grid between lo and hi inclusive.
func logGrid(lo, hi float64, points int) []float64 {
	if lo <= 0 {
		lo = 1e-6
	}
	if points < 2 || hi <= lo {
		return []float64{lo}
	}
	grid := make([]float64, points)
	logLo, logHi := math.Log10(lo), math.Log10(hi)
	for i := range grid {
		exp := logLo + (logHi-logLo)*float64(i)/float64(points-1)
		grid[i] = math.Pow(10, exp)
	}
	return grid
}
