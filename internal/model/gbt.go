package model

import (
	"fmt"
	"sort"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"

	"gonum.org/v1/gonum/floats"
)

// GBTConfig parameterizes the gradient-boosted tree family.
type GBTConfig struct {
	Trees        int
	Depth        int // interaction depth: maximum levels per tree
	MinLeaf      int // minimum observations per leaf
	LearningRate float64
}

// DefaultGBTConfig returns the stage-1 tuning baseline.
func DefaultGBTConfig() GBTConfig {
	return GBTConfig{Trees: 100, Depth: 3, MinLeaf: 10, LearningRate: 0.1}
}

// GradientBoosted is a fitted boosting ensemble of depth-limited
// variance-reduction regression trees.
type GradientBoosted struct {
	config     GBTConfig
	base       float64
	trees      []*treeNode
	features   []string
	importance []float64 // split-gain sums per feature
}

// NewGradientBoosted creates an unfitted ensemble.
func NewGradientBoosted(config GBTConfig) *GradientBoosted {
	return &GradientBoosted{config: config}
}

// Fit builds the ensemble by repeatedly fitting a tree to the current
// residuals and shrinking its contribution by the learning rate.
func (m *GradientBoosted) Fit(d *Dataset) error {
	if d.Len() == 0 {
		return fmt.Errorf("cannot fit boosted trees on empty dataset")
	}
	if m.config.Trees < 1 || m.config.Depth < 1 || m.config.MinLeaf < 1 || m.config.LearningRate <= 0 {
		return fmt.Errorf("invalid boosting configuration: %+v", m.config)
	}

	m.features = d.Features
	m.importance = make([]float64, len(d.Features))
	m.base = d.MeanY()
	m.trees = m.trees[:0]

	residual := make([]float64, d.Len())
	for i, y := range d.Y {
		residual[i] = y - m.base
	}

	indices := make([]int, d.Len())
	for i := range indices {
		indices[i] = i
	}

	for t := 0; t < m.config.Trees; t++ {
		tree := m.buildTree(d, residual, indices, m.config.Depth)
		if tree == nil {
			break // no split improves anything; later trees won't either
		}
		m.trees = append(m.trees, tree)
		for i, row := range d.X {
			residual[i] -= m.config.LearningRate * tree.predict(row)
		}
	}
	return nil
}

// Predict sums the shrunk tree contributions over the base prediction.
func (m *GradientBoosted) Predict(row []float64) float64 {
	pred := m.base
	for _, tree := range m.trees {
		pred += m.config.LearningRate * tree.predict(row)
	}
	return pred
}

// Importances returns features ranked by accumulated split gain,
// normalized to sum to one.
func (m *GradientBoosted) Importances() []modeling.Importance {
	total := floats.Sum(m.importance)
	var out []modeling.Importance
	for j, gain := range m.importance {
		if gain > 0 {
			score := gain
			if total > 0 {
				score = gain / total
			}
			out = append(out, modeling.Importance{Feature: m.features[j], Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// treeNode is one node of a regression tree.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// buildTree fits a depth-limited tree to the residuals over the given row
// indices. Returns nil when no split reduces variance at the root.
func (m *GradientBoosted) buildTree(d *Dataset, residual []float64, indices []int, depth int) *treeNode {
	mean := meanAt(residual, indices)
	if depth == 0 || len(indices) < 2*m.config.MinLeaf {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, gain := m.bestSplit(d, residual, indices)
	if feature < 0 {
		if depth == m.config.Depth {
			return nil // root found nothing to split on
		}
		return &treeNode{leaf: true, value: mean}
	}
	m.importance[feature] += gain

	var leftIdx, rightIdx []int
	for _, i := range indices {
		if d.X[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	node := &treeNode{feature: feature, threshold: threshold}
	node.left = m.buildTree(d, residual, leftIdx, depth-1)
	node.right = m.buildTree(d, residual, rightIdx, depth-1)
	if node.left == nil {
		node.left = &treeNode{leaf: true, value: meanAt(residual, leftIdx)}
	}
	if node.right == nil {
		node.right = &treeNode{leaf: true, value: meanAt(residual, rightIdx)}
	}
	return node
}

// bestSplit scans every feature for the threshold with the largest variance
// reduction, honoring the minimum leaf size. Returns feature -1 when no
// valid split improves on the parent.
func (m *GradientBoosted) bestSplit(d *Dataset, residual []float64, indices []int) (int, float64, float64) {
	n := len(indices)
	parentSum := 0.0
	parentSqSum := 0.0
	for _, i := range indices {
		parentSum += residual[i]
		parentSqSum += residual[i] * residual[i]
	}
	parentSSE := parentSqSum - parentSum*parentSum/float64(n)

	bestFeature, bestThreshold, bestGain := -1, 0.0, 1e-12

	order := make([]int, n)
	for j := range d.Features {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return d.X[order[a]][j] < d.X[order[b]][j]
		})

		leftSum, leftSq := 0.0, 0.0
		for k := 0; k < n-1; k++ {
			r := residual[order[k]]
			leftSum += r
			leftSq += r * r

			size := k + 1
			if size < m.config.MinLeaf || n-size < m.config.MinLeaf {
				continue
			}
			cur, next := d.X[order[k]][j], d.X[order[k+1]][j]
			if cur == next {
				continue // cannot cut between equal values
			}

			rightSum := parentSum - leftSum
			rightSq := parentSqSum - leftSq
			leftSSE := leftSq - leftSum*leftSum/float64(size)
			rightSSE := rightSq - rightSum*rightSum/float64(n-size)
			gain := parentSSE - leftSSE - rightSSE
			if gain > bestGain {
				bestFeature = j
				bestThreshold = (cur + next) / 2
				bestGain = gain
			}
		}
	}
	if bestFeature < 0 {
		return -1, 0, 0
	}
	return bestFeature, bestThreshold, bestGain
}

func meanAt(values []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range indices {
		sum += values[i]
	}
	return sum / float64(len(indices))
}
