// Package split provides seeded row partitioning: a train/test split and a
// k-fold cross-validation assignment. Both are deterministic given a seed.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Partition is a disjoint train/test split of row indices.
type Partition struct {
	Train []int
	Test  []int
	Seed  int64
	Ratio float64
}

// TrainTest shuffles 0..n-1 with the seed and cuts at ratio. Indices within
// each side are returned sorted so downstream row subsetting is stable.
func TrainTest(n int, ratio float64, seed int64) (*Partition, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 rows to partition, got %d", n)
	}
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("train ratio must be in (0, 1), got %v", ratio)
	}

	order := shuffledOrder(n, seed)
	cut := int(math.Round(float64(n) * ratio))
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		cut = n - 1
	}

	train := append([]int{}, order[:cut]...)
	test := append([]int{}, order[cut:]...)
	sort.Ints(train)
	sort.Ints(test)
	return &Partition{Train: train, Test: test, Seed: seed, Ratio: ratio}, nil
}

// Fold is one cross-validation fold: held-in training rows and the held-out
// validation block.
type Fold struct {
	Train      []int
	Validation []int
}

// KFold permutes 0..n-1 with the seed, cuts the shuffled order into k
// contiguous near-equal blocks, and for fold i uses block i as validation
// with the complement as training. Every row lands in exactly one
// validation block and k-1 training sets.
func KFold(n, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot cut %d rows into %d folds", n, k)
	}

	order := shuffledOrder(n, seed)

	// Block sizes differ by at most one: the first n%k blocks get the
	// extra row.
	folds := make([]Fold, k)
	base := n / k
	extra := n % k
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		validation := append([]int{}, order[start:start+size]...)
		train := make([]int, 0, n-size)
		train = append(train, order[:start]...)
		train = append(train, order[start+size:]...)
		sort.Ints(validation)
		sort.Ints(train)
		folds[i] = Fold{Train: train, Validation: validation}
		start += size
	}
	return folds, nil
}

func shuffledOrder(n int, seed int64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
