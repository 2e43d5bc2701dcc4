package split

import (
	"reflect"
	"testing"
)

func TestTrainTestDisjointAndComplete(t *testing.T) {
	p, err := TrainTest(100, 0.8, 42)
	if err != nil {
		t.Fatalf("TrainTest failed: %v", err)
	}
	if len(p.Train) != 80 || len(p.Test) != 20 {
		t.Errorf("Expected 80/20 split, got %d/%d", len(p.Train), len(p.Test))
	}

	seen := make(map[int]int)
	for _, i := range p.Train {
		seen[i]++
	}
	for _, i := range p.Test {
		seen[i]++
	}
	if len(seen) != 100 {
		t.Errorf("Split lost rows: %d distinct of 100", len(seen))
	}
	for i, count := range seen {
		if count != 1 {
			t.Errorf("Row %d appears %d times", i, count)
		}
	}
}

func TestTrainTestDeterministic(t *testing.T) {
	p1, _ := TrainTest(50, 0.8, 7)
	p2, _ := TrainTest(50, 0.8, 7)
	if !reflect.DeepEqual(p1.Train, p2.Train) || !reflect.DeepEqual(p1.Test, p2.Test) {
		t.Error("Same seed should reproduce the same split")
	}

	p3, _ := TrainTest(50, 0.8, 8)
	if reflect.DeepEqual(p1.Train, p3.Train) {
		t.Error("Different seeds should produce different splits")
	}
}

func TestTrainTestRejectsBadInput(t *testing.T) {
	if _, err := TrainTest(1, 0.8, 1); err == nil {
		t.Error("Expected error for single row")
	}
	if _, err := TrainTest(10, 0, 1); err == nil {
		t.Error("Expected error for zero ratio")
	}
	if _, err := TrainTest(10, 1, 1); err == nil {
		t.Error("Expected error for ratio 1")
	}
}

func TestKFoldExactPartition(t *testing.T) {
	const n, k = 23, 5
	folds, err := KFold(n, k, 99)
	if err != nil {
		t.Fatalf("KFold failed: %v", err)
	}
	if len(folds) != k {
		t.Fatalf("Expected %d folds, got %d", k, len(folds))
	}

	validationCount := make(map[int]int)
	trainCount := make(map[int]int)
	for _, fold := range folds {
		if len(fold.Train)+len(fold.Validation) != n {
			t.Errorf("Fold does not cover all rows: %d + %d != %d",
				len(fold.Train), len(fold.Validation), n)
		}
		for _, i := range fold.Validation {
			validationCount[i]++
		}
		for _, i := range fold.Train {
			trainCount[i]++
		}
	}

	// Every row: exactly 1 validation appearance, exactly k-1 training.
	for i := 0; i < n; i++ {
		if validationCount[i] != 1 {
			t.Errorf("Row %d in %d validation blocks, want 1", i, validationCount[i])
		}
		if trainCount[i] != k-1 {
			t.Errorf("Row %d in %d training sets, want %d", i, trainCount[i], k-1)
		}
	}

	// Near-equal block sizes: differ by at most one.
	min, max := n, 0
	for _, fold := range folds {
		if len(fold.Validation) < min {
			min = len(fold.Validation)
		}
		if len(fold.Validation) > max {
			max = len(fold.Validation)
		}
	}
	if max-min > 1 {
		t.Errorf("Validation block sizes differ by more than one: min=%d max=%d", min, max)
	}
}

func TestKFoldDeterministic(t *testing.T) {
	f1, _ := KFold(40, 4, 13)
	f2, _ := KFold(40, 4, 13)
	if !reflect.DeepEqual(f1, f2) {
		t.Error("Same seed should reproduce the same folds")
	}
}

func TestKFoldRejectsBadInput(t *testing.T) {
	if _, err := KFold(10, 1, 1); err == nil {
		t.Error("Expected error for k=1")
	}
	if _, err := KFold(3, 5, 1); err == nil {
		t.Error("Expected error for n < k")
	}
}
