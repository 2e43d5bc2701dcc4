package recipe

import (
	"math"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

func buildTrainTable(t *testing.T) *survey.Table {
	t.Helper()
	table := survey.NewTable()
	_ = table.AddTextColumn(survey.ColParticipant, []string{"p1", "p2", "p3", "p4", "p5", "p6"})
	_ = table.AddTextColumn(survey.ColCondition, []string{"self", "other", "self", "other", "self", "other"})
	_ = table.AddNumericColumn(survey.ColPRight, []float64{1, 2, 3, 4, 5, 6})
	_ = table.AddNumericColumn(survey.ColTRight, []float64{6, 5, 4, 3, 2, 1})
	_ = table.AddNumericColumn("constant", []float64{7, 7, 7, 7, 7, 7})
	_ = table.AddNumericColumn("useful", []float64{1.5, 2.3, 0.7, 4.1, 3.3, 2.8})
	_ = table.AddNumericColumn("with_missing", []float64{1, math.NaN(), 3, math.NaN(), 5, 3})
	// Perfectly correlated with "useful".
	_ = table.AddNumericColumn("duplicate", []float64{3.0, 4.6, 1.4, 8.2, 6.6, 5.6})
	return table
}

func TestBlueprintDropsDegenerateAndLeakage(t *testing.T) {
	roles := survey.DefaultRoles()
	bp := NewBlueprint(roles, DefaultConfig(), survey.ColTRight, survey.ColCondition)

	train := buildTrainTable(t)
	if err := bp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	out, err := bp.Apply(train)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for _, gone := range []string{survey.ColTRight, survey.ColCondition, "constant"} {
		if out.HasColumn(gone) {
			t.Errorf("Column %q should have been dropped", gone)
		}
	}
	if !out.HasColumn(survey.ColPRight) {
		t.Error("Outcome column must survive preprocessing")
	}
	if out.HasColumn("useful") == out.HasColumn("duplicate") {
		t.Error("Exactly one of a perfectly correlated pair should survive")
	}

	dropped := bp.DroppedColumns()
	if dropped["constant"] != "zero_variance" {
		t.Errorf("constant should be dropped by zero_variance, got %q", dropped["constant"])
	}
}

func TestImputationUsesTrainingMean(t *testing.T) {
	roles := survey.DefaultRoles()
	impute := NewImputeMean(roles)

	train := survey.NewTable()
	_ = train.AddNumericColumn("x", []float64{1, 2, math.NaN(), 3})
	if err := impute.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if impute.Means()["x"] != 2 {
		t.Fatalf("Training mean should be 2, got %v", impute.Means()["x"])
	}

	test := survey.NewTable()
	_ = test.AddNumericColumn("x", []float64{math.NaN(), 10})
	out, err := impute.Apply(test)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	values, _ := out.Float64Column("x")
	if values[0] != 2 {
		t.Errorf("Missing test value should be imputed with training mean 2, got %v", values[0])
	}
	if values[1] != 10 {
		t.Errorf("Observed test value should pass through, got %v", values[1])
	}
}

func TestNormalizeUsesTrainingConstants(t *testing.T) {
	roles := survey.DefaultRoles()
	norm := NewNormalize(roles)

	train := survey.NewTable()
	_ = train.AddNumericColumn("x", []float64{0, 2, 4, 6})
	if err := norm.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	test := survey.NewTable()
	_ = test.AddNumericColumn("x", []float64{3})
	out, err := norm.Apply(test)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	values, _ := out.Float64Column("x")
	// Train mean 3, sample sd sqrt(20/3).
	if math.Abs(values[0]) > 1e-12 {
		t.Errorf("Test value equal to train mean should normalize to 0, got %v", values[0])
	}
}

func TestNearZeroVarianceFilter(t *testing.T) {
	roles := survey.DefaultRoles()
	nzv := NewNearZeroVariance(roles, 19, 10)

	// 50 rows: 49 zeros and a single one -> freq ratio 49, unique 4%.
	degenerate := make([]float64, 50)
	degenerate[0] = 1
	spread := make([]float64, 50)
	for i := range spread {
		spread[i] = float64(i)
	}

	train := survey.NewTable()
	_ = train.AddNumericColumn("nearly_constant", degenerate)
	_ = train.AddNumericColumn("spread", spread)
	if err := nzv.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, _ := nzv.Apply(train)
	if out.HasColumn("nearly_constant") {
		t.Error("Nearly constant column should be dropped")
	}
	if !out.HasColumn("spread") {
		t.Error("Well-spread column should survive")
	}
}

func TestCorrelationFilterKeepsLessRedundantColumn(t *testing.T) {
	roles := survey.DefaultRoles()
	filter := NewCorrelationFilter(roles, 0.8)

	// a and b are perfectly correlated (r = 1); c is a shuffled copy with
	// r ~ 0.29 against both, well below cutoff, so only one member of the
	// identical pair gets dropped.
	train := survey.NewTable()
	_ = train.AddNumericColumn("a", []float64{1, 2, 3, 4, 5, 6, 7, 8})
	_ = train.AddNumericColumn("b", []float64{2, 4, 6, 8, 10, 12, 14, 16})
	_ = train.AddNumericColumn("c", []float64{5, 1, 4, 8, 2, 6, 3, 7})

	if err := filter.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	out, _ := filter.Apply(train)
	survivors := 0
	for _, name := range []string{"a", "b"} {
		if out.HasColumn(name) {
			survivors++
		}
	}
	if survivors != 1 {
		t.Errorf("Exactly one of the identical pair should survive, got %d", survivors)
	}
	if !out.HasColumn("c") {
		t.Error("Column below cutoff should survive")
	}
}

// Perturbing test-set values must not change which columns are dropped or
// the fitted constants.
func TestNoTestSetLeakage(t *testing.T) {
	roles := survey.DefaultRoles()
	bp := NewBlueprint(roles, DefaultConfig(), survey.ColTRight, survey.ColCondition)

	train := buildTrainTable(t)
	if err := bp.Fit(train); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	droppedBefore := bp.DroppedColumns()

	test := survey.NewTable()
	_ = test.AddTextColumn(survey.ColParticipant, []string{"q1"})
	_ = test.AddTextColumn(survey.ColCondition, []string{"self"})
	_ = test.AddNumericColumn(survey.ColPRight, []float64{2})
	_ = test.AddNumericColumn(survey.ColTRight, []float64{5})
	_ = test.AddNumericColumn("constant", []float64{999})
	_ = test.AddNumericColumn("useful", []float64{1})
	_ = test.AddNumericColumn("with_missing", []float64{math.NaN()})
	_ = test.AddNumericColumn("duplicate", []float64{-50})

	out1, err := bp.Apply(test)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Wildly different test values: same drops, same constants.
	droppedAfter := bp.DroppedColumns()
	if len(droppedBefore) != len(droppedAfter) {
		t.Error("Applying to test data changed the drop set")
	}
	for col, step := range droppedBefore {
		if droppedAfter[col] != step {
			t.Errorf("Drop attribution changed for %q", col)
		}
	}

	// Run the same test row again; output must be identical.
	out2, err := bp.Apply(test)
	if err != nil {
		t.Fatalf("Second apply failed: %v", err)
	}
	for _, name := range out1.ColumnNames() {
		v1, _ := out1.Float64Column(name)
		v2, _ := out2.Float64Column(name)
		for i := range v1 {
			same := v1[i] == v2[i] || (math.IsNaN(v1[i]) && math.IsNaN(v2[i]))
			if !same {
				t.Errorf("Apply is not deterministic for %s row %d", name, i)
			}
		}
	}
}

func TestApplyBeforeFitFails(t *testing.T) {
	bp := NewBlueprint(survey.DefaultRoles(), DefaultConfig())
	if _, err := bp.Apply(survey.NewTable()); err == nil {
		t.Error("Apply before Fit should fail")
	}
}
