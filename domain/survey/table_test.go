package survey

import (
	"math"
	"testing"
)

func TestBindColumnsPreservesRowCount(t *testing.T) {
	base := NewTable()
	if err := base.AddTextColumn("text", []string{"a", "b", "c"}); err != nil {
		t.Fatalf("AddTextColumn failed: %v", err)
	}

	block := NewTable()
	if err := block.AddNumericColumn("n_tokens", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddNumericColumn failed: %v", err)
	}

	if err := base.BindColumns(block); err != nil {
		t.Fatalf("BindColumns failed: %v", err)
	}
	if base.NumRows() != 3 {
		t.Errorf("Expected 3 rows after bind, got %d", base.NumRows())
	}
	if base.NumCols() != 2 {
		t.Errorf("Expected 2 columns after bind, got %d", base.NumCols())
	}
}

func TestBindColumnsRejectsRowMismatch(t *testing.T) {
	base := NewTable()
	_ = base.AddTextColumn("text", []string{"a", "b", "c"})

	block := NewTable()
	_ = block.AddNumericColumn("n_tokens", []float64{1, 2})

	if err := base.BindColumns(block); err == nil {
		t.Error("Expected error binding a block with a different row count")
	}
}

func TestBindColumnsRejectsDuplicateName(t *testing.T) {
	base := NewTable()
	_ = base.AddNumericColumn("x", []float64{1, 2})

	block := NewTable()
	_ = block.AddNumericColumn("x", []float64{3, 4})

	if err := base.BindColumns(block); err == nil {
		t.Error("Expected error binding a duplicate column name")
	}
}

func TestAppendRowsStacksStudies(t *testing.T) {
	study1 := NewTable()
	_ = study1.AddTextColumn("study", []string{"s1", "s1"})
	_ = study1.AddNumericColumn("p_right", []float64{1, 2})

	study2 := NewTable()
	_ = study2.AddTextColumn("study", []string{"s2"})
	_ = study2.AddNumericColumn("p_right", []float64{3})

	if err := study1.AppendRows(study2); err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}
	if study1.NumRows() != 3 {
		t.Errorf("Expected 3 rows, got %d", study1.NumRows())
	}
	values, err := study1.Float64Column("p_right")
	if err != nil {
		t.Fatalf("Float64Column failed: %v", err)
	}
	if values[2] != 3 {
		t.Errorf("Expected appended value 3, got %v", values[2])
	}
}

func TestAppendRowsRejectsSchemaMismatch(t *testing.T) {
	study1 := NewTable()
	_ = study1.AddTextColumn("study", []string{"s1"})

	study2 := NewTable()
	_ = study2.AddTextColumn("other", []string{"s2"})

	if err := study1.AppendRows(study2); err == nil {
		t.Error("Expected error appending a table with different columns")
	}
}

func TestFloat64ColumnParsesMissingAsNaN(t *testing.T) {
	table := NewTable()
	_ = table.AddTextColumn("score", []string{"1.5", "", "NA", "oops", "2"})

	values, err := table.Float64Column("score")
	if err != nil {
		t.Fatalf("Float64Column failed: %v", err)
	}
	if values[0] != 1.5 || values[4] != 2 {
		t.Errorf("Parseable cells wrong: %v", values)
	}
	for _, i := range []int{1, 2, 3} {
		if !math.IsNaN(values[i]) {
			t.Errorf("Cell %d should be NaN, got %v", i, values[i])
		}
	}
}

func TestSubsetRowsCopiesCells(t *testing.T) {
	table := NewTable()
	_ = table.AddNumericColumn("x", []float64{10, 20, 30})

	subset, err := table.SubsetRows([]int{2, 0})
	if err != nil {
		t.Fatalf("SubsetRows failed: %v", err)
	}
	values, _ := subset.Float64Column("x")
	if values[0] != 30 || values[1] != 10 {
		t.Errorf("Subset in wrong order: %v", values)
	}

	// Mutating the subset must not touch the parent
	values[0] = -1
	parent, _ := table.Float64Column("x")
	if parent[2] != 30 {
		t.Error("SubsetRows aliased the parent cells")
	}
}

func TestDropIgnoresUnknownColumns(t *testing.T) {
	table := NewTable()
	_ = table.AddNumericColumn("keep", []float64{1})
	_ = table.AddNumericColumn("drop", []float64{2})

	out := table.Drop("drop", "never_existed")
	if out.NumCols() != 1 || !out.HasColumn("keep") {
		t.Errorf("Drop produced wrong columns: %v", out.ColumnNames())
	}
}

func TestRolesDefaultToPredictor(t *testing.T) {
	roles := DefaultRoles()
	if roles.RoleOf("pos_noun") != RolePredictor {
		t.Error("Unregistered feature column should default to predictor")
	}
	if roles.RoleOf(ColCondition) != RoleCondition {
		t.Error("Condition column lost its role")
	}

	table := NewTable()
	_ = table.AddTextColumn(ColText, []string{"hi"})
	_ = table.AddNumericColumn(ColPRight, []float64{1})
	_ = table.AddNumericColumn("n_tokens", []float64{1})

	predictors := roles.PredictorColumns(table)
	if len(predictors) != 1 || predictors[0] != "n_tokens" {
		t.Errorf("Expected only n_tokens as predictor, got %v", predictors)
	}
}
