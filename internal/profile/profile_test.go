package profile

import (
	"math"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

func TestProfileColumnBasics(t *testing.T) {
	p := NewProfiler()
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	profile := p.ProfileColumn("score", values)

	if profile.N != 10 {
		t.Errorf("expected n=10, got %d", profile.N)
	}
	if math.Abs(profile.Mean-5.5) > 1e-9 {
		t.Errorf("expected mean 5.5, got %f", profile.Mean)
	}
	if math.Abs(profile.Min-1) > 1e-9 || math.Abs(profile.Max-10) > 1e-9 {
		t.Errorf("unexpected range [%f, %f]", profile.Min, profile.Max)
	}
	if profile.MissingRate != 0 {
		t.Errorf("expected no missingness, got %f", profile.MissingRate)
	}
}

func TestProfileColumnMissing(t *testing.T) {
	p := NewProfiler()
	nan := math.NaN()
	values := []float64{1, nan, 3, nan, 5}

	profile := p.ProfileColumn("score", values)

	if profile.N != 3 {
		t.Errorf("expected n=3 observed, got %d", profile.N)
	}
	if math.Abs(profile.MissingRate-0.4) > 1e-9 {
		t.Errorf("expected missing rate 0.4, got %f", profile.MissingRate)
	}
	if math.Abs(profile.Mean-3) > 1e-9 {
		t.Errorf("expected mean over observed values, got %f", profile.Mean)
	}
}

func TestProfileColumnAllMissing(t *testing.T) {
	p := NewProfiler()
	nan := math.NaN()

	profile := p.ProfileColumn("score", []float64{nan, nan})

	if profile.N != 0 {
		t.Errorf("expected n=0, got %d", profile.N)
	}
	if !math.IsNaN(profile.Mean) || !math.IsNaN(profile.Median) {
		t.Error("expected NaN summaries for empty column")
	}
	if profile.MissingRate != 1 {
		t.Errorf("expected missing rate 1, got %f", profile.MissingRate)
	}
}

func TestProfileColumnSkewness(t *testing.T) {
	p := NewProfiler()
	// Right-skewed: a long upper tail.
	values := []float64{1, 1, 1, 2, 2, 3, 3, 4, 10, 25}

	profile := p.ProfileColumn("score", values)

	if profile.Skewness <= 0 {
		t.Errorf("expected positive skew, got %f", profile.Skewness)
	}
}

func TestProfileTableSkipsNonPredictors(t *testing.T) {
	tbl := survey.NewTable()
	if err := tbl.AddTextColumn(survey.ColParticipant, []string{"p1", "p2", "p3"}); err != nil {
		t.Fatalf("add id column: %v", err)
	}
	if err := tbl.AddTextColumn(survey.ColText, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("add text column: %v", err)
	}
	if err := tbl.AddNumericColumn("ttr", []float64{0.5, 0.6, 0.7}); err != nil {
		t.Fatalf("add numeric column: %v", err)
	}

	profiles := NewProfiler().ProfileTable(tbl, survey.DefaultRoles())

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Name != "ttr" {
		t.Errorf("expected ttr profiled, got %s", profiles[0].Name)
	}
}
