package modeling

import "fmt"

// Family names one of the trained model families.
type Family string

const (
	FamilyRidge Family = "ridge"
	FamilyLasso Family = "lasso"
	FamilyGBT   Family = "gbt"
)

// Families returns all model families in report order.
func Families() []Family {
	return []Family{FamilyRidge, FamilyLasso, FamilyGBT}
}

// WarningCode represents structured warning types attached to results.
type WarningCode string

const (
	WarningConstantPrediction WarningCode = "CONSTANT_PREDICTION" // predictions have zero variance, R-squared undefined
	WarningBaselineNotBeaten  WarningCode = "BASELINE_NOT_BEATEN" // tuned model did not improve on the intercept-only baseline
	WarningLowN               WarningCode = "LOW_N"               // held-out partition smaller than 30 rows
)

// EvalRecord is one model family's held-out evaluation for one outcome.
// R2 is NaN when WarningConstantPrediction is present; the warning is the
// signal, never a silent NaN.
type EvalRecord struct {
	Model    Family        `json:"model"`
	Outcome  string        `json:"outcome"`
	MAE      float64       `json:"mae"`
	RMSE     float64       `json:"rmse"`
	R2       float64       `json:"r2"`
	N        int           `json:"n"`
	Warnings []WarningCode `json:"warnings,omitempty"`
}

// HasWarning reports whether the record carries the given warning.
func (r EvalRecord) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w == code {
			return true
		}
	}
	return false
}

// Importance is one feature's share of a model's predictive signal.
type Importance struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// Prediction pairs a held-out observation with its model prediction,
// kept for diagnostic plots.
type Prediction struct {
	Observed  float64 `json:"observed"`
	Predicted float64 `json:"predicted"`
}

// ValidateOutcome checks an outcome column name against the allowed set.
func ValidateOutcome(name string, allowed []string) error {
	for _, a := range allowed {
		if a == name {
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q (expected one of %v)", name, allowed)
}
