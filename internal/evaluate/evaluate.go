// Package evaluate computes held-out evaluation metrics for a fitted model:
// MAE, RMSE, and R-squared as the squared Pearson correlation between
// observed and predicted values.
package evaluate

import (
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// Evaluate scores predictions against observations. A constant prediction
// vector makes R-squared undefined; the record then carries
// WarningConstantPrediction with R2 set to NaN, an explicit signal rather
// than a silent NaN.
func Evaluate(family modeling.Family, outcome string, observed, predicted []float64) (modeling.EvalRecord, error) {
	record := modeling.EvalRecord{Model: family, Outcome: outcome, N: len(observed)}
	if len(observed) == 0 || len(observed) != len(predicted) {
		return record, errors.InvalidInput("observed and predicted must be equal-length and non-empty")
	}

	absSum, sqSum := 0.0, 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}
	record.MAE = absSum / float64(len(observed))
	record.RMSE = math.Sqrt(sqSum / float64(len(observed)))

	if isConstant(predicted) {
		record.R2 = math.NaN()
		record.Warnings = append(record.Warnings, modeling.WarningConstantPrediction)
	} else {
		r := stat.Correlation(observed, predicted, nil)
		if math.IsNaN(r) {
			// Constant observations also defeat the correlation.
			record.R2 = math.NaN()
			record.Warnings = append(record.Warnings, modeling.WarningConstantPrediction)
		} else {
			record.R2 = r * r
		}
	}
	if record.N < 30 {
		record.Warnings = append(record.Warnings, modeling.WarningLowN)
	}
	return record, nil
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
