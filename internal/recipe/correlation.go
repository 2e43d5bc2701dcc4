package recipe

import (
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"

	"gonum.org/v1/gonum/stat"
)

// CorrelationFilter drops one member of each predictor pair whose absolute
// Pearson correlation exceeds the cutoff. The dropped member is the one
// with the larger mean absolute correlation against all other predictors,
// which deterministically keeps the less redundant column.
type CorrelationFilter struct {
	roles   survey.Roles
	cutoff  float64
	dropped []string
}

func NewCorrelationFilter(roles survey.Roles, cutoff float64) *CorrelationFilter {
	return &CorrelationFilter{roles: roles, cutoff: cutoff}
}

func (s *CorrelationFilter) Name() string      { return "correlation_filter" }
func (s *CorrelationFilter) Dropped() []string { return s.dropped }

func (s *CorrelationFilter) Fit(train *survey.Table) error {
	s.dropped = nil
	predictors := s.roles.PredictorColumns(train)
	if len(predictors) < 2 {
		return nil
	}

	columns := make([][]float64, len(predictors))
	for j, name := range predictors {
		values, err := train.Float64Column(name)
		if err != nil {
			return err
		}
		columns[j] = values
	}

	// Pairwise absolute correlation matrix. NaN correlations (possible on
	// degenerate columns that survived earlier filters) are treated as 0
	// so they never trigger a drop.
	p := len(predictors)
	corr := make([][]float64, p)
	for i := range corr {
		corr[i] = make([]float64, p)
	}
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			if math.IsNaN(r) {
				r = 0
			}
			corr[i][j] = math.Abs(r)
			corr[j][i] = corr[i][j]
		}
	}

	meanAbs := make([]float64, p)
	for i := 0; i < p; i++ {
		sum := 0.0
		for j := 0; j < p; j++ {
			sum += corr[i][j]
		}
		meanAbs[i] = sum / float64(p-1)
	}

	removed := make([]bool, p)
	for i := 0; i < p; i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < p; j++ {
			if removed[j] || corr[i][j] <= s.cutoff {
				continue
			}
			// Drop the member more correlated with everything else; ties
			// drop the later column, keeping the scan deterministic.
			if meanAbs[i] > meanAbs[j] {
				removed[i] = true
			} else {
				removed[j] = true
			}
			if removed[i] {
				break
			}
		}
	}

	for i, name := range predictors {
		if removed[i] {
			s.dropped = append(s.dropped, name)
		}
	}
	return nil
}

func (s *CorrelationFilter) Apply(t *survey.Table) (*survey.Table, error) {
	return t.Drop(s.dropped...), nil
}
