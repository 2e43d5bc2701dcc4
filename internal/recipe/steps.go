package recipe

import (
	"math"
	"sort"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"

	"github.com/montanaflynn/stats"
)

// RemoveColumns drops explicitly named leakage columns. It needs no fitting;
// the drop list is part of the recipe definition.
type RemoveColumns struct {
	names []string
}

func NewRemoveColumns(names ...string) *RemoveColumns {
	return &RemoveColumns{names: names}
}

func (s *RemoveColumns) Name() string      { return "remove_columns" }
func (s *RemoveColumns) Fit(*survey.Table) error { return nil }
func (s *RemoveColumns) Dropped() []string { return s.names }

func (s *RemoveColumns) Apply(t *survey.Table) (*survey.Table, error) {
	return t.Drop(s.names...), nil
}

// ZeroVariance drops predictors whose training values are constant or all
// missing. Degenerate columns are dropped, never fatal.
type ZeroVariance struct {
	roles   survey.Roles
	dropped []string
}

func NewZeroVariance(roles survey.Roles) *ZeroVariance {
	return &ZeroVariance{roles: roles}
}

func (s *ZeroVariance) Name() string      { return "zero_variance" }
func (s *ZeroVariance) Dropped() []string { return s.dropped }

func (s *ZeroVariance) Fit(train *survey.Table) error {
	s.dropped = nil
	for _, name := range s.roles.PredictorColumns(train) {
		values, err := train.Float64Column(name)
		if err != nil {
			return err
		}
		observed := dropNaN(values)
		if len(observed) == 0 || isConstant(observed) {
			s.dropped = append(s.dropped, name)
		}
	}
	return nil
}

func (s *ZeroVariance) Apply(t *survey.Table) (*survey.Table, error) {
	return t.Drop(s.dropped...), nil
}

// NearZeroVariance drops predictors that are almost constant: the ratio of
// the most common value's frequency to the second most common exceeds
// freqCut AND the percentage of distinct values falls below uniqueCut.
type NearZeroVariance struct {
	roles     survey.Roles
	freqCut   float64
	uniqueCut float64
	dropped   []string
}

func NewNearZeroVariance(roles survey.Roles, freqCut, uniqueCut float64) *NearZeroVariance {
	return &NearZeroVariance{roles: roles, freqCut: freqCut, uniqueCut: uniqueCut}
}

func (s *NearZeroVariance) Name() string      { return "near_zero_variance" }
func (s *NearZeroVariance) Dropped() []string { return s.dropped }

func (s *NearZeroVariance) Fit(train *survey.Table) error {
	s.dropped = nil
	for _, name := range s.roles.PredictorColumns(train) {
		values, err := train.Float64Column(name)
		if err != nil {
			return err
		}
		observed := dropNaN(values)
		if len(observed) < 2 {
			continue // zero-variance step already handled the degenerate cases
		}

		counts := make(map[float64]int)
		for _, v := range observed {
			counts[v]++
		}
		uniquePercent := float64(len(counts)) / float64(len(observed)) * 100
		first, second := topTwoFrequencies(counts)

		// With a single distinct value the ratio is infinite; the zero
		// variance step catches that, but guard anyway.
		freqRatio := math.Inf(1)
		if second > 0 {
			freqRatio = float64(first) / float64(second)
		}
		if freqRatio > s.freqCut && uniquePercent < s.uniqueCut {
			s.dropped = append(s.dropped, name)
		}
	}
	return nil
}

func (s *NearZeroVariance) Apply(t *survey.Table) (*survey.Table, error) {
	return t.Drop(s.dropped...), nil
}

// ImputeMean replaces missing predictor values with the training-partition
// column mean.
type ImputeMean struct {
	roles survey.Roles
	means map[string]float64
}

func NewImputeMean(roles survey.Roles) *ImputeMean {
	return &ImputeMean{roles: roles}
}

func (s *ImputeMean) Name() string      { return "impute_mean" }
func (s *ImputeMean) Dropped() []string { return nil }

// Means exposes the fitted imputation constants, keyed by column.
func (s *ImputeMean) Means() map[string]float64 { return s.means }

func (s *ImputeMean) Fit(train *survey.Table) error {
	s.means = make(map[string]float64)
	for _, name := range s.roles.PredictorColumns(train) {
		values, err := train.Float64Column(name)
		if err != nil {
			return err
		}
		observed := dropNaN(values)
		if len(observed) == 0 {
			s.means[name] = 0
			continue
		}
		mean, _ := stats.Mean(observed)
		s.means[name] = mean
	}
	return nil
}

func (s *ImputeMean) Apply(t *survey.Table) (*survey.Table, error) {
	out := survey.NewTable()
	for _, name := range t.ColumnNames() {
		mean, isPredictor := s.means[name]
		if !isPredictor {
			col, _ := t.Column(name)
			if err := copyColumn(out, t, name, col); err != nil {
				return nil, err
			}
			continue
		}
		values, err := t.Float64Column(name)
		if err != nil {
			return nil, err
		}
		imputed := make([]float64, len(values))
		for i, v := range values {
			if math.IsNaN(v) {
				imputed[i] = mean
			} else {
				imputed[i] = v
			}
		}
		if err := out.AddNumericColumn(name, imputed); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Normalize centers and scales predictors with training mean and standard
// deviation. A zero standard deviation (possible on a degenerate apply-side
// column) centers only.
type Normalize struct {
	roles survey.Roles
	means map[string]float64
	sds   map[string]float64
}

func NewNormalize(roles survey.Roles) *Normalize {
	return &Normalize{roles: roles}
}

func (s *Normalize) Name() string      { return "normalize" }
func (s *Normalize) Dropped() []string { return nil }

// Constants exposes the fitted mean and standard deviation per column.
func (s *Normalize) Constants() (map[string]float64, map[string]float64) {
	return s.means, s.sds
}

func (s *Normalize) Fit(train *survey.Table) error {
	s.means = make(map[string]float64)
	s.sds = make(map[string]float64)
	for _, name := range s.roles.PredictorColumns(train) {
		values, err := train.Float64Column(name)
		if err != nil {
			return err
		}
		observed := dropNaN(values)
		if len(observed) == 0 {
			s.means[name], s.sds[name] = 0, 1
			continue
		}
		mean, _ := stats.Mean(observed)
		sd := 0.0
		if len(observed) > 1 {
			sd, _ = stats.StandardDeviationSample(observed)
		}
		s.means[name] = mean
		s.sds[name] = sd
	}
	return nil
}

func (s *Normalize) Apply(t *survey.Table) (*survey.Table, error) {
	out := survey.NewTable()
	for _, name := range t.ColumnNames() {
		mean, isPredictor := s.means[name]
		if !isPredictor {
			col, _ := t.Column(name)
			if err := copyColumn(out, t, name, col); err != nil {
				return nil, err
			}
			continue
		}
		values, err := t.Float64Column(name)
		if err != nil {
			return nil, err
		}
		sd := s.sds[name]
		scaled := make([]float64, len(values))
		for i, v := range values {
			centered := v - mean
			if sd > 0 {
				centered /= sd
			}
			scaled[i] = centered
		}
		if err := out.AddNumericColumn(name, scaled); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// helpers shared by the steps

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func topTwoFrequencies(counts map[float64]int) (first, second int) {
	freqs := make([]int, 0, len(counts))
	for _, c := range counts {
		freqs = append(freqs, c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(freqs)))
	first = freqs[0]
	if len(freqs) > 1 {
		second = freqs[1]
	}
	return first, second
}

func copyColumn(dst *survey.Table, src *survey.Table, name string, col *survey.Column) error {
	if col.Kind == survey.KindNumeric {
		return dst.AddNumericColumn(name, col.Values)
	}
	cells, err := src.TextColumn(name)
	if err != nil {
		return err
	}
	return dst.AddTextColumn(name, cells)
}
