// Package profile summarizes the columns of the wide feature table for the
// run report: location, spread, shape, missingness, and a rough normality
// flag.
package profile

import (
	"encoding/json"
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnProfile is one numeric column's summary.
type ColumnProfile struct {
	Name        string  `json:"name"`
	N           int     `json:"n"`
	MissingRate float64 `json:"missing_rate"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Median      float64 `json:"median"`
	Q25         float64 `json:"q25"`
	Q75         float64 `json:"q75"`
	Skewness    float64 `json:"skewness"`
	Kurtosis    float64 `json:"kurtosis"`
	IsNormal    bool    `json:"is_normal"`
	NormalP     float64 `json:"normal_p"`
}

// MarshalJSON serializes NaN summaries as null; encoding/json rejects NaN
// outright.
func (p ColumnProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"name":         p.Name,
		"n":            p.N,
		"missing_rate": nanToNil(p.MissingRate),
		"mean":         nanToNil(p.Mean),
		"std_dev":      nanToNil(p.StdDev),
		"min":          nanToNil(p.Min),
		"max":          nanToNil(p.Max),
		"median":       nanToNil(p.Median),
		"q25":          nanToNil(p.Q25),
		"q75":          nanToNil(p.Q75),
		"skewness":     nanToNil(p.Skewness),
		"kurtosis":     nanToNil(p.Kurtosis),
		"is_normal":    p.IsNormal,
		"normal_p":     nanToNil(p.NormalP),
	})
}

func nanToNil(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// Profiler computes column profiles over survey tables.
type Profiler struct{}

// NewProfiler creates a profiler.
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileTable profiles every column that parses as numeric. Columns with
// no observed values are reported with NaN summaries.
func (p *Profiler) ProfileTable(t *survey.Table, roles survey.Roles) []ColumnProfile {
	var profiles []ColumnProfile
	for _, name := range t.ColumnNames() {
		if role := roles.RoleOf(name); role == survey.RoleText || role == survey.RoleID || role == survey.RoleCondition {
			continue
		}
		values, err := t.Float64Column(name)
		if err != nil {
			continue
		}
		profiles = append(profiles, p.ProfileColumn(name, values))
	}
	return profiles
}

// ProfileColumn summarizes one column, NaN-aware.
func (p *Profiler) ProfileColumn(name string, values []float64) ColumnProfile {
	observed := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	profile := ColumnProfile{Name: name, N: len(observed)}
	if len(values) > 0 {
		profile.MissingRate = float64(len(values)-len(observed)) / float64(len(values))
	}
	if len(observed) == 0 {
		nan := math.NaN()
		profile.Mean, profile.StdDev, profile.Min, profile.Max = nan, nan, nan, nan
		profile.Median, profile.Q25, profile.Q75 = nan, nan, nan
		return profile
	}

	profile.Mean, _ = stats.Mean(observed)
	profile.Min, _ = stats.Min(observed)
	profile.Max, _ = stats.Max(observed)
	profile.Median, _ = stats.Median(observed)
	profile.Q25, _ = stats.Percentile(observed, 25)
	profile.Q75, _ = stats.Percentile(observed, 75)
	if len(observed) > 1 {
		profile.StdDev, _ = stats.StandardDeviationSample(observed)
	}

	if profile.StdDev > 0 && len(observed) >= 3 {
		profile.Skewness = sampleSkewness(observed, profile.Mean, profile.StdDev)
		profile.Kurtosis = sampleKurtosis(observed, profile.Mean, profile.StdDev)
		profile.IsNormal, profile.NormalP = testNormality(profile.Skewness, profile.Kurtosis)
	}
	return profile
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient.
func sampleSkewness(data []float64, mean, sd float64) float64 {
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / sd
		sum += d * d * d
	}
	skew := sum / n
	if n > 2 {
		skew *= math.Sqrt(n*(n-1)) / (n - 2)
	}
	return skew
}

// sampleKurtosis computes total (non-excess) sample kurtosis.
func sampleKurtosis(data []float64, mean, sd float64) float64 {
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / sd
		sum += d * d * d * d
	}
	return sum / n
}

// testNormality approximates a normality test by combining skewness and
// excess kurtosis into a chi-squared statistic. Coarse, but enough to flag
// wildly non-normal feature columns in the report.
func testNormality(skewness, kurtosis float64) (bool, float64) {
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}
