package report

import (
	"math"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"
)

// PlotType identifies a diagnostic plot kind.
type PlotType string

const (
	RegressionScatter     PlotType = "regression_scatter"
	ResidualPlot          PlotType = "residual_plot"
	FeatureImportancePlot PlotType = "feature_importance"
)

// PlotData is one plot's serializable payload, consumed by external
// plotting frontends.
type PlotData struct {
	PlotType PlotType     `json:"plot_type"`
	Title    string       `json:"title"`
	Model    string       `json:"model"`
	Outcome  string       `json:"outcome"`
	Series   []SeriesData `json:"series"`
	Config   PlotConfig   `json:"config"`
}

// SeriesData is one named series within a plot.
type SeriesData struct {
	Name string      `json:"name"`
	Type string      `json:"type"` // "scatter", "line", "bar"
	Data []DataPoint `json:"data"`
}

// DataPoint is one plotted point.
type DataPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// PlotConfig carries axis labels and display hints.
type PlotConfig struct {
	XAxisLabel string `json:"x_axis_label"`
	YAxisLabel string `json:"y_axis_label"`
	ShowGrid   bool   `json:"show_grid"`
}

// ScatterPlot builds the predicted-versus-observed scatter with an identity
// reference line spanning the observed range.
func ScatterPlot(family modeling.Family, outcome string, predictions []modeling.Prediction) PlotData {
	points := make([]DataPoint, 0, len(predictions))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range predictions {
		if math.IsNaN(p.Observed) || math.IsNaN(p.Predicted) {
			continue
		}
		points = append(points, DataPoint{X: p.Observed, Y: p.Predicted})
		lo = math.Min(lo, p.Observed)
		hi = math.Max(hi, p.Observed)
	}

	series := []SeriesData{{Name: "predictions", Type: "scatter", Data: points}}
	if len(points) > 0 {
		series = append(series, SeriesData{
			Name: "identity",
			Type: "line",
			Data: []DataPoint{{X: lo, Y: lo}, {X: hi, Y: hi}},
		})
	}

	return PlotData{
		PlotType: RegressionScatter,
		Title:    "Predicted vs observed: " + string(family) + " on " + outcome,
		Model:    string(family),
		Outcome:  outcome,
		Series:   series,
		Config:   PlotConfig{XAxisLabel: "observed", YAxisLabel: "predicted", ShowGrid: true},
	}
}

// ResidualsPlot builds the residual-versus-predicted diagnostic.
func ResidualsPlot(family modeling.Family, outcome string, predictions []modeling.Prediction) PlotData {
	points := make([]DataPoint, 0, len(predictions))
	for _, p := range predictions {
		if math.IsNaN(p.Observed) || math.IsNaN(p.Predicted) {
			continue
		}
		points = append(points, DataPoint{X: p.Predicted, Y: p.Observed - p.Predicted})
	}

	return PlotData{
		PlotType: ResidualPlot,
		Title:    "Residuals: " + string(family) + " on " + outcome,
		Model:    string(family),
		Outcome:  outcome,
		Series:   []SeriesData{{Name: "residuals", Type: "scatter", Data: points}},
		Config:   PlotConfig{XAxisLabel: "predicted", YAxisLabel: "residual", ShowGrid: true},
	}
}

// ImportancePlot builds the top-k feature importance bar chart.
func ImportancePlot(family modeling.Family, outcome string, importances []modeling.Importance, topK int) PlotData {
	if topK > len(importances) {
		topK = len(importances)
	}
	points := make([]DataPoint, 0, topK)
	for i := 0; i < topK; i++ {
		points = append(points, DataPoint{
			X:     float64(i),
			Y:     importances[i].Score,
			Label: importances[i].Feature,
		})
	}

	return PlotData{
		PlotType: FeatureImportancePlot,
		Title:    "Feature importance: " + string(family) + " on " + outcome,
		Model:    string(family),
		Outcome:  outcome,
		Series:   []SeriesData{{Name: "importance", Type: "bar", Data: points}},
		Config:   PlotConfig{XAxisLabel: "feature", YAxisLabel: "importance", ShowGrid: false},
	}
}
