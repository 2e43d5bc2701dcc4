// Package report renders the modeling results: a Markdown/HTML results
// table per model family and outcome, feature-importance rankings, and
// plot-data JSON sidecars for external plotting frontends.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// OutcomeResults bundles everything the reporter needs for one outcome.
type OutcomeResults struct {
	Outcome     string
	Records     []modeling.EvalRecord
	Importances map[modeling.Family][]modeling.Importance
	Predictions map[modeling.Family][]modeling.Prediction
}

// Reporter writes report artifacts into a target directory.
type Reporter struct {
	logger *logging.Logger
}

// NewReporter creates a reporter.
func NewReporter(logger *logging.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Write renders all report artifacts into dir: results.md, results.html,
// importance_<outcome>_<family>.md, plots.json, and profiles.json.
func (r *Reporter) Write(dir string, results []OutcomeResults, profiles []profile.ColumnProfile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.StoreError("creating report directory", err)
	}

	md := r.ResultsMarkdown(results)
	if err := os.WriteFile(filepath.Join(dir, "results.md"), []byte(md), 0o644); err != nil {
		return errors.StoreError("writing results.md", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "results.html"), renderHTML(md), 0o644); err != nil {
		return errors.StoreError("writing results.html", err)
	}

	for _, res := range results {
		for _, family := range modeling.Families() {
			ranking, ok := res.Importances[family]
			if !ok || len(ranking) == 0 {
				continue
			}
			name := fmt.Sprintf("importance_%s_%s.md", res.Outcome, family)
			content := r.ImportanceMarkdown(family, res.Outcome, ranking)
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
				return errors.StoreError("writing "+name, err)
			}
		}
	}

	plots := r.collectPlots(results)
	if err := writeJSON(filepath.Join(dir, "plots.json"), plots); err != nil {
		return err
	}
	if len(profiles) > 0 {
		if err := writeJSON(filepath.Join(dir, "profiles.json"), profiles); err != nil {
			return err
		}
	}

	r.logger.Info("[Report] wrote %d result rows and %d plots to %s", countRecords(results), len(plots), dir)
	return nil
}

// ResultsMarkdown renders the held-out metrics table, one row per model
// family and outcome.
func (r *Reporter) ResultsMarkdown(results []OutcomeResults) string {
	var b strings.Builder
	b.WriteString("# Model Results\n\n")
	b.WriteString("| Outcome | Model | MAE | RMSE | R² | N | Warnings |\n")
	b.WriteString("|---------|-------|-----|------|----|---|----------|\n")
	for _, res := range results {
		for _, rec := range res.Records {
			warnings := "—"
			if len(rec.Warnings) > 0 {
				parts := make([]string, len(rec.Warnings))
				for i, w := range rec.Warnings {
					parts[i] = string(w)
				}
				warnings = strings.Join(parts, ", ")
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %d | %s |\n",
				rec.Outcome, rec.Model,
				formatMetric(rec.MAE), formatMetric(rec.RMSE), formatMetric(rec.R2),
				rec.N, warnings))
		}
	}
	return b.String()
}

// ImportanceMarkdown renders one model's feature-importance ranking.
func (r *Reporter) ImportanceMarkdown(family modeling.Family, outcome string, ranking []modeling.Importance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Feature Importance: %s on %s\n\n", family, outcome)
	b.WriteString("| Rank | Feature | Score |\n")
	b.WriteString("|------|---------|-------|\n")
	for i, imp := range ranking {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, imp.Feature, formatMetric(imp.Score))
	}
	return b.String()
}

// collectPlots builds scatter, residual, and importance plots for every
// family with predictions.
func (r *Reporter) collectPlots(results []OutcomeResults) []PlotData {
	var plots []PlotData
	for _, res := range results {
		for _, family := range modeling.Families() {
			if preds, ok := res.Predictions[family]; ok && len(preds) > 0 {
				plots = append(plots, ScatterPlot(family, res.Outcome, preds))
				plots = append(plots, ResidualsPlot(family, res.Outcome, preds))
			}
			if ranking, ok := res.Importances[family]; ok && len(ranking) > 0 {
				plots = append(plots, ImportancePlot(family, res.Outcome, ranking, 20))
			}
		}
	}
	return plots
}

// renderHTML converts Markdown to a standalone HTML document.
func renderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.Render(doc, renderer)
}

// formatMetric renders a metric value, keeping NaN visible rather than
// serialized as a number.
func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding report JSON")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.StoreError("writing "+filepath.Base(path), err)
	}
	return nil
}

func countRecords(results []OutcomeResults) int {
	n := 0
	for _, res := range results {
		n += len(res.Records)
	}
	return n
}
