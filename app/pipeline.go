package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/run"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/config"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/features"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/model"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/recipe"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/report"
)

// Pipeline composes both stages end to end: feature generation, one
// modeling pass per outcome, then the report.
type Pipeline struct {
	config   *config.Config
	featSvc  *FeatureService
	modelSvc *ModelService
	reporter *report.Reporter
	logger   *logging.Logger
}

// NewPipeline wires the full pipeline from configuration.
func NewPipeline(cfg *config.Config, featSvc *FeatureService, modelSvc *ModelService, reporter *report.Reporter, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		config:   cfg,
		featSvc:  featSvc,
		modelSvc: modelSvc,
		reporter: reporter,
		logger:   logger,
	}
}

// Run executes the whole analysis and returns its manifest. The manifest is
// also written into the report directory so a run can be replayed from its
// artifacts alone.
func (p *Pipeline) Run(ctx context.Context) (*run.Manifest, error) {
	manifest := run.NewManifest(p.seeds(), p.knobs())
	p.logger.Info("[Pipeline] run %s starting", manifest.RunID)

	stageStart := time.Now()
	featResult, err := p.featSvc.Generate(ctx, GenerateRequest{
		StudyFiles: p.config.Paths.StudyFiles,
		Sources: features.Sources{
			EmbeddingsFile: p.config.Paths.EmbeddingsFile,
			LIWCDict:       p.config.Paths.LIWCDict,
			LIWCTable:      p.config.Paths.LIWCTable,
			MFDict:         p.config.Paths.MFDict,
			MFTable:        p.config.Paths.MFTable,
			TaggerModel:    p.config.Paths.TaggerModel,
		},
		FeaturesOut: p.config.Paths.FeaturesOut,
		CacheName:   "features",
	})
	if err != nil {
		return nil, errors.Wrap(err, "feature stage failed")
	}
	manifest.RecordStage("features", stageStart)
	manifest.Documents = featResult.Documents
	manifest.FeatureCols = featResult.Table.NumCols()
	for _, block := range featResult.Blocks {
		manifest.Blocks = append(manifest.Blocks, block.Name)
	}

	overrides, err := p.loadOverrides()
	if err != nil {
		return nil, err
	}

	var results []report.OutcomeResults
	for _, outcome := range survey.Outcomes() {
		stageStart = time.Now()
		trained, err := p.modelSvc.TrainOutcome(ctx, TrainRequest{
			Table:      featResult.Table,
			Outcome:    outcome,
			TrainRatio: p.config.Split.TrainRatio,
			Folds:      p.config.Split.Folds,
			Recipe: recipe.Config{
				FreqCut:    p.config.Recipe.FreqCut,
				UniqueCut:  p.config.Recipe.UniqueCut,
				CorrCutoff: p.config.Recipe.CorrCutoff,
			},
			Seeds:        p.seeds(),
			LinearPasses: p.config.Tuning.LinearPasses,
			GridWorkers:  p.config.WorkerPool.GridWorkers,
			Overrides:    overrides,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "modeling stage failed for %s", outcome)
		}
		manifest.RecordStage("model_"+outcome, stageStart)

		for _, record := range trained.Records {
			for _, w := range record.Warnings {
				manifest.Warn(string(record.Model) + " on " + outcome + ": " + string(w))
			}
		}
		results = append(results, report.OutcomeResults{
			Outcome:     outcome,
			Records:     trained.Records,
			Importances: trained.Importances,
			Predictions: trained.Predictions,
		})
	}

	stageStart = time.Now()
	if err := p.reporter.Write(p.config.Paths.ReportDir, results, featResult.Profiles); err != nil {
		return nil, errors.Wrap(err, "report stage failed")
	}
	manifest.RecordStage("report", stageStart)

	if err := p.writeManifest(manifest); err != nil {
		return nil, err
	}
	p.logger.Info("[Pipeline] run %s complete: %d documents, %d feature columns, %d warnings",
		manifest.RunID, manifest.Documents, manifest.FeatureCols, len(manifest.Warnings))
	return manifest, nil
}

// loadOverrides reads the optional hyperparameter grid file.
func (p *Pipeline) loadOverrides() (*model.GridOverrides, error) {
	if p.config.Paths.GridFile == "" {
		return nil, nil
	}
	return model.LoadGridOverrides(p.config.Paths.GridFile)
}

func (p *Pipeline) seeds() run.Seeds {
	return run.Seeds{
		Split: p.config.Seeds.Split,
		Folds: p.config.Seeds.Folds,
		Model: p.config.Seeds.Model,
	}
}

func (p *Pipeline) knobs() run.Knobs {
	return run.Knobs{
		TrainRatio:   p.config.Split.TrainRatio,
		Folds:        p.config.Split.Folds,
		CorrCutoff:   p.config.Recipe.CorrCutoff,
		FreqCut:      p.config.Recipe.FreqCut,
		UniqueCut:    p.config.Recipe.UniqueCut,
		LinearPasses: p.config.Tuning.LinearPasses,
		GridWorkers:  p.config.WorkerPool.GridWorkers,
	}
}

// writeManifest persists the manifest next to the report artifacts.
func (p *Pipeline) writeManifest(m *run.Manifest) error {
	if err := os.MkdirAll(p.config.Paths.ReportDir, 0o755); err != nil {
		return errors.StoreError("creating report directory", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding run manifest")
	}
	path := filepath.Join(p.config.Paths.ReportDir, "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.StoreError("writing run manifest", err)
	}
	return nil
}
