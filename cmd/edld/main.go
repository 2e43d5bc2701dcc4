package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/adapters/store"
	"github.com/SabreenNoorAli/final-project-EDLD654/adapters/tabular"
	"github.com/SabreenNoorAli/final-project-EDLD654/app"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/run"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/config"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/features"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/model"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/recipe"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/report"
	"github.com/SabreenNoorAli/final-project-EDLD654/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "edld",
		Short: "Text feature generation and outcome modeling for behavioral study data",
	}

	rootCmd.AddCommand(
		newFeaturesCmd(),
		newModelCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFeaturesCmd() *cobra.Command {
	var inputs []string
	var embeddingsFile, liwcDict, liwcTable, mfDict, mfTable, taggerModel, out, cacheDB string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Generate the wide feature table from study files",
		Long: `Read one or more tabular study files, compute every feature block over
the free-text column, and write the merged wide table.

Example: edld features --input study1.xlsx --input study2.xlsx --liwc liwc.dic --mfd mfd.dic --out features.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyOverride(&inputs, cfg.Paths.StudyFiles)
			applyStringOverride(&embeddingsFile, cfg.Paths.EmbeddingsFile)
			applyStringOverride(&liwcDict, cfg.Paths.LIWCDict)
			applyStringOverride(&liwcTable, cfg.Paths.LIWCTable)
			applyStringOverride(&mfDict, cfg.Paths.MFDict)
			applyStringOverride(&mfTable, cfg.Paths.MFTable)
			applyStringOverride(&taggerModel, cfg.Paths.TaggerModel)
			applyStringOverride(&out, cfg.Paths.FeaturesOut)
			applyStringOverride(&cacheDB, cfg.Paths.CacheDB)

			logger := logging.NewDefaultLogger()
			featureStore, err := openStore(cacheDB)
			if err != nil {
				return err
			}
			if featureStore != nil {
				defer featureStore.Close()
			}

			svc := app.NewFeatureService(tabular.NewReader(), tabular.NewWriter(), featureStore, logger)
			result, err := svc.Generate(cmd.Context(), app.GenerateRequest{
				StudyFiles: inputs,
				Sources: features.Sources{
					EmbeddingsFile: embeddingsFile,
					LIWCDict:       liwcDict,
					LIWCTable:      liwcTable,
					MFDict:         mfDict,
					MFTable:        mfTable,
					TaggerModel:    taggerModel,
				},
				FeaturesOut: out,
				CacheName:   "features",
			})
			if err != nil {
				return err
			}

			fmt.Printf("Generated %d feature columns over %d documents in %dms\n",
				result.Table.NumCols(), result.Documents, result.RuntimeMs)
			for _, block := range result.Blocks {
				fmt.Printf("  %s: %d columns\n", block.Name, block.Columns)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&inputs, "input", nil, "Study file (.csv or .xlsx); repeatable")
	cmd.Flags().StringVar(&embeddingsFile, "embeddings", "", "Precomputed document embeddings file")
	cmd.Flags().StringVar(&liwcDict, "liwc", "", "LIWC-format dictionary file")
	cmd.Flags().StringVar(&liwcTable, "liwc-table", "", "Precomputed LIWC score table (bypasses --liwc)")
	cmd.Flags().StringVar(&mfDict, "mfd", "", "Moral foundations dictionary file")
	cmd.Flags().StringVar(&mfTable, "mfd-table", "", "Precomputed MFD score table (bypasses --mfd)")
	cmd.Flags().StringVar(&taggerModel, "tagger-model", "", "POS tagger model directory (empty = built-in English)")
	cmd.Flags().StringVar(&out, "out", "", "Feature table destination CSV")
	cmd.Flags().StringVar(&cacheDB, "cache-db", "", "SQLite feature cache path (empty = no cache)")

	return cmd
}

func newModelCmd() *cobra.Command {
	var featuresFile, outcome, reportDir, gridFile string
	var trainRatio float64
	var folds, linearPasses, workers int
	var seedSplit, seedFolds, seedModel int64

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Train and evaluate all model families on a feature table",
		Long: `Load a wide feature table, split it, tune ridge, lasso, and boosted
trees by cross-validation, and evaluate the winners held out.

Example: edld model --features features.csv --outcome both --report-dir report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyStringOverride(&featuresFile, cfg.Paths.FeaturesOut)
			applyStringOverride(&reportDir, cfg.Paths.ReportDir)
			applyStringOverride(&gridFile, cfg.Paths.GridFile)

			outcomes, err := resolveOutcomes(outcome)
			if err != nil {
				return err
			}

			logger := logging.NewDefaultLogger()
			table, err := loadFeatureTable(cmd.Context(), featuresFile, cfg.Paths.CacheDB, logger)
			if err != nil {
				return err
			}

			var overrides *model.GridOverrides
			if gridFile != "" {
				if overrides, err = model.LoadGridOverrides(gridFile); err != nil {
					return err
				}
			}

			svc := app.NewModelService(logger)
			var results []report.OutcomeResults
			for _, out := range outcomes {
				trained, err := svc.TrainOutcome(cmd.Context(), app.TrainRequest{
					Table:      table,
					Outcome:    out,
					TrainRatio: trainRatio,
					Folds:      folds,
					Recipe: recipe.Config{
						FreqCut:    cfg.Recipe.FreqCut,
						UniqueCut:  cfg.Recipe.UniqueCut,
						CorrCutoff: cfg.Recipe.CorrCutoff,
					},
					Seeds:        runSeeds(seedSplit, seedFolds, seedModel),
					LinearPasses: linearPasses,
					GridWorkers:  workers,
					Overrides:    overrides,
				})
				if err != nil {
					return err
				}
				results = append(results, report.OutcomeResults{
					Outcome:     trained.Outcome,
					Records:     trained.Records,
					Importances: trained.Importances,
					Predictions: trained.Predictions,
				})
				printFits(trained)
			}

			return report.NewReporter(logger).Write(reportDir, results, nil)
		},
	}

	cmd.Flags().StringVar(&featuresFile, "features", "", "Wide feature table (.csv or .xlsx)")
	cmd.Flags().StringVar(&outcome, "outcome", "both", "Outcome to model: p_right, t_right, or both")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Report artifact directory")
	cmd.Flags().StringVar(&gridFile, "grid-file", "", "JSON hyperparameter grid overrides")
	cmd.Flags().Float64Var(&trainRatio, "train-ratio", 0.8, "Training partition proportion")
	cmd.Flags().IntVar(&folds, "folds", 10, "Cross-validation fold count")
	cmd.Flags().IntVar(&linearPasses, "linear-passes", 3, "Narrowing passes over the linear penalty grid")
	cmd.Flags().IntVar(&workers, "grid-workers", 4, "Parallel grid-evaluation workers")
	cmd.Flags().Int64Var(&seedSplit, "seed-split", 3000, "Train/test split seed")
	cmd.Flags().Int64Var(&seedFolds, "seed-folds", 3001, "Fold assignment seed")
	cmd.Flags().Int64Var(&seedModel, "seed-model", 3002, "Model fitting seed")

	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the complete pipeline: features, modeling, report",
		Long: `Execute both stages end to end using configuration from environment
variables (or a .env file) and write the run manifest with the report.

Example: STUDY_FILES=study1.xlsx,study2.xlsx LIWC_DICT=liwc.dic edld run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.NewDefaultLogger()
			featureStore, err := openStore(cfg.Paths.CacheDB)
			if err != nil {
				return err
			}
			if featureStore != nil {
				defer featureStore.Close()
			}

			pipeline := app.NewPipeline(cfg,
				app.NewFeatureService(tabular.NewReader(), tabular.NewWriter(), featureStore, logger),
				app.NewModelService(logger),
				report.NewReporter(logger),
				logger)

			manifest, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
	return cmd
}

// loadFeatureTable reads the wide feature table, falling back to the SQLite
// cache when the tabular artifact is absent so stage two can restart without
// regenerating features.
func loadFeatureTable(ctx context.Context, path, cacheDB string, logger *logging.Logger) (*survey.Table, error) {
	table, err := tabular.NewReader().ReadTable(path)
	if err == nil {
		return table, nil
	}
	if errors.GetCode(err) != errors.CodeArtifactMissing || cacheDB == "" {
		return nil, err
	}

	logger.Warn("[CLI] feature table %s missing, falling back to cache %s", path, cacheDB)
	featureStore, storeErr := store.NewFeatureStore(cacheDB)
	if storeErr != nil {
		return nil, storeErr
	}
	defer featureStore.Close()
	return featureStore.LoadTable(ctx, "features")
}

// openStore opens the SQLite feature cache, or returns nil when no path is
// configured.
func openStore(path string) (ports.FeatureStore, error) {
	if path == "" {
		return nil, nil
	}
	return store.NewFeatureStore(path)
}

// resolveOutcomes expands the --outcome flag into concrete outcome columns.
func resolveOutcomes(flag string) ([]string, error) {
	switch strings.ToLower(flag) {
	case "both", "":
		return survey.Outcomes(), nil
	case survey.ColPRight:
		return []string{survey.ColPRight}, nil
	case survey.ColTRight:
		return []string{survey.ColTRight}, nil
	default:
		return nil, fmt.Errorf("unknown outcome %q (expected p_right, t_right, or both)", flag)
	}
}

func runSeeds(split, folds, model int64) run.Seeds {
	return run.Seeds{Split: split, Folds: folds, Model: model}
}

func printFits(result *app.TrainResult) {
	fmt.Printf("Outcome %s (%d train / %d test rows):\n", result.Outcome, result.TrainRows, result.TestRows)
	for _, rec := range result.Records {
		fmt.Printf("  %-6s MAE=%.4f RMSE=%.4f R2=%.4f", rec.Model, rec.MAE, rec.RMSE, rec.R2)
		if len(rec.Warnings) > 0 {
			fmt.Printf("  warnings=%v", rec.Warnings)
		}
		fmt.Println()
	}
}

// applyOverride keeps a flag value when set, falling back to config.
func applyOverride(flag *[]string, fromConfig []string) {
	if len(*flag) == 0 {
		*flag = fromConfig
	}
}

func applyStringOverride(flag *string, fromConfig string) {
	if *flag == "" {
		*flag = fromConfig
	}
}
