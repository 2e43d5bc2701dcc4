package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete pipeline configuration
type Config struct {
	Paths      PathConfig
	Split      SplitConfig
	Recipe     RecipeConfig
	Tuning     TuningConfig
	Seeds      SeedConfig
	WorkerPool WorkerConfig
}

// PathConfig holds file system paths for input artifacts and outputs
type PathConfig struct {
	StudyFiles     []string // one tabular file per study
	EmbeddingsFile string   // precomputed dense embeddings, one row per document
	LIWCDict       string   // LIWC-format dictionary file
	LIWCTable      string   // optional precomputed LIWC score table (bypasses in-pipeline scoring)
	MFDict         string   // moral foundations dictionary file
	MFTable        string   // optional precomputed MFD score table
	TaggerModel    string   // optional POS tagger model directory (empty = built-in English)
	FeaturesOut    string   // wide feature table destination
	CacheDB        string   // SQLite feature cache
	ReportDir      string   // results tables, importances, plot data
	GridFile       string   // optional JSON hyperparameter grid overrides
}

// SplitConfig holds partitioning settings
type SplitConfig struct {
	TrainRatio float64 // proportion of rows in the training partition
	Folds      int     // cross-validation fold count
}

// RecipeConfig holds preprocessing thresholds
type RecipeConfig struct {
	FreqCut    float64 // near-zero-variance frequency ratio cutoff (most common / second most common)
	UniqueCut  float64 // near-zero-variance unique-percent cutoff
	CorrCutoff float64 // pairwise absolute correlation cutoff
}

// TuningConfig holds hyperparameter search settings
type TuningConfig struct {
	LinearPasses int // narrowing passes over the linear penalty grid
}

// SeedConfig holds the per-stage random seeds (reproducibility over liveness)
type SeedConfig struct {
	Split int64
	Folds int64
	Model int64
}

// WorkerConfig bounds the data-parallel grid evaluation
type WorkerConfig struct {
	GridWorkers int
}

// Load reads configuration from a .env file (if present) and environment
// variables, then validates it.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment wins either way.
	_ = godotenv.Load()

	config := &Config{
		Paths:      loadPathConfig(),
		Split:      loadSplitConfig(),
		Recipe:     loadRecipeConfig(),
		Tuning:     loadTuningConfig(),
		Seeds:      loadSeedConfig(),
		WorkerPool: loadWorkerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadPathConfig() PathConfig {
	return PathConfig{
		StudyFiles:     splitList(getEnvOrDefault("STUDY_FILES", "")),
		EmbeddingsFile: getEnvOrDefault("EMBEDDINGS_FILE", ""),
		LIWCDict:       getEnvOrDefault("LIWC_DICT", ""),
		LIWCTable:      getEnvOrDefault("LIWC_TABLE", ""),
		MFDict:         getEnvOrDefault("MFD_DICT", ""),
		MFTable:        getEnvOrDefault("MFD_TABLE", ""),
		TaggerModel:    getEnvOrDefault("TAGGER_MODEL", ""),
		FeaturesOut:    getEnvOrDefault("FEATURES_OUT", "features.csv"),
		CacheDB:        getEnvOrDefault("CACHE_DB", "features.db"),
		ReportDir:      getEnvOrDefault("REPORT_DIR", "report"),
		GridFile:       getEnvOrDefault("GRID_FILE", ""),
	}
}

func loadSplitConfig() SplitConfig {
	return SplitConfig{
		TrainRatio: getEnvFloatOrDefault("TRAIN_RATIO", 0.8),
		Folds:      getEnvIntOrDefault("CV_FOLDS", 10),
	}
}

func loadRecipeConfig() RecipeConfig {
	return RecipeConfig{
		FreqCut:    getEnvFloatOrDefault("NZV_FREQ_CUT", 19.0), // caret's 95/5 default
		UniqueCut:  getEnvFloatOrDefault("NZV_UNIQUE_CUT", 10.0),
		CorrCutoff: getEnvFloatOrDefault("CORR_CUTOFF", 0.8),
	}
}

func loadTuningConfig() TuningConfig {
	return TuningConfig{
		LinearPasses: getEnvIntOrDefault("LINEAR_PASSES", 3),
	}
}

func loadSeedConfig() SeedConfig {
	return SeedConfig{
		Split: getEnvInt64OrDefault("SEED_SPLIT", 3000),
		Folds: getEnvInt64OrDefault("SEED_FOLDS", 3001),
		Model: getEnvInt64OrDefault("SEED_MODEL", 3002),
	}
}

func loadWorkerConfig() WorkerConfig {
	return WorkerConfig{
		GridWorkers: getEnvIntOrDefault("GRID_WORKERS", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Split.TrainRatio <= 0 || config.Split.TrainRatio >= 1 {
		return errors.ConfigInvalid("TRAIN_RATIO must be in (0, 1)")
	}
	if config.Split.Folds < 2 {
		return errors.ConfigInvalid("CV_FOLDS must be at least 2")
	}
	if config.Recipe.CorrCutoff <= 0 || config.Recipe.CorrCutoff > 1 {
		return errors.ConfigInvalid("CORR_CUTOFF must be in (0, 1]")
	}
	if config.Recipe.FreqCut <= 1 {
		return errors.ConfigInvalid("NZV_FREQ_CUT must be greater than 1")
	}
	if config.WorkerPool.GridWorkers < 1 {
		return errors.ConfigInvalid("GRID_WORKERS must be at least 1")
	}
	return nil
}

// splitList parses a comma-separated list, trimming blanks.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
