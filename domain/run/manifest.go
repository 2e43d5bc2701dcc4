package run

import (
	"time"

	"github.com/google/uuid"
)

// Knobs records every configuration value that shapes the analysis, so a
// manifest is sufficient to replay a run exactly.
type Knobs struct {
	TrainRatio   float64 `json:"train_ratio"`
	Folds        int     `json:"folds"`
	CorrCutoff   float64 `json:"corr_cutoff"`
	FreqCut      float64 `json:"freq_cut"`
	UniqueCut    float64 `json:"unique_cut"`
	LinearPasses int     `json:"linear_passes"`
	GridWorkers  int     `json:"grid_workers"`
}

// Seeds records the per-stage random seeds.
type Seeds struct {
	Split int64 `json:"split"`
	Folds int64 `json:"folds"`
	Model int64 `json:"model"`
}

// StageTiming records wall-clock duration for one pipeline stage.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// Manifest is the truth source for one pipeline run: identity, inputs,
// configuration, and outcome counts. It must be written before the run's
// result artifacts are trusted.
type Manifest struct {
	RunID       string        `json:"run_id"`
	CreatedAt   time.Time     `json:"created_at"`
	Seeds       Seeds         `json:"seeds"`
	Knobs       Knobs         `json:"knobs"`
	Documents   int           `json:"documents"`
	FeatureCols int           `json:"feature_cols"`
	Blocks      []string      `json:"blocks,omitempty"`
	Timings     []StageTiming `json:"timings,omitempty"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// NewManifest creates a manifest with a fresh run identifier.
func NewManifest(seeds Seeds, knobs Knobs) *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Seeds:     seeds,
		Knobs:     knobs,
	}
}

// RecordStage appends a stage timing.
func (m *Manifest) RecordStage(stage string, start time.Time) {
	m.Timings = append(m.Timings, StageTiming{Stage: stage, Duration: time.Since(start)})
}

// Warn appends a run-level warning message.
func (m *Manifest) Warn(message string) {
	m.Warnings = append(m.Warnings, message)
}
