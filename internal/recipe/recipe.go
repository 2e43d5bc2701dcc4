// Package recipe implements the preprocessing blueprint: an ordered list of
// column transformations fit only on the training partition, then applied
// identically to both partitions. Which columns are dropped and which
// constants are used derive from training statistics alone, so the test
// partition can never leak into preprocessing.
package recipe

import (
	"fmt"
	"log"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

// Step is one fitted column transformation.
type Step interface {
	Name() string
	// Fit learns the step's state from the training partition, which has
	// already passed through every earlier step.
	Fit(train *survey.Table) error
	// Apply transforms a table using the fitted state.
	Apply(t *survey.Table) (*survey.Table, error)
	// Dropped lists columns this step removed, fit-time.
	Dropped() []string
}

// Config holds the recipe thresholds.
type Config struct {
	FreqCut    float64 // near-zero-variance frequency ratio cutoff
	UniqueCut  float64 // near-zero-variance unique-percent cutoff
	CorrCutoff float64 // pairwise absolute correlation cutoff
}

// DefaultConfig mirrors the conventional caret defaults.
func DefaultConfig() Config {
	return Config{FreqCut: 19.0, UniqueCut: 10.0, CorrCutoff: 0.8}
}

// Blueprint is the fitted, ordered preprocessing recipe for one outcome.
type Blueprint struct {
	roles  survey.Roles
	steps  []Step
	fitted bool
}

// NewBlueprint builds the step sequence in its fixed order. leakage names
// the columns that must never be predictors for this outcome (the other
// outcome variable and the condition label).
func NewBlueprint(roles survey.Roles, config Config, leakage ...string) *Blueprint {
	return &Blueprint{
		roles: roles,
		steps: []Step{
			NewRemoveColumns(leakage...),
			NewZeroVariance(roles),
			NewNearZeroVariance(roles, config.FreqCut, config.UniqueCut),
			NewImputeMean(roles),
			NewNormalize(roles),
			NewCorrelationFilter(roles, config.CorrCutoff),
		},
	}
}

// Fit learns every step from the training partition, feeding each step the
// output of the steps before it.
func (b *Blueprint) Fit(train *survey.Table) error {
	current := train
	for _, step := range b.steps {
		if err := step.Fit(current); err != nil {
			return fmt.Errorf("recipe step %s failed to fit: %w", step.Name(), err)
		}
		next, err := step.Apply(current)
		if err != nil {
			return fmt.Errorf("recipe step %s failed to apply during fit: %w", step.Name(), err)
		}
		if dropped := step.Dropped(); len(dropped) > 0 {
			log.Printf("[Recipe] Step %s dropped %d columns", step.Name(), len(dropped))
		}
		current = next
	}
	b.fitted = true
	return nil
}

// Apply runs the fitted steps over a table. Fit must have been called.
func (b *Blueprint) Apply(t *survey.Table) (*survey.Table, error) {
	if !b.fitted {
		return nil, fmt.Errorf("blueprint must be fitted before apply")
	}
	current := t
	for _, step := range b.steps {
		next, err := step.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("recipe step %s failed: %w", step.Name(), err)
		}
		current = next
	}
	return current, nil
}

// DroppedColumns maps each dropped column to the step that removed it.
func (b *Blueprint) DroppedColumns() map[string]string {
	dropped := make(map[string]string)
	for _, step := range b.steps {
		for _, col := range step.Dropped() {
			if _, seen := dropped[col]; !seen {
				dropped[col] = step.Name()
			}
		}
	}
	return dropped
}
