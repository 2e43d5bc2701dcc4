// Package embedding merges precomputed dense document embeddings, an
// external artifact keyed by row order, into the feature table.
package embedding

import (
	"fmt"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/ports"
)

// Load reads the embeddings table and validates it against the expected
// document count. Columns are renamed dim_1..dim_k regardless of how the
// artifact labels them; a row-count mismatch is fatal because the merge is
// by row order.
func Load(reader ports.TableReader, path string, documents int) (*survey.Table, error) {
	raw, err := reader.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if raw.NumRows() != documents {
		return nil, errors.InvalidInput(fmt.Sprintf(
			"embeddings table %s has %d rows, corpus has %d documents", path, raw.NumRows(), documents))
	}

	table := survey.NewTable()
	for k, name := range raw.ColumnNames() {
		values, err := raw.Float64Column(name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedding column %q: %w", name, err)
		}
		dim := make([]float64, len(values))
		copy(dim, values)
		if err := table.AddNumericColumn(fmt.Sprintf("dim_%d", k+1), dim); err != nil {
			return nil, err
		}
	}
	return table, nil
}
