package ports

import "github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"

// TableReader loads a tabular artifact (study file, embeddings, precomputed
// score table) into a survey table.
type TableReader interface {
	ReadTable(path string) (*survey.Table, error)
}

// TableWriter persists a survey table to a tabular artifact.
type TableWriter interface {
	WriteTable(path string, table *survey.Table) error
}
