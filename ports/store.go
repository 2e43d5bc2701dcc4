package ports

import (
	"context"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

// TableManifest describes a cached feature table without loading it.
type TableManifest struct {
	Name    string
	Rows    int
	Cols    int
	SavedAt time.Time
}

// FeatureStore caches the wide feature table between pipeline stages, so
// the modeling stage can restart without regenerating features.
type FeatureStore interface {
	SaveTable(ctx context.Context, name string, table *survey.Table) error
	LoadTable(ctx context.Context, name string) (*survey.Table, error)
	Manifest(ctx context.Context, name string) (*TableManifest, error)
	Close() error
}
