package app

import (
	"context"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/features"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/profile"
	"github.com/SabreenNoorAli/final-project-EDLD654/ports"
)

// FeatureService runs stage one: study files in, wide feature table out.
type FeatureService struct {
	reader   ports.TableReader
	writer   ports.TableWriter
	store    ports.FeatureStore // nil disables the cache
	builder  *features.Builder
	profiler *profile.Profiler
	logger   *logging.Logger
}

// GenerateRequest defines the inputs for a feature-generation pass.
type GenerateRequest struct {
	StudyFiles  []string
	Sources     features.Sources
	FeaturesOut string // CSV destination, empty skips the file
	CacheName   string // feature-store table name, empty skips the cache
}

// GenerateResult is the stage-one output.
type GenerateResult struct {
	Table     *survey.Table
	Blocks    []features.Block
	Profiles  []profile.ColumnProfile
	Documents int
	RuntimeMs int64
}

// NewFeatureService creates the stage-one service.
func NewFeatureService(reader ports.TableReader, writer ports.TableWriter, store ports.FeatureStore, logger *logging.Logger) *FeatureService {
	return &FeatureService{
		reader:   reader,
		writer:   writer,
		store:    store,
		builder:  features.NewBuilder(reader, logger),
		profiler: profile.NewProfiler(),
		logger:   logger,
	}
}

// Generate reads and concatenates the study files, computes every feature
// block over the text column, profiles the wide table, and persists it.
func (s *FeatureService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startTime := time.Now()

	base, err := s.loadStudies(req.StudyFiles)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[Features] loaded %d documents from %d study files", base.NumRows(), len(req.StudyFiles))

	wide, blocks, err := s.builder.Build(ctx, base, req.Sources)
	if err != nil {
		return nil, err
	}

	profiles := s.profiler.ProfileTable(wide, survey.DefaultRoles())

	if req.FeaturesOut != "" {
		if err := s.writer.WriteTable(req.FeaturesOut, wide); err != nil {
			return nil, errors.Wrapf(err, "writing feature table to %s", req.FeaturesOut)
		}
	}
	if s.store != nil && req.CacheName != "" {
		if err := s.store.SaveTable(ctx, req.CacheName, wide); err != nil {
			return nil, errors.Wrap(err, "caching feature table")
		}
	}

	return &GenerateResult{
		Table:     wide,
		Blocks:    blocks,
		Profiles:  profiles,
		Documents: wide.NumRows(),
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// loadStudies reads each study file and concatenates rows. Column sets must
// agree across studies; a mismatch is a data defect, not something to paper
// over.
func (s *FeatureService) loadStudies(paths []string) (*survey.Table, error) {
	if len(paths) == 0 {
		return nil, errors.InvalidInput("at least one study file is required")
	}

	var combined *survey.Table
	for _, path := range paths {
		study, err := s.reader.ReadTable(path)
		if err != nil {
			return nil, err
		}
		if !study.HasColumn(survey.ColText) {
			return nil, errors.InvalidInput("study file " + path + " has no " + survey.ColText + " column")
		}
		if combined == nil {
			combined = study
			continue
		}
		if err := combined.AppendRows(study); err != nil {
			return nil, errors.Wrapf(err, "concatenating study file %s", path)
		}
	}
	return combined, nil
}
