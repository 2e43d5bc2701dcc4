// Package features orchestrates stage one of the pipeline: every feature
// block is computed per document, merged column-wise onto the study table,
// and the result is one wide row per document.
package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/annotate"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/embedding"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/lexdiv"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/lexicon"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/readability"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/textstats"
	"github.com/SabreenNoorAli/final-project-EDLD654/ports"
)

// Block records one merged feature block for the run manifest.
type Block struct {
	Name    string `json:"name"`
	Columns int    `json:"columns"`
}

// Sources selects the optional feature blocks. Empty paths skip the block.
type Sources struct {
	EmbeddingsFile string
	LIWCDict       string
	LIWCTable      string // precomputed score table, bypasses LIWCDict
	MFDict         string
	MFTable        string
	TaggerModel    string
}

// Builder derives the wide feature table from a bound study table.
type Builder struct {
	reader   ports.TableReader
	analyzer *textstats.Analyzer
	logger   *logging.Logger
}

// NewBuilder creates a feature builder reading optional artifacts through
// the given table reader.
func NewBuilder(reader ports.TableReader, logger *logging.Logger) *Builder {
	return &Builder{
		reader:   reader,
		analyzer: textstats.NewAnalyzer(nil),
		logger:   logger,
	}
}

// Build computes every configured feature block over the text column and
// merges them onto a copy of the base table. The row count is asserted
// stable after every merge: a block that changes it is a hard error, never
// a silent misalignment.
func (b *Builder) Build(ctx context.Context, base *survey.Table, sources Sources) (*survey.Table, []Block, error) {
	texts, err := base.TextColumn(survey.ColText)
	if err != nil {
		return nil, nil, errors.Wrap(err, "feature build requires a text column")
	}

	wide := base.Clone()
	var blocks []Block

	merge := func(name string, block *survey.Table) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := wide.NumRows()
		if err := wide.BindColumns(block); err != nil {
			return errors.Wrapf(err, "merging %s block", name)
		}
		if wide.NumRows() != before {
			return errors.InternalError(fmt.Sprintf("%s block changed row count from %d to %d", name, before, wide.NumRows()))
		}
		blocks = append(blocks, Block{Name: name, Columns: block.NumCols()})
		b.logger.Info("[Features] merged %s block: %d columns over %d rows", name, block.NumCols(), wide.NumRows())
		return nil
	}

	if err := merge("surface", b.surfaceBlock(texts)); err != nil {
		return nil, nil, err
	}
	if err := merge("lexdiv", b.lexdivBlock(texts)); err != nil {
		return nil, nil, err
	}
	if err := merge("readability", b.readabilityBlock(texts)); err != nil {
		return nil, nil, err
	}

	tagBlock, err := b.annotationBlock(ctx, texts, sources.TaggerModel)
	if err != nil {
		return nil, nil, err
	}
	if err := merge("annotation", tagBlock); err != nil {
		return nil, nil, err
	}

	liwcBlock, err := b.dictionaryBlock(texts, "liwc", sources.LIWCDict, sources.LIWCTable)
	if err != nil {
		return nil, nil, err
	}
	if liwcBlock != nil {
		if err := merge("liwc", liwcBlock); err != nil {
			return nil, nil, err
		}
	}

	mfBlock, err := b.dictionaryBlock(texts, "mf", sources.MFDict, sources.MFTable)
	if err != nil {
		return nil, nil, err
	}
	if mfBlock != nil {
		if err := merge("moral_foundations", mfBlock); err != nil {
			return nil, nil, err
		}
	}

	if sources.EmbeddingsFile != "" {
		embBlock, err := embedding.Load(b.reader, sources.EmbeddingsFile, len(texts))
		if err != nil {
			return nil, nil, err
		}
		if err := merge("embeddings", embBlock); err != nil {
			return nil, nil, err
		}
	}

	return wide, blocks, nil
}

// surfaceBlock computes per-document surface statistics.
func (b *Builder) surfaceBlock(texts []string) *survey.Table {
	n := len(texts)
	cols := map[string][]float64{
		"n_chars": make([]float64, n), "n_sents": make([]float64, n),
		"n_tokens": make([]float64, n), "n_types": make([]float64, n),
		"entropy": make([]float64, n), "wordlen_mean": make([]float64, n),
		"wordlen_median": make([]float64, n), "wordlen_sd": make([]float64, n),
		"wordlen_min": make([]float64, n), "wordlen_max": make([]float64, n),
	}
	for i, text := range texts {
		s := b.analyzer.Analyze(text)
		cols["n_chars"][i] = float64(s.Chars)
		cols["n_sents"][i] = float64(s.Sentences)
		cols["n_tokens"][i] = float64(s.Tokens)
		cols["n_types"][i] = float64(s.Types)
		cols["entropy"][i] = s.Entropy
		cols["wordlen_mean"][i] = s.WordLenMean
		cols["wordlen_median"][i] = s.WordLenMed
		cols["wordlen_sd"][i] = s.WordLenSD
		cols["wordlen_min"][i] = s.WordLenMin
		cols["wordlen_max"][i] = s.WordLenMax
	}
	return numericTable([]string{
		"n_chars", "n_sents", "n_tokens", "n_types", "entropy",
		"wordlen_mean", "wordlen_median", "wordlen_sd", "wordlen_min", "wordlen_max",
	}, cols)
}

// lexdivBlock computes lexical-diversity indices.
func (b *Builder) lexdivBlock(texts []string) *survey.Table {
	n := len(texts)
	cols := map[string][]float64{
		"ttr": make([]float64, n), "root_ttr": make([]float64, n),
		"log_ttr": make([]float64, n), "cttr": make([]float64, n),
		"uber": make([]float64, n), "summer": make([]float64, n),
		"maas": make([]float64, n), "mattr": make([]float64, n),
	}
	for i, text := range texts {
		m := lexdiv.Compute(textstats.Words(text))
		cols["ttr"][i] = m.TTR
		cols["root_ttr"][i] = m.RootTTR
		cols["log_ttr"][i] = m.LogTTR
		cols["cttr"][i] = m.CTTR
		cols["uber"][i] = m.Uber
		cols["summer"][i] = m.Summer
		cols["maas"][i] = m.Maas
		cols["mattr"][i] = m.MATTR
	}
	return numericTable([]string{
		"ttr", "root_ttr", "log_ttr", "cttr", "uber", "summer", "maas", "mattr",
	}, cols)
}

// readabilityBlock computes readability indices.
func (b *Builder) readabilityBlock(texts []string) *survey.Table {
	n := len(texts)
	cols := map[string][]float64{
		"flesch_reading_ease": make([]float64, n), "flesch_kincaid": make([]float64, n),
		"ari": make([]float64, n), "coleman_liau": make([]float64, n),
		"smog": make([]float64, n), "gunning_fog": make([]float64, n),
		"lix": make([]float64, n), "rix": make([]float64, n),
	}
	for i, text := range texts {
		m := readability.Compute(text)
		cols["flesch_reading_ease"][i] = m.FleschReadingEase
		cols["flesch_kincaid"][i] = m.FleschKincaid
		cols["ari"][i] = m.ARI
		cols["coleman_liau"][i] = m.ColemanLiau
		cols["smog"][i] = m.SMOG
		cols["gunning_fog"][i] = m.GunningFog
		cols["lix"][i] = m.LIX
		cols["rix"][i] = m.RIX
	}
	return numericTable([]string{
		"flesch_reading_ease", "flesch_kincaid", "ari", "coleman_liau",
		"smog", "gunning_fog", "lix", "rix",
	}, cols)
}

// annotationBlock tags each document and pivots the tag counts wide.
func (b *Builder) annotationBlock(ctx context.Context, texts []string, modelPath string) (*survey.Table, error) {
	annotator, err := annotate.NewAnnotator(annotate.Config{ModelPath: modelPath})
	if err != nil {
		return nil, err
	}
	annotations := make([]annotate.DocAnnotation, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ann, err := annotator.Annotate(text)
		if err != nil {
			return nil, errors.Wrapf(err, "annotating document %d", i)
		}
		annotations[i] = ann
	}
	return annotate.Pivot(annotations)
}

// dictionaryBlock scores text against a dictionary, or loads a precomputed
// score table when one is supplied. Neither path configured skips the block.
func (b *Builder) dictionaryBlock(texts []string, prefix, dictPath, tablePath string) (*survey.Table, error) {
	if tablePath != "" {
		return b.precomputedBlock(texts, prefix, tablePath)
	}
	if dictPath == "" {
		return nil, nil
	}

	dict, err := lexicon.LoadDictionary(prefix, dictPath)
	if err != nil {
		return nil, err
	}
	categories := dict.Categories()
	n := len(texts)
	cols := make(map[string][]float64, len(categories))
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		name := prefix + "_" + sanitizeColumn(cat)
		names = append(names, name)
		cols[name] = make([]float64, n)
	}
	for i, text := range texts {
		scores := dict.Score(textstats.Words(text))
		for j, cat := range categories {
			cols[names[j]][i] = scores.Rates[cat]
		}
	}
	return numericTable(names, cols), nil
}

// precomputedBlock merges an externally scored table by row order. Its row
// count must match the document count exactly.
func (b *Builder) precomputedBlock(texts []string, prefix, path string) (*survey.Table, error) {
	scored, err := b.reader.ReadTable(path)
	if err != nil {
		return nil, err
	}
	if scored.NumRows() != len(texts) {
		return nil, errors.InvalidInput(fmt.Sprintf(
			"precomputed %s table has %d rows, expected %d", prefix, scored.NumRows(), len(texts)))
	}

	block := survey.NewTable()
	for _, name := range scored.ColumnNames() {
		values, err := scored.Float64Column(name)
		if err != nil {
			continue // non-numeric bookkeeping columns are skipped
		}
		out := name
		if !strings.HasPrefix(out, prefix+"_") {
			out = prefix + "_" + sanitizeColumn(name)
		}
		if err := block.AddNumericColumn(out, values); err != nil {
			return nil, errors.Wrapf(err, "loading precomputed %s table", prefix)
		}
	}
	if block.NumCols() == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("precomputed %s table %s has no numeric columns", prefix, path))
	}
	return block, nil
}

// numericTable assembles a block table with columns in a fixed order.
func numericTable(order []string, cols map[string][]float64) *survey.Table {
	t := survey.NewTable()
	for _, name := range order {
		// AddNumericColumn only fails on row-count mismatch, which cannot
		// happen for slices allocated to the shared length.
		_ = t.AddNumericColumn(name, cols[name])
	}
	return t
}

// sanitizeColumn lowercases and normalizes a category name for use as a
// column name.
func sanitizeColumn(name string) string {
	out := strings.ToLower(strings.TrimSpace(name))
	out = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, out)
	return strings.Trim(out, "_")
}
