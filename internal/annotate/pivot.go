package annotate

import (
	"fmt"
	"sort"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
)

// Column prefixes for the three tag families.
const (
	PrefixPOS   = "pos_"
	PrefixMorph = "morph_"
	PrefixDep   = "dep_"
)

// Pivot turns per-document annotations into a wide table: one column per
// tag value observed anywhere in the corpus, one row per document, absent
// tags filled with zero. Column order is alphabetical within each family so
// the output schema is deterministic.
func Pivot(annotations []DocAnnotation) (*survey.Table, error) {
	posTags := collectTags(annotations, func(a DocAnnotation) map[string]int { return a.POS })
	morphTags := collectTags(annotations, func(a DocAnnotation) map[string]int { return a.Morph })
	depTags := collectTags(annotations, func(a DocAnnotation) map[string]int { return a.Dep })

	table := survey.NewTable()
	tokens := make([]float64, len(annotations))
	for i, a := range annotations {
		tokens[i] = float64(a.Tokens)
	}
	if err := table.AddNumericColumn("pos_tokens", tokens); err != nil {
		return nil, err
	}

	add := func(prefix string, tags []string, get func(DocAnnotation) map[string]int) error {
		for _, tag := range tags {
			values := make([]float64, len(annotations))
			for i, a := range annotations {
				values[i] = float64(get(a)[tag]) // absent tag reads as zero
			}
			if err := table.AddNumericColumn(prefix+sanitize(tag), values); err != nil {
				return fmt.Errorf("failed to add tag column %s%s: %w", prefix, tag, err)
			}
		}
		return nil
	}

	if err := add(PrefixPOS, posTags, func(a DocAnnotation) map[string]int { return a.POS }); err != nil {
		return nil, err
	}
	if err := add(PrefixMorph, morphTags, func(a DocAnnotation) map[string]int { return a.Morph }); err != nil {
		return nil, err
	}
	if err := add(PrefixDep, depTags, func(a DocAnnotation) map[string]int { return a.Dep }); err != nil {
		return nil, err
	}
	return table, nil
}

func collectTags(annotations []DocAnnotation, get func(DocAnnotation) map[string]int) []string {
	seen := make(map[string]bool)
	for _, a := range annotations {
		for tag := range get(a) {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// sanitize makes a tag value safe as a column-name suffix.
func sanitize(tag string) string {
	out := make([]rune, 0, len(tag))
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+'a'-'A')
		case r == '=' || r == '-' || r == ' ':
			out = append(out, '_')
		}
	}
	return string(out)
}
