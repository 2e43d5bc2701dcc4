// Package textstats computes surface statistics over free-text responses:
// character, sentence, token, and type counts, type-distribution entropy,
// and word-length summaries. Empty documents yield zero counts and NaN
// summaries, which the preprocessing recipe later imputes.
package textstats

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// DocumentStats holds one document's surface statistics.
type DocumentStats struct {
	Chars        int
	Sentences    int
	Tokens       int
	Types        int
	Entropy      float64
	WordLenMean  float64
	WordLenMed   float64
	WordLenSD    float64
	WordLenMin   float64
	WordLenMax   float64
}

// Analyzer computes surface statistics with a fixed tokenizer configuration.
type Analyzer struct {
	config TokenizerConfig
}

// NewAnalyzer creates an analyzer. A nil config uses the defaults.
func NewAnalyzer(config *TokenizerConfig) *Analyzer {
	if config == nil {
		def := DefaultTokenizerConfig()
		return &Analyzer{config: def}
	}
	return &Analyzer{config: *config}
}

// Analyze computes the statistics for one document. Token counts and the
// type and length summaries cover whichever token classes the analyzer's
// configuration keeps.
func (a *Analyzer) Analyze(text string) DocumentStats {
	ds := DocumentStats{
		Chars:     countChars(text, a.config.RemoveSeparators),
		Sentences: len(Sentences(text)),
	}

	tokens := Tokenize(text, a.config)
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, strings.ToLower(tok.Text))
	}
	ds.Tokens = len(words)

	typeCounts := make(map[string]int, len(words))
	lengths := make([]float64, len(words))
	for i, w := range words {
		typeCounts[w]++
		lengths[i] = float64(utf8.RuneCountInString(w))
	}
	ds.Types = len(typeCounts)
	ds.Entropy = typeEntropy(typeCounts, len(words))

	if len(lengths) == 0 {
		nan := math.NaN()
		ds.WordLenMean, ds.WordLenMed, ds.WordLenSD, ds.WordLenMin, ds.WordLenMax = nan, nan, nan, nan, nan
		return ds
	}

	// montanaflynn errors only on empty input, which is excluded above.
	ds.WordLenMean, _ = stats.Mean(lengths)
	ds.WordLenMed, _ = stats.Median(lengths)
	ds.WordLenMin, _ = stats.Min(lengths)
	ds.WordLenMax, _ = stats.Max(lengths)
	if len(lengths) > 1 {
		ds.WordLenSD, _ = stats.StandardDeviationSample(lengths)
	} else {
		ds.WordLenSD = 0
	}
	return ds
}

// typeEntropy computes the Shannon entropy (base 2) of the type
// distribution. Zero tokens yields zero entropy.
func typeEntropy(typeCounts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	entropy := 0.0
	for _, count := range typeCounts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// countChars counts runes, optionally excluding separator runes.
func countChars(text string, removeSeparators bool) int {
	count := 0
	for _, r := range text {
		if removeSeparators && unicode.IsSpace(r) {
			continue
		}
		count++
	}
	return count
}
