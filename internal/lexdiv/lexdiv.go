// Package lexdiv computes named lexical-diversity indices summarizing
// vocabulary richness relative to text length. Degenerate inputs (no
// tokens, or too few for an index's formula) yield NaN, never a panic.
package lexdiv

import "math"

// Measures holds the per-document lexical-diversity indices.
type Measures struct {
	TTR     float64 // type-token ratio V/N
	RootTTR float64 // Guiraud's R: V/sqrt(N)
	LogTTR  float64 // Herdan's C: log V / log N
	CTTR    float64 // Carroll's corrected TTR: V/sqrt(2N)
	Uber    float64 // Dugast's Uber index: (log N)^2 / (log N - log V)
	Summer  float64 // Summer's S: log log V / log log N
	Maas    float64 // Maas a^2: (log N - log V) / (log N)^2
	MATTR   float64 // moving-average TTR over a fixed token window
}

// DefaultMATTRWindow is the moving-average TTR window size.
const DefaultMATTRWindow = 25

// Compute derives all indices from a token sequence. Tokens are expected
// lowercased; the caller owns normalization.
func Compute(tokens []string) Measures {
	return ComputeWithWindow(tokens, DefaultMATTRWindow)
}

// ComputeWithWindow derives all indices using the given MATTR window.
func ComputeWithWindow(tokens []string, window int) Measures {
	nan := math.NaN()
	m := Measures{TTR: nan, RootTTR: nan, LogTTR: nan, CTTR: nan, Uber: nan, Summer: nan, Maas: nan, MATTR: nan}

	n := float64(len(tokens))
	if n == 0 {
		return m
	}
	types := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		types[tok] = true
	}
	v := float64(len(types))

	m.TTR = v / n
	m.RootTTR = v / math.Sqrt(n)
	m.CTTR = v / math.Sqrt(2*n)
	m.MATTR = movingAverageTTR(tokens, window)

	logN := math.Log(n)
	logV := math.Log(v)
	if logN > 0 {
		m.LogTTR = logV / logN
		m.Maas = (logN - logV) / (logN * logN)
		if logN != logV {
			m.Uber = (logN * logN) / (logN - logV)
		}
	}
	// Summer's S needs log log of both counts to be defined, so N and V
	// must both exceed e.
	if logN > 1 && logV > 1 {
		m.Summer = math.Log(logV) / math.Log(logN)
	}
	return m
}

// movingAverageTTR averages the TTR of every full window of consecutive
// tokens. Texts shorter than the window fall back to the plain TTR over
// the whole text.
func movingAverageTTR(tokens []string, window int) float64 {
	if window <= 0 || len(tokens) == 0 {
		return math.NaN()
	}
	if len(tokens) <= window {
		types := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			types[tok] = true
		}
		return float64(len(types)) / float64(len(tokens))
	}

	counts := make(map[string]int, window)
	distinct := 0
	for i := 0; i < window; i++ {
		if counts[tokens[i]] == 0 {
			distinct++
		}
		counts[tokens[i]]++
	}
	sum := float64(distinct)
	windows := 1

	for i := window; i < len(tokens); i++ {
		out := tokens[i-window]
		counts[out]--
		if counts[out] == 0 {
			distinct--
		}
		if counts[tokens[i]] == 0 {
			distinct++
		}
		counts[tokens[i]]++
		sum += float64(distinct)
		windows++
	}
	return sum / (float64(windows) * float64(window))
}
