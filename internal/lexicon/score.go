package lexicon

// Scores holds per-category results for one document.
type Scores struct {
	Counts map[string]int     // raw term counts per category
	Rates  map[string]float64 // counts per 100 tokens
	Tokens int                // tokens scored
}

// Score counts category hits over a (lowercased) token sequence and derives
// per-100-token rates. Zero tokens yields zero counts and zero rates: an
// empty document scores zero in every category, not missing.
func (d *Dictionary) Score(tokens []string) Scores {
	counts := make(map[string]int, len(d.categories))
	for _, cat := range d.categories {
		counts[cat] = 0
	}
	for _, token := range tokens {
		for _, cat := range d.lookup(token) {
			counts[cat]++
		}
	}

	rates := make(map[string]float64, len(counts))
	for cat, count := range counts {
		if len(tokens) == 0 {
			rates[cat] = 0
			continue
		}
		rates[cat] = float64(count) / float64(len(tokens)) * 100
	}
	return Scores{Counts: counts, Rates: rates, Tokens: len(tokens)}
}
