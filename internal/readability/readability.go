// Package readability computes named readability indices per document.
// Every index degrades to NaN when its denominator (sentence or word count)
// is zero; downstream imputation handles the NaN.
package readability

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/textstats"
)

// Measures holds the per-document readability indices.
type Measures struct {
	FleschReadingEase float64
	FleschKincaid     float64
	ARI               float64
	ColemanLiau       float64
	SMOG              float64
	GunningFog        float64
	LIX               float64
	RIX               float64
}

// Compute derives all indices from the raw document text.
func Compute(text string) Measures {
	nan := math.NaN()
	m := Measures{FleschReadingEase: nan, FleschKincaid: nan, ARI: nan, ColemanLiau: nan,
		SMOG: nan, GunningFog: nan, LIX: nan, RIX: nan}

	sentences := float64(len(textstats.Sentences(text)))
	words := textstats.Words(text)
	nWords := float64(len(words))
	if sentences == 0 || nWords == 0 {
		return m
	}

	var letters, syllables, polysyllables, longWords float64
	for _, w := range words {
		letters += float64(countLetters(w))
		s := CountSyllables(w)
		syllables += float64(s)
		if s >= 3 {
			polysyllables++
		}
		if utf8.RuneCountInString(w) > 6 {
			longWords++
		}
	}

	wordsPerSentence := nWords / sentences
	syllablesPerWord := syllables / nWords

	m.FleschReadingEase = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	m.FleschKincaid = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	m.ARI = 4.71*(letters/nWords) + 0.5*wordsPerSentence - 21.43
	m.ColemanLiau = 0.0588*(letters/nWords*100) - 0.296*(sentences/nWords*100) - 15.8
	m.SMOG = 1.0430*math.Sqrt(polysyllables*(30/sentences)) + 3.1291
	m.GunningFog = 0.4 * (wordsPerSentence + 100*(polysyllables/nWords))
	m.LIX = wordsPerSentence + 100*(longWords/nWords)
	m.RIX = longWords / sentences
	return m
}

func countLetters(word string) int {
	count := 0
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
