package readability

import "strings"

// CountSyllables estimates the syllable count of an English word by counting
// vowel groups, with the usual silent-e and -le adjustments. Heuristic: good
// enough for aggregate readability scores, not per-word accuracy.
func CountSyllables(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return 0
	}

	isVowel := func(r rune) bool {
		return strings.ContainsRune("aeiouy", r)
	}

	runes := []rune(w)
	count := 0
	prevVowel := false
	for _, r := range runes {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent final e ("make"), unless the word ends in -le after a
	// consonant ("table").
	if len(runes) > 2 && runes[len(runes)-1] == 'e' {
		if runes[len(runes)-2] == 'l' && !isVowel(runes[len(runes)-3]) {
			// consonant + le keeps its syllable
		} else if !isVowel(runes[len(runes)-2]) {
			count--
		}
	}
	// Final -ed after most consonants is silent ("walked").
	if len(runes) > 3 && strings.HasSuffix(w, "ed") &&
		!isVowel(runes[len(runes)-3]) && runes[len(runes)-3] != 't' && runes[len(runes)-3] != 'd' {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}
