package textstats

import (
	"strings"
	"unicode"
)

// abbreviations that end with a period without ending a sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sr": true, "jr": true, "st": true, "etc": true, "vs": true,
	"e.g": true, "i.e": true, "fig": true, "al": true, "inc": true,
	"no": true, "vol": true, "approx": true,
}

// Sentences splits text into sentences on terminal punctuation (. ! ?) and
// double newlines, guarding common abbreviations and decimal points.
// Returns nil for blank text.
func Sentences(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var sentences []string
	runes := []rune(trimmed)
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		// Paragraph break always terminates a sentence.
		if r == '\n' && i+1 < len(runes) && runes[i+1] == '\n' {
			if s := strings.TrimSpace(string(runes[start:i])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 2
			continue
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && !isSentenceFinalPeriod(runes, i, start) {
			continue
		}

		// Consume trailing terminal punctuation and closing quotes.
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?' ||
			runes[end] == '"' || runes[end] == '”' || runes[end] == ')') {
			end++
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		i = end - 1
		start = end
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// isSentenceFinalPeriod rejects periods inside decimals and after known
// abbreviations.
func isSentenceFinalPeriod(runes []rune, i, sentenceStart int) bool {
	// Decimal point: digit on both sides.
	if i > 0 && unicode.IsDigit(runes[i-1]) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
		return false
	}

	// Walk back to the start of the preceding word.
	wordEnd := i
	wordStart := wordEnd
	for wordStart > sentenceStart && !unicode.IsSpace(runes[wordStart-1]) {
		wordStart--
	}
	word := strings.ToLower(strings.Trim(string(runes[wordStart:wordEnd]), ".,;:"))
	if abbreviations[word] {
		return false
	}

	// Mid-abbreviation periods like "e.g." leave single-letter fragments.
	if len([]rune(word)) == 1 && i+1 < len(runes) && runes[i+1] != ' ' {
		return false
	}
	return true
}
