package textstats

import (
	"strings"
	"unicode"
)

// TokenType classifies a token by its rune content.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenNumber
	TokenPunct
	TokenSymbol
)

// Token is one tokenized unit of a document.
type Token struct {
	Text string
	Type TokenType
}

// TokenizerConfig controls which token classes survive tokenization,
// mirroring the removal switches of corpus tokenizers.
type TokenizerConfig struct {
	RemovePunct      bool
	RemoveNumbers    bool
	RemoveSymbols    bool
	RemoveSeparators bool
}

// DefaultTokenizerConfig drops punctuation, numbers, symbols, and
// separators, leaving word tokens only.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		RemovePunct:      true,
		RemoveNumbers:    true,
		RemoveSymbols:    true,
		RemoveSeparators: true,
	}
}

// Tokenize splits text on whitespace boundaries and rune-class changes.
// A run of letters (with internal apostrophes and hyphens) is a word token;
// runs of digits, punctuation, and symbol runes form their own tokens.
// Separators never become tokens; RemoveSeparators only matters for counts
// that treat them as characters elsewhere.
func Tokenize(text string, config TokenizerConfig) []Token {
	var tokens []Token
	runes := []rune(text)

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || isWordInternal(runes, i)) {
				i++
			}
			tokens = append(tokens, Token{Text: string(runes[start:i]), Type: TokenWord})
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || isNumberInternal(runes, i)) {
				i++
			}
			if !config.RemoveNumbers {
				tokens = append(tokens, Token{Text: string(runes[start:i]), Type: TokenNumber})
			}
		case unicode.IsPunct(r):
			if !config.RemovePunct {
				tokens = append(tokens, Token{Text: string(r), Type: TokenPunct})
			}
			i++
		default:
			if !config.RemoveSymbols {
				tokens = append(tokens, Token{Text: string(r), Type: TokenSymbol})
			}
			i++
		}
	}
	return tokens
}

// Words returns the lowercased word tokens of text under the default
// configuration. This is the token stream the lexical measures and the
// dictionary scorers consume.
func Words(text string) []string {
	tokens := Tokenize(text, DefaultTokenizerConfig())
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TokenWord {
			words = append(words, strings.ToLower(tok.Text))
		}
	}
	return words
}

// isWordInternal reports whether the rune at i continues a word token:
// apostrophes and hyphens bind when flanked by letters ("don't", "well-known").
func isWordInternal(runes []rune, i int) bool {
	r := runes[i]
	if r != '\'' && r != '’' && r != '-' {
		return false
	}
	return i > 0 && unicode.IsLetter(runes[i-1]) &&
		i+1 < len(runes) && unicode.IsLetter(runes[i+1])
}

// isNumberInternal keeps decimal points and thousands separators inside
// number tokens ("3.14", "1,000").
func isNumberInternal(runes []rune, i int) bool {
	r := runes[i]
	if r != '.' && r != ',' {
		return false
	}
	return i > 0 && unicode.IsDigit(runes[i-1]) &&
		i+1 < len(runes) && unicode.IsDigit(runes[i+1])
}
