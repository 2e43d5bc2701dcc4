// Package annotate runs part-of-speech, morphology, and shallow
// dependency-relation annotation over documents, producing per-document
// tag counts ready for the corpus-wide pivot.
package annotate

import (
	"os"
	"unicode"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"

	prose "github.com/jdkato/prose/v2"
)

// Config selects the annotation model. An empty ModelPath uses the built-in
// English model; a non-empty path loads a trained model directory from disk.
type Config struct {
	ModelPath string
}

// DocAnnotation holds one document's tag-occurrence counts across the three
// tag families, plus the annotated (word) token count.
type DocAnnotation struct {
	POS    map[string]int // universal POS category -> count
	Morph  map[string]int // "feature=value" -> count
	Dep    map[string]int // dependency relation -> count
	Tokens int            // word tokens annotated (punctuation excluded)
}

// Annotator tags documents with a prose model.
type Annotator struct {
	model *prose.Model
}

// NewAnnotator creates an annotator from config. A missing model directory
// is fatal: the feature block cannot be produced without it.
func NewAnnotator(config Config) (*Annotator, error) {
	if config.ModelPath == "" {
		return &Annotator{}, nil
	}
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, errors.ArtifactMissing(config.ModelPath)
	}
	return &Annotator{model: prose.ModelFromDisk(config.ModelPath)}, nil
}

// Annotate tags one document. Empty or unparseable text yields empty count
// maps and zero tokens, never an error: the pivot zero-fills those rows.
func (a *Annotator) Annotate(text string) (DocAnnotation, error) {
	annotation := DocAnnotation{
		POS:   make(map[string]int),
		Morph: make(map[string]int),
		Dep:   make(map[string]int),
	}
	if text == "" {
		return annotation, nil
	}

	opts := []prose.DocOpt{prose.WithExtraction(false)}
	if a.model != nil {
		opts = append(opts, prose.UsingModel(a.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		// Unparseable text degrades to a zero-filled row.
		return annotation, nil
	}

	tokens := doc.Tokens()
	var sentenceTags []string

	flush := func() {
		for _, rel := range shallowRelations(sentenceTags) {
			if rel != "" {
				annotation.Dep[rel]++
			}
		}
		sentenceTags = sentenceTags[:0]
	}

	for _, tok := range tokens {
		if isPunctToken(tok) {
			if tok.Tag == "." {
				flush()
			}
			continue
		}
		annotation.POS[UniversalTag(tok.Tag)]++
		annotation.Tokens++
		for feature, value := range morphFeatures(tok.Tag) {
			annotation.Morph[feature+"="+value]++
		}
		sentenceTags = append(sentenceTags, tok.Tag)
	}
	flush()

	return annotation, nil
}

// isPunctToken filters punctuation-only tokens out of the counted stream so
// POS counts sum to the document's word token count.
func isPunctToken(tok prose.Token) bool {
	if UniversalTag(tok.Tag) == "punct" {
		return true
	}
	for _, r := range tok.Text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
