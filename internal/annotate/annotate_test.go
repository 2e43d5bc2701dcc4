package annotate

import (
	"strings"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
)

func TestUniversalTagMapping(t *testing.T) {
	cases := map[string]string{
		"NN": "noun", "NNS": "noun", "NNP": "propn",
		"VB": "verb", "VBD": "verb", "MD": "aux",
		"JJ": "adj", "RB": "adv", "DT": "det",
		"PRP": "pron", "IN": "adp", "CC": "cconj",
		".": "punct", "XYZ": "x",
	}
	for penn, want := range cases {
		if got := UniversalTag(penn); got != want {
			t.Errorf("UniversalTag(%q) = %q, want %q", penn, got, want)
		}
	}
}

func TestMorphFeatures(t *testing.T) {
	past := morphFeatures("VBD")
	if past["tense"] != "past" || past["verbform"] != "fin" {
		t.Errorf("VBD features wrong: %v", past)
	}
	plural := morphFeatures("NNS")
	if plural["number"] != "plur" {
		t.Errorf("NNS features wrong: %v", plural)
	}
	if morphFeatures("CC") != nil {
		t.Error("Conjunction should carry no morph features")
	}
}

func TestShallowRelations(t *testing.T) {
	// "The quick fox saw the dog" -> DT JJ NN VBD DT NN
	tags := []string{"DT", "JJ", "NN", "VBD", "DT", "NN"}
	relations := shallowRelations(tags)

	expected := []string{"det", "amod", "nsubj", "root", "det", "obj"}
	for i, want := range expected {
		if relations[i] != want {
			t.Errorf("Relation %d (%s): expected %q, got %q", i, tags[i], want, relations[i])
		}
	}
}

func TestShallowRelationsModalAux(t *testing.T) {
	// "He can run" -> PRP MD VB
	relations := shallowRelations([]string{"PRP", "MD", "VB"})
	if relations[1] != "aux" {
		t.Errorf("Modal before verb should be aux, got %q", relations[1])
	}
	if relations[2] != "root" {
		t.Errorf("Verb after modal should be root, got %q", relations[2])
	}
	if relations[0] != "nsubj" {
		t.Errorf("Pre-verbal pronoun should be nsubj, got %q", relations[0])
	}
}

func TestAnnotateRealText(t *testing.T) {
	annotator, err := NewAnnotator(Config{})
	if err != nil {
		t.Fatalf("NewAnnotator failed: %v", err)
	}

	annotation, err := annotator.Annotate("The participant made the right decision.")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if annotation.Tokens == 0 {
		t.Fatal("Expected annotated tokens for real text")
	}

	// POS counts must sum to the annotated token count.
	sum := 0
	for tag, count := range annotation.POS {
		if count < 0 {
			t.Errorf("Negative count for tag %q", tag)
		}
		sum += count
	}
	if sum != annotation.Tokens {
		t.Errorf("POS counts sum to %d, token count is %d", sum, annotation.Tokens)
	}
	if annotation.POS["noun"] == 0 {
		t.Errorf("Expected at least one noun, got %v", annotation.POS)
	}
}

func TestAnnotateEmptyText(t *testing.T) {
	annotator, _ := NewAnnotator(Config{})
	annotation, err := annotator.Annotate("")
	if err != nil {
		t.Fatalf("Annotate should not fail on empty text: %v", err)
	}
	if annotation.Tokens != 0 || len(annotation.POS) != 0 {
		t.Errorf("Empty text should produce empty annotation: %+v", annotation)
	}
}

func TestNewAnnotatorMissingModel(t *testing.T) {
	_, err := NewAnnotator(Config{ModelPath: "/nonexistent/model"})
	if err == nil {
		t.Fatal("Expected error for missing model directory")
	}
	if errors.GetCode(err) != errors.CodeArtifactMissing {
		t.Errorf("Expected ARTIFACT_MISSING, got %s", errors.GetCode(err))
	}
}

func TestPivotZeroFillsAbsentTags(t *testing.T) {
	annotations := []DocAnnotation{
		{POS: map[string]int{"noun": 2, "verb": 1}, Morph: map[string]int{"number=sing": 2}, Dep: map[string]int{"root": 1}, Tokens: 3},
		{POS: map[string]int{}, Morph: map[string]int{}, Dep: map[string]int{}, Tokens: 0},
		{POS: map[string]int{"adj": 1}, Morph: map[string]int{}, Dep: map[string]int{}, Tokens: 1},
	}

	table, err := Pivot(annotations)
	if err != nil {
		t.Fatalf("Pivot failed: %v", err)
	}
	if table.NumRows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.NumRows())
	}

	// Every tag column exists for every row, zero-filled and non-negative.
	for _, name := range table.ColumnNames() {
		values, err := table.Float64Column(name)
		if err != nil {
			t.Fatalf("Float64Column(%s) failed: %v", name, err)
		}
		for i, v := range values {
			if v < 0 {
				t.Errorf("Column %s row %d is negative: %v", name, i, v)
			}
		}
	}

	nouns, _ := table.Float64Column("pos_noun")
	if nouns[0] != 2 || nouns[1] != 0 || nouns[2] != 0 {
		t.Errorf("pos_noun zero-fill wrong: %v", nouns)
	}
	adjs, _ := table.Float64Column("pos_adj")
	if adjs[2] != 1 || adjs[0] != 0 {
		t.Errorf("pos_adj zero-fill wrong: %v", adjs)
	}
}

func TestPivotDeterministicColumnOrder(t *testing.T) {
	annotations := []DocAnnotation{
		{POS: map[string]int{"verb": 1, "adj": 1, "noun": 1}, Morph: map[string]int{}, Dep: map[string]int{}, Tokens: 3},
	}
	table, err := Pivot(annotations)
	if err != nil {
		t.Fatalf("Pivot failed: %v", err)
	}
	var posCols []string
	for _, name := range table.ColumnNames() {
		if strings.HasPrefix(name, PrefixPOS) && name != "pos_tokens" {
			posCols = append(posCols, name)
		}
	}
	expected := []string{"pos_adj", "pos_noun", "pos_verb"}
	for i, want := range expected {
		if posCols[i] != want {
			t.Errorf("POS columns not alphabetical: %v", posCols)
			break
		}
	}
}
