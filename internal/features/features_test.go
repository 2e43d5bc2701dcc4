package features

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/adapters/tabular"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
)

func buildTestTable(t *testing.T, texts []string) *survey.Table {
	t.Helper()
	tbl := survey.NewTable()
	ids := make([]string, len(texts))
	for i := range texts {
		ids[i] = "p" + string(rune('1'+i))
	}
	if err := tbl.AddTextColumn(survey.ColParticipant, ids); err != nil {
		t.Fatalf("add participant column: %v", err)
	}
	if err := tbl.AddTextColumn(survey.ColText, texts); err != nil {
		t.Fatalf("add text column: %v", err)
	}
	return tbl
}

func newTestBuilder() *Builder {
	return NewBuilder(tabular.NewReader(), logging.NewLogger(logging.LogLevelError))
}

func TestBuildCoreBlocks(t *testing.T) {
	base := buildTestTable(t, []string{
		"The quick brown fox jumps over the lazy dog. It was a fine day.",
		"She sells sea shells by the sea shore, and the shells she sells are surely sea shells.",
		"",
	})

	wide, blocks, err := newTestBuilder().Build(context.Background(), base, Sources{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if wide.NumRows() != 3 {
		t.Fatalf("expected row count preserved at 3, got %d", wide.NumRows())
	}
	for _, name := range []string{"n_tokens", "ttr", "flesch_kincaid", "pos_tokens"} {
		if !wide.HasColumn(name) {
			t.Errorf("expected column %s in wide table", name)
		}
	}

	want := map[string]bool{"surface": true, "lexdiv": true, "readability": true, "annotation": true}
	for _, block := range blocks {
		delete(want, block.Name)
		if block.Columns <= 0 {
			t.Errorf("block %s reports %d columns", block.Name, block.Columns)
		}
	}
	if len(want) != 0 {
		t.Errorf("missing blocks: %v", want)
	}
}

func TestBuildEmptyTextZeroCounts(t *testing.T) {
	base := buildTestTable(t, []string{"Plenty of words in this one, honestly.", ""})

	wide, _, err := newTestBuilder().Build(context.Background(), base, Sources{})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	tokens, err := wide.Float64Column("n_tokens")
	if err != nil {
		t.Fatalf("read n_tokens: %v", err)
	}
	if tokens[1] != 0 {
		t.Errorf("expected empty document to count zero tokens, got %f", tokens[1])
	}
}

func TestBuildDictionaryBlock(t *testing.T) {
	dir := t.TempDir()
	dicPath := filepath.Join(dir, "test.dic")
	dic := "%\n1\tposemo\n2\tnegemo\n%\nhappy\t1\nglad\t1\nsad\t2\nhat*\t2\n"
	if err := os.WriteFile(dicPath, []byte(dic), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	base := buildTestTable(t, []string{"I am happy and glad today.", "I hate this sad thing."})

	wide, _, err := newTestBuilder().Build(context.Background(), base, Sources{LIWCDict: dicPath})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	posemo, err := wide.Float64Column("liwc_posemo")
	if err != nil {
		t.Fatalf("read liwc_posemo: %v", err)
	}
	negemo, err := wide.Float64Column("liwc_negemo")
	if err != nil {
		t.Fatalf("read liwc_negemo: %v", err)
	}
	if posemo[0] <= 0 {
		t.Errorf("expected positive posemo rate for first document, got %f", posemo[0])
	}
	if posemo[1] != 0 {
		t.Errorf("expected zero posemo rate for second document, got %f", posemo[1])
	}
	if negemo[1] <= 0 {
		t.Errorf("expected positive negemo rate for second document, got %f", negemo[1])
	}
}

func TestBuildMissingDictionaryFatal(t *testing.T) {
	base := buildTestTable(t, []string{"Some text."})

	_, _, err := newTestBuilder().Build(context.Background(), base, Sources{LIWCDict: "does/not/exist.dic"})
	if err == nil {
		t.Fatal("expected error for missing dictionary file")
	}
}

func TestBuildPrecomputedTableRowMismatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "liwc.csv")
	if err := os.WriteFile(csvPath, []byte("liwc_posemo\n1.5\n"), 0o644); err != nil {
		t.Fatalf("write score table: %v", err)
	}

	base := buildTestTable(t, []string{"one", "two"})

	_, _, err := newTestBuilder().Build(context.Background(), base, Sources{LIWCTable: csvPath})
	if err == nil {
		t.Fatal("expected error for row-count mismatch")
	}
}

func TestBuildPrecomputedTable(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "mfd.csv")
	content := "care_virtue,care_vice\n0.5,0.0\n1.0,2.0\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write score table: %v", err)
	}

	base := buildTestTable(t, []string{"one", "two"})

	wide, _, err := newTestBuilder().Build(context.Background(), base, Sources{MFTable: csvPath})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	values, err := wide.Float64Column("mf_care_virtue")
	if err != nil {
		t.Fatalf("expected prefixed column: %v", err)
	}
	if values[1] != 1.0 {
		t.Errorf("expected precomputed value 1.0, got %f", values[1])
	}
}
