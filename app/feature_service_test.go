package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SabreenNoorAli/final-project-EDLD654/adapters/tabular"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
)

func writeStudyCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write study file: %v", err)
	}
	return path
}

func newFeatureService() *FeatureService {
	logger := logging.NewLogger(logging.LogLevelError)
	return NewFeatureService(tabular.NewReader(), tabular.NewWriter(), nil, logger)
}

func TestGenerateConcatenatesStudies(t *testing.T) {
	dir := t.TempDir()
	study1 := writeStudyCSV(t, dir, "study1.csv",
		"study,participant_id,condition,text,p_right,t_right\n"+
			"1,p1,control,The patient deserved honest treatment from the doctor.,3.5,2.0\n"+
			"1,p2,treatment,He lied and that was wrong of him to do.,4.0,1.5\n")
	study2 := writeStudyCSV(t, dir, "study2.csv",
		"study,participant_id,condition,text,p_right,t_right\n"+
			"2,p3,control,,2.0,2.5\n"+
			"2,p4,treatment,Telling the truth matters even when it hurts someone.,5.0,3.0\n")

	out := filepath.Join(dir, "features.csv")
	result, err := newFeatureService().Generate(context.Background(), GenerateRequest{
		StudyFiles:  []string{study1, study2},
		FeaturesOut: out,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if result.Documents != 4 {
		t.Errorf("expected 4 documents across studies, got %d", result.Documents)
	}
	for _, name := range []string{"n_tokens", "ttr", "flesch_kincaid", "pos_tokens"} {
		if !result.Table.HasColumn(name) {
			t.Errorf("expected feature column %s", name)
		}
	}
	if len(result.Profiles) == 0 {
		t.Error("expected column profiles")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected feature CSV written: %v", err)
	}

	tokens, err := result.Table.Float64Column("n_tokens")
	if err != nil {
		t.Fatalf("read n_tokens: %v", err)
	}
	if tokens[2] != 0 {
		t.Errorf("expected empty document to have zero tokens, got %f", tokens[2])
	}
}

func TestGenerateRequiresStudyFiles(t *testing.T) {
	_, err := newFeatureService().Generate(context.Background(), GenerateRequest{})
	if err == nil {
		t.Fatal("expected error with no study files")
	}
}

func TestGenerateMissingStudyFatal(t *testing.T) {
	_, err := newFeatureService().Generate(context.Background(), GenerateRequest{
		StudyFiles: []string{"does/not/exist.csv"},
	})
	if err == nil {
		t.Fatal("expected error for missing study file")
	}
}
