package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader loads Excel and CSV study artifacts into survey tables. Missing
// files are fatal: the pipeline cannot proceed past an absent artifact.
type Reader struct{}

// NewReader creates a tabular reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable reads a tabular file, dispatching on extension (.csv vs .xlsx).
func (r *Reader) ReadTable(path string) (*survey.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.ArtifactMissing(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	log.Printf("[Tabular] Reading %s file: %s", strings.TrimPrefix(ext, "."), path)

	switch ext {
	case ".csv":
		return r.readCSV(path)
	case ".xlsx":
		return r.readExcel(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q for %s", ext, path)
	}
}

func (r *Reader) readExcel(path string) (*survey.Table, error) {
	start := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Study files always carry their data on Sheet1.
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[Tabular] Sheet1 read in %.2fms (%d rows)", float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.buildTable(path, rows)
}

func (r *Reader) readCSV(path string) (*survey.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return r.buildTable(path, rows)
}

// buildTable converts raw string rows into a column-oriented table. The first
// row is the header; cells are trimmed; short rows are padded with blanks so
// every column keeps one cell per document.
func (r *Reader) buildTable(path string, rows [][]string) (*survey.Table, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s must have at least a header row and one data row", path)
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	columns := make([][]string, len(headers))
	for j := range columns {
		columns[j] = make([]string, len(rows)-1)
	}
	for i := 1; i < len(rows); i++ {
		for j := range headers {
			if j < len(rows[i]) {
				columns[j][i-1] = strings.TrimSpace(rows[i][j])
			}
		}
	}

	table := survey.NewTable()
	for j, header := range headers {
		if header == "" {
			return nil, fmt.Errorf("%s has a blank header in column %d", path, j+1)
		}
		if err := table.AddTextColumn(header, columns[j]); err != nil {
			return nil, fmt.Errorf("failed to add column %q: %w", header, err)
		}
	}

	log.Printf("[Tabular] %s processed (%d columns, %d rows)", filepath.Base(path), table.NumCols(), table.NumRows())
	return table, nil
}
