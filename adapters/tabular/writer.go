package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"

	"github.com/xuri/excelize/v2"
)

// Writer persists survey tables as CSV or Excel artifacts, dispatching on
// extension the same way the reader does.
type Writer struct{}

// NewWriter creates a tabular writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteTable writes the table to path. The parent directory is created if
// missing.
func (w *Writer) WriteTable(path string, table *survey.Table) error {
	if table == nil || table.NumCols() == 0 {
		return fmt.Errorf("cannot write an empty table to %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return w.writeCSV(path, table)
	case ".xlsx":
		return w.writeExcel(path, table)
	default:
		return fmt.Errorf("unsupported file type %q for %s", ext, path)
	}
}

func (w *Writer) writeCSV(path string, table *survey.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cells, err := w.textColumns(table)
	if err != nil {
		return err
	}
	for i := 0; i < table.NumRows(); i++ {
		row := make([]string, len(cells))
		for j := range cells {
			row[j] = cells[j][i]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	log.Printf("[Tabular] Wrote %s (%d columns, %d rows)", filepath.Base(path), table.NumCols(), table.NumRows())
	return nil
}

func (w *Writer) writeExcel(path string, table *survey.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", headerRow(table)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cells, err := w.textColumns(table)
	if err != nil {
		return err
	}
	for i := 0; i < table.NumRows(); i++ {
		row := make([]interface{}, len(cells))
		for j := range cells {
			row[j] = cells[j][i]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	log.Printf("[Tabular] Wrote %s (%d columns, %d rows)", filepath.Base(path), table.NumCols(), table.NumRows())
	return nil
}

func (w *Writer) textColumns(table *survey.Table) ([][]string, error) {
	names := table.ColumnNames()
	cells := make([][]string, len(names))
	for j, name := range names {
		col, err := table.TextColumn(name)
		if err != nil {
			return nil, err
		}
		cells[j] = col
	}
	return cells, nil
}

func headerRow(table *survey.Table) *[]interface{} {
	names := table.ColumnNames()
	row := make([]interface{}, len(names))
	for i, name := range names {
		row[i] = name
	}
	return &row
}
