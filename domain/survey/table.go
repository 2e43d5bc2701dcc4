package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnKind distinguishes raw text cells from parsed numeric values.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

// Column is a single named column. Exactly one of Text or Values is
// populated, depending on Kind. Numeric missing values are NaN.
type Column struct {
	Name   string
	Kind   ColumnKind
	Text   []string
	Values []float64
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Values)
	}
	return len(c.Text)
}

// Table is an ordered, column-oriented data table with one row per document.
// The row count is fixed at the first column added; every subsequent column
// and every merge must preserve it.
type Table struct {
	names []string
	index map[string]int
	cols  []*Column
	nrows int
}

// NewTable creates an empty table. The row count is set by the first column.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the number of rows (documents).
func (t *Table) NumRows() int {
	return t.nrows
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column, or false when absent.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// AddTextColumn appends a text column. The cell count must match the table's
// row count (or set it, when this is the first column).
func (t *Table) AddTextColumn(name string, cells []string) error {
	return t.addColumn(&Column{Name: name, Kind: KindText, Text: cells})
}

// AddNumericColumn appends a numeric column. NaN marks missing values.
func (t *Table) AddNumericColumn(name string, values []float64) error {
	return t.addColumn(&Column{Name: name, Kind: KindNumeric, Values: values})
}

func (t *Table) addColumn(col *Column) error {
	if col.Name == "" {
		return fmt.Errorf("column name cannot be empty")
	}
	if _, exists := t.index[col.Name]; exists {
		return fmt.Errorf("duplicate column %q", col.Name)
	}
	if len(t.cols) == 0 {
		t.nrows = col.Len()
	} else if col.Len() != t.nrows {
		return fmt.Errorf("column %q has %d rows, table has %d", col.Name, col.Len(), t.nrows)
	}
	t.index[col.Name] = len(t.cols)
	t.cols = append(t.cols, col)
	t.names = append(t.names, col.Name)
	return nil
}

// TextColumn returns the raw string cells of a column. Numeric columns are
// formatted with full precision so a text round trip is lossless.
func (t *Table) TextColumn(name string) ([]string, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if col.Kind == KindText {
		return col.Text, nil
	}
	cells := make([]string, len(col.Values))
	for i, v := range col.Values {
		if math.IsNaN(v) {
			cells[i] = ""
		} else {
			cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return cells, nil
}

// Float64Column returns a column as float64 values. Text columns are parsed
// cell by cell; blank or unparseable cells become NaN (missing), which the
// preprocessing recipe later imputes.
func (t *Table) Float64Column(name string) ([]float64, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if col.Kind == KindNumeric {
		return col.Values, nil
	}
	values := make([]float64, len(col.Text))
	for i, cell := range col.Text {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" || strings.EqualFold(trimmed, "na") || strings.EqualFold(trimmed, "nan") {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = v
	}
	return values, nil
}

// BindColumns merges another table's columns onto this one by row order.
// It errors on a row-count mismatch or duplicate column names: feature-block
// merges must never lose or duplicate a document row.
func (t *Table) BindColumns(other *Table) error {
	if other == nil {
		return fmt.Errorf("cannot bind nil table")
	}
	if t.nrows != other.nrows && len(t.cols) > 0 && len(other.cols) > 0 {
		return fmt.Errorf("row count mismatch: %d vs %d", t.nrows, other.nrows)
	}
	for _, name := range other.names {
		if _, exists := t.index[name]; exists {
			return fmt.Errorf("duplicate column %q on bind", name)
		}
	}
	for _, name := range other.names {
		col, _ := other.Column(name)
		if err := t.addColumn(col); err != nil {
			return err
		}
	}
	return nil
}

// AppendRows concatenates another table's rows below this one. The other
// table must carry exactly the same columns (order-insensitive); used to
// stack per-study files into one corpus.
func (t *Table) AppendRows(other *Table) error {
	if other == nil {
		return fmt.Errorf("cannot append nil table")
	}
	if len(t.cols) == 0 {
		*t = *other.Clone()
		return nil
	}
	if len(other.names) != len(t.names) {
		return fmt.Errorf("column count mismatch: %d vs %d", len(t.names), len(other.names))
	}
	for _, name := range t.names {
		if !other.HasColumn(name) {
			return fmt.Errorf("column %q missing from appended table", name)
		}
	}
	for _, name := range t.names {
		dst, _ := t.Column(name)
		src, _ := other.Column(name)
		if dst.Kind != src.Kind {
			// Fall back to text on a kind clash so no cell is lost.
			dstText, _ := t.TextColumn(name)
			srcText, _ := other.TextColumn(name)
			dst.Kind = KindText
			dst.Text = append(append([]string{}, dstText...), srcText...)
			dst.Values = nil
			continue
		}
		if dst.Kind == KindNumeric {
			dst.Values = append(dst.Values, src.Values...)
		} else {
			dst.Text = append(dst.Text, src.Text...)
		}
	}
	t.nrows += other.nrows
	return nil
}

// Select returns a new table holding only the named columns, in the given
// order. The underlying cell slices are shared, not copied.
func (t *Table) Select(names []string) (*Table, error) {
	out := NewTable()
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("column %q not found", name)
		}
		if err := out.addColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop returns a new table without the named columns. Unknown names are
// ignored so leakage removal tolerates already-absent columns.
func (t *Table) Drop(names ...string) *Table {
	dropSet := make(map[string]bool, len(names))
	for _, n := range names {
		dropSet[n] = true
	}
	out := NewTable()
	for _, name := range t.names {
		if dropSet[name] {
			continue
		}
		col, _ := t.Column(name)
		_ = out.addColumn(col)
	}
	if len(out.cols) == 0 {
		out.nrows = t.nrows
	}
	return out
}

// SubsetRows returns a new table holding the given rows, in index order.
// Cell data is copied so partitions never alias the parent table.
func (t *Table) SubsetRows(rows []int) (*Table, error) {
	out := NewTable()
	for _, name := range t.names {
		col, _ := t.Column(name)
		if col.Kind == KindNumeric {
			values := make([]float64, len(rows))
			for i, r := range rows {
				if r < 0 || r >= t.nrows {
					return nil, fmt.Errorf("row index %d out of range [0, %d)", r, t.nrows)
				}
				values[i] = col.Values[r]
			}
			if err := out.AddNumericColumn(name, values); err != nil {
				return nil, err
			}
			continue
		}
		cells := make([]string, len(rows))
		for i, r := range rows {
			if r < 0 || r >= t.nrows {
				return nil, fmt.Errorf("row index %d out of range [0, %d)", r, t.nrows)
			}
			cells[i] = col.Text[r]
		}
		if err := out.AddTextColumn(name, cells); err != nil {
			return nil, err
		}
	}
	if len(t.cols) == 0 {
		out.nrows = len(rows)
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, name := range t.names {
		col, _ := t.Column(name)
		if col.Kind == KindNumeric {
			values := make([]float64, len(col.Values))
			copy(values, col.Values)
			_ = out.AddNumericColumn(name, values)
		} else {
			cells := make([]string, len(col.Text))
			copy(cells, col.Text)
			_ = out.AddTextColumn(name, cells)
		}
	}
	out.nrows = t.nrows
	return out
}

// Matrix extracts the named columns as a row-major design matrix. Text
// columns are parsed on the way out; missing cells stay NaN.
func (t *Table) Matrix(names []string) ([][]float64, error) {
	columns := make([][]float64, len(names))
	for j, name := range names {
		values, err := t.Float64Column(name)
		if err != nil {
			return nil, err
		}
		columns[j] = values
	}
	rows := make([][]float64, t.nrows)
	for i := 0; i < t.nrows; i++ {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = columns[j][i]
		}
		rows[i] = row
	}
	return rows, nil
}
