package store

import "fmt"

// Record is one row, aligned with its table's Columns.
type Record []string

// Table is a named, append-only collection of records.
type Table struct {
	Name    string
	Columns []string
	Rows    []Record
}

// Append adds a record built from values keyed by column name. Columns
// without a value are stored as the empty string; unknown keys are ignored.
func (t *Table) Append(values map[string]string) Record {
	rec := make(Record, len(t.Columns))
	for i, col := range t.Columns {
		rec[i] = values[col]
	}
	t.Rows = append(t.Rows, rec)
	return rec
}

// Value returns the cell of row i under column, or "" when absent.
func (t *Table) Value(i int, column string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	for j, col := range t.Columns {
		if col == column && j < len(t.Rows[i]) {
			return t.Rows[i][j]
		}
	}
	return ""
}

// TableSet is the in-memory copy of every table in the workbook.
type TableSet struct {
	Tables []*Table
}

// Get returns the named table.
func (s *TableSet) Get(name string) (*Table, error) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("table %q not found — available tables: %v", name, s.Names())
}

// Names returns the table names in workbook order.
func (s *TableSet) Names() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}
