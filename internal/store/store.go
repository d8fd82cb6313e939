// Package store persists the farm tables to a single .xlsx workbook.
//
// The workbook is read in full by Load and rewritten in full by Save. There is
// no locking and no atomic replace: two processes saving the same file race,
// and the last writer wins.
package store

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/klytics/olivar/internal/formats/xlsx"
	"github.com/klytics/olivar/internal/logging"
)

// Store owns the path of the backing workbook.
type Store struct {
	Path   string
	Logger *log.Logger
}

// New returns a Store for path, falling back to DefaultFile.
func New(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{Path: path, Logger: logging.New("store")}
}

// Load reads every sheet of the workbook into a TableSet. When the file does
// not exist the six default empty tables are returned. Sheets and columns are
// taken as found; nothing is checked against the default schema.
func (s *Store) Load() (*TableSet, error) {
	wb, err := xlsx.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		s.Logger.Printf("%s not found, starting with empty tables", s.Path)
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	set := &TableSet{}
	for _, sheet := range wb.Sheets {
		t := &Table{Name: sheet.Name, Columns: append([]string(nil), sheet.Header()...)}
		for _, row := range sheet.Body() {
			t.Rows = append(t.Rows, pad(row, len(t.Columns)))
		}
		set.Tables = append(set.Tables, t)
	}

	s.Logger.Printf("loaded %d tables from %s", len(set.Tables), s.Path)
	return set, nil
}

// Save rewrites the whole workbook from set, one sheet per table with the
// column names as the first row.
func (s *Store) Save(set *TableSet) error {
	wb := &xlsx.Workbook{}
	for _, t := range set.Tables {
		rows := make([][]string, 0, len(t.Rows)+1)
		rows = append(rows, t.Columns)
		for _, r := range t.Rows {
			rows = append(rows, r)
		}
		wb.Sheets = append(wb.Sheets, xlsx.Sheet{Name: t.Name, Rows: rows})
	}

	if err := xlsx.WriteFile(wb, s.Path); err != nil {
		return fmt.Errorf("could not save tables: %w", err)
	}
	s.Logger.Printf("saved %d tables to %s", len(set.Tables), s.Path)
	return nil
}

// Exists reports whether the backing workbook is on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// pad stretches row to width with empty cells. excelize drops trailing blank
// cells on read, so a record saved with empty last fields comes back short.
func pad(row []string, width int) Record {
	if len(row) >= width {
		return Record(row)
	}
	out := make(Record, width)
	copy(out, row)
	return out
}
