// Package editor implements the per-table record editor: a read-only grid of
// the current rows and a free-text form that appends one record at a time.
package editor

import (
	"fmt"
	"log"

	"github.com/klytics/olivar/internal/logging"
	"github.com/klytics/olivar/internal/store"
)

// SavedNotice is shown after a record has been written to disk.
const SavedNotice = "Registro guardado correctamente."

// Form holds the in-progress values of the "add record" panel for one table.
type Form struct {
	Table   string
	Columns []string
	Values  map[string]string
}

// NewForm returns an empty form with one field per column of t.
func NewForm(t *store.Table) *Form {
	return &Form{
		Table:   t.Name,
		Columns: append([]string(nil), t.Columns...),
		Values:  make(map[string]string, len(t.Columns)),
	}
}

// Set stores value under column. Columns outside the form are rejected.
func (f *Form) Set(column, value string) error {
	for _, c := range f.Columns {
		if c == column {
			f.Values[column] = value
			return nil
		}
	}
	return fmt.Errorf("table %s has no column %q — columns: %v", f.Table, column, f.Columns)
}

// Get returns the current value of column, "" if untouched.
func (f *Form) Get(column string) string {
	return f.Values[column]
}

// Reset clears every field.
func (f *Form) Reset() {
	f.Values = make(map[string]string, len(f.Columns))
}

// Empty reports whether no field has been filled in.
func (f *Form) Empty() bool {
	for _, v := range f.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// Editor appends form submissions to the backing store.
type Editor struct {
	Store  *store.Store
	Logger *log.Logger
}

// New returns an Editor writing through s.
func New(s *store.Store) *Editor {
	return &Editor{Store: s, Logger: logging.New("editor")}
}

// Submit reloads the tables, appends the form values as a new record of the
// form's table and saves the whole set. The returned table reflects the
// saved state. The form is reset on success.
func (e *Editor) Submit(f *Form) (*store.Table, error) {
	set, err := e.Store.Load()
	if err != nil {
		return nil, err
	}

	t, err := set.Get(f.Table)
	if err != nil {
		return nil, err
	}

	t.Append(f.Values)
	if err := e.Store.Save(set); err != nil {
		return nil, err
	}

	e.Logger.Printf("appended record %d to %s", len(t.Rows), t.Name)
	f.Reset()
	return t, nil
}
