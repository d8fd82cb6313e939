// Package xlsx reads and writes the .xlsx workbook that backs the farm tables.
package xlsx

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet. Rows[0] is the header row when present.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Workbook is a parsed .xlsx file, sheets in file order.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// ReadFile opens the workbook at path. A missing file is reported with an
// error wrapping os.ErrNotExist.
func ReadFile(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	wb, err := ReadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid .xlsx file: %w", path, err)
	}
	return wb, nil
}

// ReadBytes parses a workbook held in memory.
func ReadBytes(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not read Excel data: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}

	return wb, nil
}

// GetSheet returns the named sheet.
func (wb *Workbook) GetSheet(name string) (*Sheet, error) {
	for i := range wb.Sheets {
		if wb.Sheets[i].Name == name {
			return &wb.Sheets[i], nil
		}
	}

	available := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		available[i] = s.Name
	}
	return nil, fmt.Errorf("sheet %q not found — available sheets: %v", name, available)
}

// Header returns the first row, or nil for an empty sheet.
func (s *Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// Body returns every row after the header.
func (s *Sheet) Body() [][]string {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// ToCSV renders the sheet, header included, as CSV.
func (s *Sheet) ToCSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	// Writing to a strings.Builder cannot fail.
	_ = w.WriteAll(s.Rows)
	return b.String()
}

// RowCount returns the number of body rows holding at least one value.
func (s *Sheet) RowCount() int {
	count := 0
	for _, row := range s.Body() {
		for _, cell := range row {
			if cell != "" {
				count++
				break
			}
		}
	}
	return count
}
