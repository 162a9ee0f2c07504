// Package importer merges the spreadsheets the operators maintain into the
// storefront data files.
package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the active worksheet of a workbook. Header is the first row;
// Rows holds the remaining rows, which may be ragged.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// ReadSheet reads the active worksheet of an .xlsx workbook.
func ReadSheet(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("importer: read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return Sheet{}, nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	return Sheet{Header: header, Rows: rows[1:]}, nil
}

// ReadSheetFile reads the active worksheet of the workbook at path.
func ReadSheetFile(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, fmt.Errorf("importer: %w", err)
	}
	defer f.Close()
	return ReadSheet(f)
}

// Column returns the index of the named header column, or -1.
func (s Sheet) Column(name string) int {
	for i, h := range s.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// cell returns the trimmed value at column i, or "" past the end of the row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
