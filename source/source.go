// Package source reads client portfolio tables from files.
//
// Readers only split a file into named columns and cells. They do not
// interpret the cells: mapping columns and parsing numbers and dates is the
// job of clientbook.Normalize.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/convexa/clientbook"
)

// Options tune the readers.
type Options struct {
	Comma    rune   // CSV separator, 0 to detect it from the header line
	Sheet    string // spreadsheet sheet name, empty for the first sheet
	JSONPath string // JSONPath selecting the rows in a JSON document, empty for "$"
}

// ErrUnsupported is returned for a file whose format is not supported.
var ErrUnsupported = errors.New("unsupported file type")

// Extensions lists the supported file extensions.
var Extensions = []string{".csv", ".txt", ".xlsx", ".json"}

// Open reads the table in the file at path, according to its extension.
func Open(path string, opts Options) (clientbook.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return clientbook.RawTable{}, err
	}
	defer f.Close()
	return Read(f, filepath.Base(path), opts)
}

// Read reads the table in r. The format is decided by the extension of name.
func Read(r io.Reader, name string, opts Options) (clientbook.RawTable, error) {
	var (
		t   clientbook.RawTable
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv", ".txt":
		t, err = ReadCSV(r, opts)
	case ".xlsx":
		t, err = ReadXLSX(r, opts)
	case ".json":
		t, err = ReadJSON(r, opts)
	default:
		return clientbook.RawTable{}, fmt.Errorf("cannot read %q: %w %q", name, ErrUnsupported, ext)
	}
	if err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return t, nil
}

// fromRecords builds a table from a header and text records.
// Short records are padded with empty cells, extra cells are dropped.
func fromRecords(header []string, records [][]string) clientbook.RawTable {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff") // byte order mark of spreadsheet exports
		}
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		cols[i] = h
	}

	t := clientbook.RawTable{Columns: cols, Rows: make([]map[string]any, 0, len(records))}
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
