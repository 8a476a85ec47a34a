package source

import (
	"fmt"
	"io"

	"github.com/convexa/clientbook"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a spreadsheet whose first row is the header.
//
// The sheet is opts.Sheet, or the first sheet of the workbook. Cells are read
// as their displayed text.
func ReadXLSX(r io.Reader, opts Options) (clientbook.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return clientbook.RawTable{}, fmt.Errorf("workbook has no sheet")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return clientbook.RawTable{}, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return fromRecords(rows[0], rows[1:]), nil
}
