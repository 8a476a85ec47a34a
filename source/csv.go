package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

// ReadCSV reads a delimited text table whose first line is the header.
//
// When opts.Comma is 0 the separator is ';' if the header line holds one,
// ',' otherwise. Cells are kept as text.
func ReadCSV(r io.Reader, opts Options) (clientbook.RawTable, error) {
	br := bufio.NewReader(r)
	comma := opts.Comma
	if comma == 0 {
		line, err := br.Peek(br.Size())
		if err != nil && err != io.EOF {
			return clientbook.RawTable{}, err
		}
		comma = detectComma(line)
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return clientbook.RawTable{}, fmt.Errorf("cannot parse CSV: %w", err)
	}
	if len(records) == 0 {
		return clientbook.RawTable{}, fmt.Errorf("cannot parse CSV: no header line")
	}
	return fromRecords(records[0], records[1:]), nil
}

// detectComma guesses the separator from the header line.
func detectComma(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if strings.ContainsRune(string(head), ';') {
		return ';'
	}
	return ','
}

// WriteCSV writes t with the canonical column names, in the export format
// expected by ReadCSV: numbers use ',' as the decimal separator and dates are
// ISO-8601. The separator is opts.Comma, ';' when 0.
func WriteCSV(w io.Writer, t clientbook.Table, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.Comma
	if cw.Comma == 0 {
		cw.Comma = ';'
	}

	header := make([]string, len(clientbook.Fields))
	for i, f := range clientbook.Fields {
		header[i] = string(f)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, r := range t {
		rec := []string{
			r.Client,
			r.Advisor.Or(""),
			number(r.Assets),
			number(r.Return12m),
			number(r.Dividends12m),
			day(r.LastRebalance),
			day(r.NextRebalance),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("cannot write CSV record %q: %w", r.Client, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func number(v clientbook.Optional[decimal.Decimal]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return strings.Replace(d.String(), ".", ",", 1)
}

func day(v clientbook.Optional[date.Date]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return d.String()
}
