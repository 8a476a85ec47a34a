package renderer

import (
	"bytes"
	"strings"

	"github.com/convexa/clientbook"
	md "github.com/nao1215/markdown"
)

// FieldsMarkdown renders the accepted column names of every field and, when
// columns is not nil, the column each field resolves to.
func FieldsMarkdown(a clientbook.Aliases, columns []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fields")
	header := []string{"Field", "Accepted names"}
	if columns != nil {
		header = append(header, "Column")
	}
	var rows [][]string
	missing := 0
	for _, f := range clientbook.Fields {
		row := []string{string(f), cell(strings.Join(a.Of(f), ", "))}
		if columns != nil {
			col, ok := a.Match(f, columns)
			if !ok {
				col = "**missing**"
				missing++
			}
			row = append(row, cell(col))
		}
		rows = append(rows, row)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})

	if missing > 0 {
		doc.PlainText("The input cannot be read: the example dataset would be shown instead.")
	}
	return doc.String()
}
