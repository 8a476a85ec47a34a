package renderer

import (
	"bytes"
	"fmt"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/format"
	md "github.com/nao1215/markdown"
)

// AdvisorsMarkdown renders the per advisor figures, one line per advisor and a
// column per status.
func AdvisorsMarkdown(advisors []clientbook.AdvisorKPIs, f *format.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Advisors")
	if len(advisors) == 0 {
		doc.PlainText("No client matches the filter.")
		return doc.String()
	}

	header := []string{"Advisor", "Clients", "Assets", "Dividends (12 months)", "Weighted return (12 months)"}
	for _, s := range clientbook.Statuses {
		header = append(header, f.Status(s))
	}

	var rows [][]string
	for _, a := range advisors {
		k := f.KPIs(a.KPIs)
		row := []string{
			cell(a.Advisor.Or(f.Convention().NotAvailable)),
			k.Clients,
			k.TotalAssets,
			k.TotalDividends12m,
			k.WeightedReturn12m,
		}
		for _, c := range k.StatusCounts {
			row = append(row, fmt.Sprint(c.Count))
		}
		rows = append(rows, row)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})

	return doc.String()
}
