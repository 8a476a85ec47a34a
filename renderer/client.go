package renderer

import (
	"bytes"
	"fmt"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/format"
	md "github.com/nao1215/markdown"
)

// ClientMarkdown renders the detail view of a single client.
func ClientMarkdown(row clientbook.Row, f *format.Formatter) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	s := f.Row(row)
	doc.H1(s.Client)
	if s.Advisor != "" {
		doc.PlainText(fmt.Sprintf("Advisor: %s", s.Advisor))
	} else {
		doc.PlainText("No advisor.")
	}

	doc.H2("Portfolio")
	doc.Table(md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"Assets", s.Assets},
			{"Return (12 months)", s.Return12m},
			{"Dividends (12 months)", s.Dividends12m},
		},
	})

	doc.H2("Rebalancing")
	doc.Table(md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"Last rebalance", s.LastRebalance},
			{"Next rebalance", s.NextRebalance},
			{"Status", s.Status},
		},
	})

	return doc.String()
}
