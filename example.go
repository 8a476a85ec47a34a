package clientbook

import (
	"time"

	"github.com/convexa/clientbook/date"
)

// Example returns the built-in example dataset, in the canonical schema.
func Example() RawTable {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = string(f)
	}
	row := func(client, advisor string, assets, ret, dividends float64, last, next date.Date) map[string]any {
		return map[string]any{
			string(ClientName):        client,
			string(AdvisorName):       advisor,
			string(AssetsValue):       assets,
			string(Return12m):         ret,
			string(Dividends12m):      dividends,
			string(LastRebalanceDate): last,
			string(NextRebalanceDate): next,
		}
	}
	return RawTable{
		Columns: cols,
		Rows: []map[string]any{
			row("João da Silva", "Pedro", 185_430.00, 0.092, 12_840.00,
				date.New(2025, time.February, 15), date.New(2025, time.August, 15)),
			row("Maria Fernandes", "Vanessa", 92_710.00, 0.047, 5_320.00,
				date.New(2024, time.January, 10), date.New(2024, time.July, 10)),
			row("Carlos Pereira", "Luciano", 302_500.00, 0.118, 24_890.00,
				date.New(2025, time.January, 5), date.New(2025, time.July, 5)),
			row("Ana Costa", "Vanessa", 154_200.00, 0.063, 10_340.00,
				date.New(2024, time.October, 1), date.New(2025, time.April, 1)),
		},
	}
}
