package clientbook

import (
	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

// Field identifies a column of the canonical schema.
type Field string

const (
	ClientName        Field = "client_name"
	AdvisorName       Field = "advisor_name"
	AssetsValue       Field = "assets_value"
	Return12m         Field = "return_12m"
	Dividends12m      Field = "dividends_12m"
	LastRebalanceDate Field = "last_rebalance_date"
	NextRebalanceDate Field = "next_rebalance_date"
)

// Fields lists the canonical fields in schema order.
var Fields = []Field{
	ClientName,
	AdvisorName,
	AssetsValue,
	Return12m,
	Dividends12m,
	LastRebalanceDate,
	NextRebalanceDate,
}

// Record is one client portfolio in the canonical schema.
type Record struct {
	Client        string // never empty
	Advisor       Optional[string]
	Assets        Optional[decimal.Decimal] // market value of the fund holdings, non negative
	Return12m     Optional[decimal.Decimal] // trailing 12 months return as a fraction: 0.092 is 9.2%
	Dividends12m  Optional[decimal.Decimal] // non negative
	LastRebalance Optional[date.Date]
	NextRebalance Optional[date.Date]
}

// Table is an ordered sequence of records, in input order.
type Table []Record

// Row is a Record tagged with its derived rebalancing status.
type Row struct {
	Record
	Status Status
}

// View is an ordered sequence of rows.
type View []Row

// RawTable is a loosely shaped input table, as produced by a file reader.
//
// Columns holds the column names in input order. Each row maps a column name to
// its cell value: a string, a Go number, a json.Number, a decimal.Decimal,
// a time.Time, a date.Date or nil.
type RawTable struct {
	Columns []string
	Rows    []map[string]any
}
