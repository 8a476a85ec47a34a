// Package format renders portfolio values as display strings.
//
// Formatting rules are fixed by a [Convention]. Every function is total: an
// absent value renders as a placeholder, never as an error.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

// StatusLabels are the display labels of each status.
type StatusLabels struct {
	OnTrack  string
	Upcoming string
	Overdue  string
	NoDate   string
}

// Convention is a fixed set of formatting rules.
type Convention struct {
	Symbol          string // currency symbol
	Decimal         string // decimal separator
	Thousand        string // group separator
	Template        string // currency layout, '$' is the symbol and '1' the amount
	PercentSuffix   string
	DateLayout      string // as in time.Format
	DatePlaceholder string // for an absent date
	NotAvailable    string // for a KPI that cannot be computed
	Labels          StatusLabels
}

// DefaultConvention renders amounts like "R$ 302.500,00", percentages like
// "11,80 %" and dates like "05/07/2025".
var DefaultConvention = Convention{
	Symbol:          "R$",
	Decimal:         ",",
	Thousand:        ".",
	Template:        "$ 1",
	PercentSuffix:   " %",
	DateLayout:      "02/01/2006",
	DatePlaceholder: "n/a",
	NotAvailable:    "n/a",
	Labels: StatusLabels{
		OnTrack:  "On track",
		Upcoming: "Upcoming",
		Overdue:  "Overdue",
		NoDate:   "No date",
	},
}

// currencyFraction is the number of decimals of every amount.
const currencyFraction = 2

// Formatter renders values according to a Convention. It is stateless and
// safe for concurrent use.
type Formatter struct {
	conv  Convention
	money *money.Formatter
}

// New returns a Formatter for c.
func New(c Convention) *Formatter {
	return &Formatter{
		conv:  c,
		money: money.NewFormatter(currencyFraction, c.Decimal, c.Thousand, c.Symbol, c.Template),
	}
}

// Default returns a Formatter for DefaultConvention.
func Default() *Formatter { return New(DefaultConvention) }

// Convention returns the rules f applies.
func (f *Formatter) Convention() Convention { return f.conv }

// maxMinor is the largest amount, in minor units, that go-money can format.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Amount formats a monetary amount.
func (f *Formatter) Amount(d decimal.Decimal) string {
	minor := d.Round(currencyFraction).Shift(currencyFraction)
	if minor.Abs().LessThanOrEqual(maxMinor) {
		return f.money.Format(minor.IntPart())
	}
	return f.largeAmount(minor)
}

// largeAmount formats minor units beyond int64 the way go-money does.
func (f *Formatter) largeAmount(minor decimal.Decimal) string {
	digits := minor.Abs().Truncate(0).String()
	units, cents := digits[:len(digits)-currencyFraction], digits[len(digits)-currencyFraction:]
	if f.conv.Thousand != "" {
		for i := len(units) - 3; i > 0; i -= 3 {
			units = units[:i] + f.conv.Thousand + units[i:]
		}
	}
	s := strings.Replace(f.conv.Template, "1", units+f.conv.Decimal+cents, 1)
	s = strings.Replace(s, "$", f.conv.Symbol, 1)
	if minor.IsNegative() {
		s = "-" + s
	}
	return s
}

// Currency formats an optional amount, "" when absent.
func (f *Formatter) Currency(v clientbook.Optional[decimal.Decimal]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return f.Amount(d)
}

// Fraction formats a fraction as a percentage with two decimals: 0.118 is "11,80 %".
func (f *Formatter) Fraction(d decimal.Decimal) string {
	s := d.Mul(decimal.NewFromInt(100)).StringFixed(2)
	return strings.Replace(s, ".", f.conv.Decimal, 1) + f.conv.PercentSuffix
}

// Percent formats an optional fraction, "" when absent.
func (f *Formatter) Percent(v clientbook.Optional[decimal.Decimal]) string {
	d, ok := v.Get()
	if !ok {
		return ""
	}
	return f.Fraction(d)
}

// Date formats an optional date, the date placeholder when absent.
func (f *Formatter) Date(v clientbook.Optional[date.Date]) string {
	d, ok := v.Get()
	if !ok {
		return f.conv.DatePlaceholder
	}
	return d.Format(f.conv.DateLayout)
}

// Status returns the display label of s.
func (f *Formatter) Status(s clientbook.Status) string {
	switch s {
	case clientbook.OnTrack:
		return f.conv.Labels.OnTrack
	case clientbook.Upcoming:
		return f.conv.Labels.Upcoming
	case clientbook.Overdue:
		return f.conv.Labels.Overdue
	case clientbook.NoDate:
		return f.conv.Labels.NoDate
	default:
		return s.String()
	}
}

// Strings is the display form of a row.
type Strings struct {
	Client        string
	Advisor       string
	Assets        string
	Return12m     string
	Dividends12m  string
	LastRebalance string
	NextRebalance string
	Status        string
}

// Row formats every field of r.
func (f *Formatter) Row(r clientbook.Row) Strings {
	return Strings{
		Client:        r.Client,
		Advisor:       r.Advisor.Or(""),
		Assets:        f.Currency(r.Assets),
		Return12m:     f.Percent(r.Return12m),
		Dividends12m:  f.Currency(r.Dividends12m),
		LastRebalance: f.Date(r.LastRebalance),
		NextRebalance: f.Date(r.NextRebalance),
		Status:        f.Status(r.Status),
	}
}

// StatusCount is the display form of a status count.
type StatusCount struct {
	Status clientbook.Status
	Label  string
	Count  int
}

// KPIStrings is the display form of KPIs.
type KPIStrings struct {
	Clients           string
	TotalAssets       string
	TotalDividends12m string
	WeightedReturn12m string
	StatusCounts      []StatusCount // one per status, in display order
}

// KPIs formats k. An absent weighted return renders as the not available placeholder.
func (f *Formatter) KPIs(k clientbook.KPIs) KPIStrings {
	ks := KPIStrings{
		Clients:           strconv.Itoa(k.Clients),
		TotalAssets:       f.Amount(k.TotalAssets),
		TotalDividends12m: f.Amount(k.TotalDividends12m),
		WeightedReturn12m: f.conv.NotAvailable,
	}
	if ret, ok := k.WeightedReturn12m.Get(); ok {
		ks.WeightedReturn12m = f.Fraction(ret)
	}
	for _, s := range clientbook.Statuses {
		ks.StatusCounts = append(ks.StatusCounts, StatusCount{Status: s, Label: f.Status(s), Count: k.StatusCounts.Get(s)})
	}
	return ks
}
