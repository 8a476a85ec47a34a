package clientbook

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// FieldAliases lists the raw column names accepted for a canonical field, by priority.
type FieldAliases struct {
	Field   Field
	Aliases []string
}

// Aliases is the ordered list of accepted column names for every canonical field.
type Aliases []FieldAliases

// DefaultAliases returns the built-in aliases.
func DefaultAliases() Aliases {
	return Aliases{
		{ClientName, []string{"client", "client_name", "name"}},
		{AdvisorName, []string{"advisor", "advisor_name"}},
		{AssetsValue, []string{"assets_value", "fund_assets_value"}},
		{Return12m, []string{"return_12m", "annual_return_12m"}},
		{Dividends12m, []string{"dividends_12m", "income_12m"}},
		{LastRebalanceDate, []string{"last_rebalance_date"}},
		{NextRebalanceDate, []string{"next_rebalance_date"}},
	}
}

// Of returns the aliases declared for f.
func (a Aliases) Of(f Field) []string {
	for _, fa := range a {
		if fa.Field == f {
			return fa.Aliases
		}
	}
	return nil
}

// With returns a copy of a where the aliases of f are replaced by names.
func (a Aliases) With(f Field, names ...string) Aliases {
	res := make(Aliases, 0, len(a)+1)
	found := false
	for _, fa := range a {
		if fa.Field == f {
			fa = FieldAliases{Field: f, Aliases: slices.Clone(names)}
			found = true
		}
		res = append(res, fa)
	}
	if !found {
		res = append(res, FieldAliases{Field: f, Aliases: slices.Clone(names)})
	}
	return res
}

// Mapping maps every canonical field onto the raw column it was resolved to.
type Mapping map[Field]string

// ErrMissingFields is matched by a SchemaError.
var ErrMissingFields = errors.New("missing fields")

// SchemaError reports the canonical fields that no raw column could be resolved to.
type SchemaError struct {
	Missing []Field // in canonical order
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%v: %s", ErrMissingFields, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrMissingFields) true for any SchemaError.
func (e *SchemaError) Is(target error) bool { return target == ErrMissingFields }

// Resolve maps every canonical field onto one of columns.
//
// For each field, aliases are tried in priority order and, for each alias,
// columns in their input order. Comparison ignores case and surrounding spaces.
// The first match wins. If any field is left unresolved, Resolve returns a
// *SchemaError listing them all, and no mapping.
func (a Aliases) Resolve(columns []string) (Mapping, error) {
	keys := columnKeys(columns)
	m := make(Mapping, len(Fields))
	var missing []Field
	for _, f := range Fields {
		i := a.match(f, keys)
		if i < 0 {
			missing = append(missing, f)
			continue
		}
		m[f] = columns[i]
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return m, nil
}

// Match returns the column of columns that f resolves to, as Resolve does.
func (a Aliases) Match(f Field, columns []string) (string, bool) {
	if i := a.match(f, columnKeys(columns)); i >= 0 {
		return columns[i], true
	}
	return "", false
}

// match returns the index in keys of the column f resolves to, or -1.
func (a Aliases) match(f Field, keys []string) int {
	fold := cases.Fold()
	for _, alias := range a.Of(f) {
		key := fold.String(strings.TrimSpace(alias))
		if i := slices.Index(keys, key); i >= 0 {
			return i
		}
	}
	return -1
}

func columnKeys(columns []string) []string {
	fold := cases.Fold()
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = fold.String(strings.TrimSpace(c))
	}
	return keys
}

// WarningKind classifies a non fatal normalization problem.
type WarningKind int

const (
	DateParseWarning     WarningKind = iota + 1 // a date cell could not be parsed, the date is absent
	NumberParseWarning                          // a numeric cell could not be parsed, the number is absent
	NegativeValueWarning                        // a negative amount where only non negative ones make sense, the amount is absent
	EmptyClientWarning                          // the row has no client name and was dropped
)

func (k WarningKind) String() string {
	switch k {
	case DateParseWarning:
		return "invalid date"
	case NumberParseWarning:
		return "invalid number"
	case NegativeValueWarning:
		return "negative amount"
	case EmptyClientWarning:
		return "empty client"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning reports a cell that normalization could not use.
type Warning struct {
	Kind  WarningKind
	Row   int // 1-based position of the row in the raw table
	Field Field
	Value any // the raw cell
}

func (w Warning) String() string {
	if w.Kind == EmptyClientWarning {
		return fmt.Sprintf("row %d: %s, row ignored", w.Row, w.Kind)
	}
	return fmt.Sprintf("row %d: %s %q in %s", w.Row, w.Kind, fmt.Sprint(w.Value), w.Field)
}

// Normalize maps raw onto the canonical schema.
//
// It fails with a *SchemaError when a canonical field cannot be resolved,
// otherwise it never fails: malformed cells become absent values and are
// reported as warnings, rows without a client name are dropped.
func Normalize(raw RawTable, aliases Aliases) (Table, []Warning, error) {
	m, err := aliases.Resolve(raw.Columns)
	if err != nil {
		return nil, nil, err
	}

	t := make(Table, 0, len(raw.Rows))
	var warnings []Warning
	for i, cells := range raw.Rows {
		n := rowNormalizer{cells: cells, mapping: m, row: i + 1}
		rec, ok := n.record()
		warnings = append(warnings, n.warnings...)
		if ok {
			t = append(t, rec)
		}
	}
	return t, warnings, nil
}

// rowNormalizer builds a single Record and collects its warnings.
type rowNormalizer struct {
	cells    map[string]any
	mapping  Mapping
	row      int
	warnings []Warning
}

func (n *rowNormalizer) cell(f Field) any { return n.cells[n.mapping[f]] }

func (n *rowNormalizer) warn(k WarningKind, f Field) {
	n.warnings = append(n.warnings, Warning{Kind: k, Row: n.row, Field: f, Value: n.cell(f)})
}

func (n *rowNormalizer) text(f Field) Optional[string] { return textValue(n.cell(f)) }

func (n *rowNormalizer) number(f Field) Optional[decimal.Decimal] {
	v, malformed := numberValue(n.cell(f))
	if malformed {
		n.warn(NumberParseWarning, f)
	}
	return v
}

func (n *rowNormalizer) amount(f Field) Optional[decimal.Decimal] {
	v := n.number(f)
	if d, ok := v.Get(); ok && d.IsNegative() {
		n.warn(NegativeValueWarning, f)
		return None[decimal.Decimal]()
	}
	return v
}

func (n *rowNormalizer) date(f Field) Optional[date.Date] {
	v, malformed := dateValue(n.cell(f))
	if malformed {
		n.warn(DateParseWarning, f)
	}
	return v
}

func (n *rowNormalizer) record() (Record, bool) {
	client, ok := n.text(ClientName).Get()
	if !ok {
		n.warn(EmptyClientWarning, ClientName)
		return Record{}, false
	}
	return Record{
		Client:        client,
		Advisor:       n.text(AdvisorName),
		Assets:        n.amount(AssetsValue),
		Return12m:     n.number(Return12m),
		Dividends12m:  n.amount(Dividends12m),
		LastRebalance: n.date(LastRebalanceDate),
		NextRebalance: n.date(NextRebalanceDate),
	}, true
}
