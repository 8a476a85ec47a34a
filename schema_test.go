package clientbook

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

// canonicalColumns returns the canonical field names as raw columns.
func canonicalColumns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = string(f)
	}
	return cols
}

func TestResolveAliases(t *testing.T) {
	columns := []string{"Client", "ADVISOR", "fund_assets_value", "Annual_Return_12m", "income_12m", "last_rebalance_date", " Next_Rebalance_Date "}
	m, err := DefaultAliases().Resolve(columns)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	want := Mapping{
		ClientName:        "Client",
		AdvisorName:       "ADVISOR",
		AssetsValue:       "fund_assets_value",
		Return12m:         "Annual_Return_12m",
		Dividends12m:      "income_12m",
		LastRebalanceDate: "last_rebalance_date",
		NextRebalanceDate: " Next_Rebalance_Date ",
	}
	for f, col := range want {
		if m[f] != col {
			t.Errorf("Resolve()[%s] = %q, want %q", f, m[f], col)
		}
	}
}

func TestResolveAliasPriority(t *testing.T) {
	// "client" comes before "name" in the aliases, whatever the column order.
	columns := append([]string{"name"}, canonicalColumns()[1:]...)
	columns = append(columns, "CLIENT")
	m, err := DefaultAliases().Resolve(columns)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if m[ClientName] != "CLIENT" {
		t.Errorf("Resolve()[client_name] = %q, want %q", m[ClientName], "CLIENT")
	}

	// Two columns matching the same alias: the first one wins.
	columns = append(canonicalColumns(), "Client_Name")
	m, err = DefaultAliases().Resolve(columns)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if m[ClientName] != "client_name" {
		t.Errorf("Resolve()[client_name] = %q, want %q", m[ClientName], "client_name")
	}
}

func TestResolveMissingField(t *testing.T) {
	for _, missing := range Fields {
		var columns []string
		for _, c := range canonicalColumns() {
			if c != string(missing) {
				columns = append(columns, c)
			}
		}
		columns = append(columns, "unrelated")

		_, err := DefaultAliases().Resolve(columns)
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("Resolve() without %s: error = %v, want ErrMissingFields", missing, err)
		}
		var serr *SchemaError
		if !errors.As(err, &serr) {
			t.Fatalf("Resolve() without %s: error %T is not a *SchemaError", missing, err)
		}
		if !slices.Equal(serr.Missing, []Field{missing}) {
			t.Errorf("Resolve() without %s: Missing = %v, want [%s]", missing, serr.Missing, missing)
		}
	}
}

func TestResolveReportsAllMissingFields(t *testing.T) {
	_, err := DefaultAliases().Resolve([]string{"cliente", "assessor"})
	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("Resolve() error = %v, want a *SchemaError", err)
	}
	if !slices.Equal(serr.Missing, Fields) {
		t.Errorf("Missing = %v, want %v", serr.Missing, Fields)
	}
	want := "missing fields: client_name, advisor_name, assets_value, return_12m, dividends_12m, last_rebalance_date, next_rebalance_date"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAliasesWith(t *testing.T) {
	a := DefaultAliases().With(ClientName, "cliente")
	if _, err := a.Resolve(append([]string{"Cliente"}, canonicalColumns()[1:]...)); err != nil {
		t.Errorf("Resolve() with a custom alias unexpected error: %v", err)
	}
	// the replaced list no longer accepts the default aliases.
	if _, err := a.Resolve(canonicalColumns()); !errors.Is(err, ErrMissingFields) {
		t.Errorf("Resolve() error = %v, want ErrMissingFields", err)
	}
	// the receiver is not modified.
	if !slices.Equal(DefaultAliases().Of(ClientName), []string{"client", "client_name", "name"}) {
		t.Errorf("With() modified the default aliases")
	}
}

func TestNormalize(t *testing.T) {
	raw := RawTable{
		Columns: []string{"Client", "Advisor", "assets_value", "return_12m", "dividends_12m", "last_rebalance_date", "next_rebalance_date", "extra"},
		Rows: []map[string]any{
			{
				"Client": " Carlos Pereira ", "Advisor": "Luciano", "assets_value": "302.500,00", "return_12m": "0,118",
				"dividends_12m": 24890.0, "last_rebalance_date": "05/01/2025", "next_rebalance_date": "2025-07-05", "extra": "ignored",
			},
			{
				"Client": "Ana Costa", "Advisor": "", "assets_value": 154200, "return_12m": nil,
				"dividends_12m": "", "last_rebalance_date": "someday", "next_rebalance_date": date.New(2025, time.April, 1),
			},
			{
				"Client": "  ", "Advisor": "Pedro", "assets_value": 1,
			},
		},
	}

	table, warnings, err := Normalize(raw, DefaultAliases())
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("Normalize() returned %d records, want 2", len(table))
	}

	carlos := table[0]
	if carlos.Client != "Carlos Pereira" {
		t.Errorf("Client = %q, want %q", carlos.Client, "Carlos Pereira")
	}
	if got := carlos.Advisor.Or("?"); got != "Luciano" {
		t.Errorf("Advisor = %q, want %q", got, "Luciano")
	}
	if got, ok := carlos.Assets.Get(); !ok || !got.Equal(decimal.NewFromInt(302500)) {
		t.Errorf("Assets = %v, %v, want 302500", got, ok)
	}
	if got, ok := carlos.Return12m.Get(); !ok || !got.Equal(decimal.RequireFromString("0.118")) {
		t.Errorf("Return12m = %v, %v, want 0.118", got, ok)
	}
	if got, ok := carlos.Dividends12m.Get(); !ok || !got.Equal(decimal.NewFromInt(24890)) {
		t.Errorf("Dividends12m = %v, %v, want 24890", got, ok)
	}
	if got, ok := carlos.LastRebalance.Get(); !ok || got != date.New(2025, time.January, 5) {
		t.Errorf("LastRebalance = %v, %v, want 2025-01-05", got, ok)
	}
	if got, ok := carlos.NextRebalance.Get(); !ok || got != date.New(2025, time.July, 5) {
		t.Errorf("NextRebalance = %v, %v, want 2025-07-05", got, ok)
	}

	ana := table[1]
	if ana.Advisor.Present() {
		t.Errorf("Advisor of %s is present, want absent", ana.Client)
	}
	if ana.Return12m.Present() || ana.Dividends12m.Present() {
		t.Errorf("blank return or dividends of %s are present, want absent", ana.Client)
	}
	if ana.LastRebalance.Present() {
		t.Errorf("unparsable LastRebalance of %s is present, want absent", ana.Client)
	}

	wantWarnings := []Warning{
		{Kind: DateParseWarning, Row: 2, Field: LastRebalanceDate, Value: "someday"},
		{Kind: EmptyClientWarning, Row: 3, Field: ClientName, Value: "  "},
	}
	if !slices.Equal(warnings, wantWarnings) {
		t.Errorf("warnings = %v, want %v", warnings, wantWarnings)
	}
}

func TestNormalizeNullText(t *testing.T) {
	raw := RawTable{
		Columns: canonicalColumns(),
		Rows: []map[string]any{
			{"client_name": "nan", "advisor_name": "Pedro"},
			{"client_name": "Ana Costa", "advisor_name": "-"},
			{"client_name": "João da Silva", "advisor_name": "NaN"},
		},
	}
	table, warnings, err := Normalize(raw, DefaultAliases())
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("Normalize() = %d records, want 2", len(table))
	}
	for _, r := range table {
		if r.Advisor.Present() {
			t.Errorf("Advisor of %s = %q, want absent", r.Client, r.Advisor.Or(""))
		}
	}
	want := []Warning{{Kind: EmptyClientWarning, Row: 1, Field: ClientName, Value: "nan"}}
	if !slices.Equal(warnings, want) {
		t.Errorf("warnings = %v, want %v", warnings, want)
	}
}

func TestNormalizeRejectsAmounts(t *testing.T) {
	raw := RawTable{
		Columns: canonicalColumns(),
		Rows: []map[string]any{
			{"client_name": "A", "assets_value": "-10", "dividends_12m": "lots", "return_12m": "-0.05"},
		},
	}
	table, warnings, err := Normalize(raw, DefaultAliases())
	if err != nil {
		t.Fatalf("Normalize() unexpected error: %v", err)
	}
	if table[0].Assets.Present() || table[0].Dividends12m.Present() {
		t.Errorf("negative or malformed amounts are present, want absent")
	}
	if got, ok := table[0].Return12m.Get(); !ok || !got.Equal(decimal.RequireFromString("-0.05")) {
		t.Errorf("a negative return is a valid return, got %v, %v", got, ok)
	}
	wantWarnings := []Warning{
		{Kind: NegativeValueWarning, Row: 1, Field: AssetsValue, Value: "-10"},
		{Kind: NumberParseWarning, Row: 1, Field: Dividends12m, Value: "lots"},
	}
	if !slices.Equal(warnings, wantWarnings) {
		t.Errorf("warnings = %v, want %v", warnings, wantWarnings)
	}
}

func TestNormalizeMissingField(t *testing.T) {
	raw := Example()
	raw.Columns = slices.DeleteFunc(slices.Clone(raw.Columns), func(c string) bool { return c == string(Dividends12m) })

	table, _, err := Normalize(raw, DefaultAliases())
	if table != nil {
		t.Errorf("Normalize() returned a partial table %v", table)
	}
	var serr *SchemaError
	if !errors.As(err, &serr) || !slices.Equal(serr.Missing, []Field{Dividends12m}) {
		t.Errorf("Normalize() error = %v, want missing dividends_12m", err)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: DateParseWarning, Row: 2, Field: NextRebalanceDate, Value: "soon"}
	if got, want := w.String(), `row 2: invalid date "soon" in next_rebalance_date`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	w = Warning{Kind: EmptyClientWarning, Row: 7, Field: ClientName}
	if got, want := w.String(), "row 7: empty client, row ignored"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMatch(t *testing.T) {
	cols := []string{" NAME ", "Client", "advisor"}
	a := DefaultAliases()
	if got, ok := a.Match(ClientName, cols); !ok || got != "Client" {
		t.Errorf("Match(client_name) = %q, %v, want Client", got, ok)
	}
	if got, ok := a.Match(AdvisorName, cols); !ok || got != "advisor" {
		t.Errorf("Match(advisor_name) = %q, %v, want advisor", got, ok)
	}
	if got, ok := a.Match(AssetsValue, cols); ok {
		t.Errorf("Match(assets_value) = %q, want no match", got)
	}
}
