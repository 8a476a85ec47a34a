package format

import (
	"testing"
	"time"

	"github.com/convexa/clientbook"
	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

func dec(s string) clientbook.Optional[decimal.Decimal] {
	return clientbook.Some(decimal.RequireFromString(s))
}

func TestCurrency(t *testing.T) {
	f := Default()
	tests := []struct {
		value clientbook.Optional[decimal.Decimal]
		want  string
	}{
		{dec("302500.00"), "R$ 302.500,00"},
		{dec("302500"), "R$ 302.500,00"},
		{dec("185430"), "R$ 185.430,00"},
		{dec("1234567.891"), "R$ 1.234.567,89"},
		{dec("999.995"), "R$ 1.000,00"},
		{dec("0.5"), "R$ 0,50"},
		{dec("0"), "R$ 0,00"},
		{dec("-12.3"), "-R$ 12,30"},
		{dec("92233720368547758.07"), "R$ 92.233.720.368.547.758,07"},
		{dec("100000000000000000"), "R$ 100.000.000.000.000.000,00"},
		{dec("-123456789012345678.905"), "-R$ 123.456.789.012.345.678,91"},
		{clientbook.None[decimal.Decimal](), ""},
	}
	for _, tt := range tests {
		if got := f.Currency(tt.value); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.value.Or(decimal.Zero), got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	f := Default()
	tests := []struct {
		value clientbook.Optional[decimal.Decimal]
		want  string
	}{
		{dec("0.118"), "11,80 %"},
		{dec("0.092"), "9,20 %"},
		{dec("0.175"), "17,50 %"},
		{dec("0"), "0,00 %"},
		{dec("-0.047"), "-4,70 %"},
		{dec("1.5"), "150,00 %"},
		{dec("0.12345"), "12,35 %"},
		{clientbook.None[decimal.Decimal](), ""},
	}
	for _, tt := range tests {
		if got := f.Percent(tt.value); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.value.Or(decimal.Zero), got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	f := Default()
	if got := f.Date(clientbook.Some(date.New(2025, time.July, 5))); got != "05/07/2025" {
		t.Errorf("Date() = %q, want %q", got, "05/07/2025")
	}
	got := f.Date(clientbook.None[date.Date]())
	if got != "n/a" {
		t.Errorf("Date(absent) = %q, want %q", got, "n/a")
	}
	if got == f.Currency(clientbook.None[decimal.Decimal]()) {
		t.Errorf("absent date placeholder %q must differ from the absent amount placeholder", got)
	}
}

func TestCustomConvention(t *testing.T) {
	c := DefaultConvention
	c.Symbol, c.Decimal, c.Thousand, c.Template = "$", ".", ",", "$1"
	c.PercentSuffix = "%"
	c.DateLayout = "2006-01-02"
	f := New(c)

	if got := f.Amount(decimal.RequireFromString("302500")); got != "$302,500.00" {
		t.Errorf("Amount() = %q, want %q", got, "$302,500.00")
	}
	if got := f.Fraction(decimal.RequireFromString("0.118")); got != "11.80%" {
		t.Errorf("Fraction() = %q, want %q", got, "11.80%")
	}
	if got := f.Date(clientbook.Some(date.New(2025, time.July, 5))); got != "2025-07-05" {
		t.Errorf("Date() = %q, want %q", got, "2025-07-05")
	}
}

func TestRow(t *testing.T) {
	row := clientbook.Row{
		Record: clientbook.Record{
			Client:        "Carlos Pereira",
			Advisor:       clientbook.Some("Luciano"),
			Assets:        dec("302500.00"),
			Return12m:     dec("0.118"),
			Dividends12m:  dec("24890.00"),
			LastRebalance: clientbook.Some(date.New(2025, time.January, 5)),
		},
		Status: clientbook.Upcoming,
	}
	want := Strings{
		Client:        "Carlos Pereira",
		Advisor:       "Luciano",
		Assets:        "R$ 302.500,00",
		Return12m:     "11,80 %",
		Dividends12m:  "R$ 24.890,00",
		LastRebalance: "05/01/2025",
		NextRebalance: "n/a",
		Status:        "Upcoming",
	}
	if got := Default().Row(row); got != want {
		t.Errorf("Row() = %+v, want %+v", got, want)
	}
}

func TestKPIs(t *testing.T) {
	f := Default()

	empty := f.KPIs(clientbook.Aggregate(nil))
	if empty.TotalAssets != "R$ 0,00" || empty.TotalDividends12m != "R$ 0,00" {
		t.Errorf("KPIs(empty) totals = %q, %q, want R$ 0,00", empty.TotalAssets, empty.TotalDividends12m)
	}
	if empty.WeightedReturn12m != "n/a" {
		t.Errorf("KPIs(empty).WeightedReturn12m = %q, want %q", empty.WeightedReturn12m, "n/a")
	}
	if len(empty.StatusCounts) != len(clientbook.Statuses) {
		t.Fatalf("KPIs(empty) has %d status counts, want %d", len(empty.StatusCounts), len(clientbook.Statuses))
	}
	for _, sc := range empty.StatusCounts {
		if sc.Count != 0 {
			t.Errorf("KPIs(empty) count of %v = %d, want 0", sc.Status, sc.Count)
		}
	}

	k := clientbook.KPIs{Clients: 2, TotalAssets: decimal.NewFromInt(400), WeightedReturn12m: dec("0.175")}
	k.StatusCounts[clientbook.Overdue] = 2
	ks := f.KPIs(k)
	if ks.WeightedReturn12m != "17,50 %" {
		t.Errorf("KPIs().WeightedReturn12m = %q, want %q", ks.WeightedReturn12m, "17,50 %")
	}
	if ks.StatusCounts[2].Label != "Overdue" || ks.StatusCounts[2].Count != 2 {
		t.Errorf("KPIs().StatusCounts[2] = %+v, want Overdue: 2", ks.StatusCounts[2])
	}
}
