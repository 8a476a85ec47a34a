package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, time.June, 31), New(2025, time.July, 1); got != want {
		t.Errorf("New(2025, 6, 31) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{" 2025-07-05 ", New(2025, time.July, 5), false},
		{"invalid-date", Date{}, true},
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"-2w", today.Add(-14), false},
		{"+1y", New(today.Year()+1, today.Month(), today.Day()), false},
		{"1d", Date{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.err {
			t.Errorf("Parse(%q) error = %v, want error %v", tt.input, err, tt.err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	want := New(2025, time.July, 5)
	for _, input := range []string{
		"2025-07-05",
		"2025-7-5",
		"2025-07-05T00:00:00Z",
		"2025-07-05 00:00:00",
		"05/07/2025",
		"5/7/2025",
		"05-07-2025",
		"05.07.2025",
	} {
		got, err := ParseValue(input)
		if err != nil {
			t.Errorf("ParseValue(%q) unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseValue(%q) = %v, want %v", input, got, want)
		}
	}

	for _, input := range []string{"", "soon", "2025-13-40", "-1d"} {
		if _, err := ParseValue(input); err == nil {
			t.Errorf("ParseValue(%q) expected an error", input)
		}
	}
}

func TestDaysSince(t *testing.T) {
	ref := New(2025, time.July, 1)
	tests := []struct {
		d    Date
		want int
	}{
		{ref, 0},
		{New(2025, time.July, 5), 4},
		{New(2025, time.June, 30), -1},
		{New(2025, time.July, 31), 30},
		{New(2026, time.July, 1), 365},
	}
	for _, tt := range tests {
		if got := tt.d.DaysSince(ref); got != tt.want {
			t.Errorf("%v.DaysSince(%v) = %d, want %d", tt.d, ref, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := New(2025, time.July, 5).Format("02/01/2006"); got != "05/07/2025" {
		t.Errorf("Format() = %q, want %q", got, "05/07/2025")
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.February, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != `"2025-02-15"` {
		t.Errorf("Marshal() = %s, want %q", data, `"2025-02-15"`)
	}
	var got Date
	if err := json.Unmarshal([]byte(`"15/02/2025"`), &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v, want %v", got, d)
	}
}
