package clientbook

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/convexa/clientbook/date"
	"github.com/shopspring/decimal"
)

// this file converts raw cells into typed optional values.
// Each converter returns the value and whether the cell was malformed.
// A blank cell is absent but not malformed.

// nullTokens are cell contents that spreadsheet and dataframe exports use for "no value".
var nullTokens = map[string]bool{
	"":     true,
	"-":    true,
	"nan":  true,
	"nat":  true,
	"null": true,
	"none": true,
	"n/a":  true,
}

func isNullText(s string) bool { return nullTokens[strings.ToLower(s)] }

func cleanText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return unicode.IsSpace(r) })
}

// textValue converts a cell to trimmed text. Null tokens like "nan" or "-" are absent.
func textValue(v any) Optional[string] {
	var s string
	switch x := v.(type) {
	case nil:
		return None[string]()
	case string:
		s = x
	case float64:
		if math.IsNaN(x) {
			return None[string]()
		}
		s = fmt.Sprint(x)
	default:
		s = fmt.Sprint(x)
	}
	s = cleanText(s)
	if isNullText(s) {
		return None[string]()
	}
	return Some(s)
}

// numberValue converts a cell to a decimal number.
func numberValue(v any) (n Optional[decimal.Decimal], malformed bool) {
	switch x := v.(type) {
	case nil:
		return None[decimal.Decimal](), false
	case decimal.Decimal:
		return Some(x), false
	case float64:
		if math.IsNaN(x) {
			return None[decimal.Decimal](), false
		}
		if math.IsInf(x, 0) {
			return None[decimal.Decimal](), true
		}
		return Some(decimal.NewFromFloat(x)), false
	case float32:
		return numberValue(float64(x))
	case int:
		return Some(decimal.NewFromInt(int64(x))), false
	case int32:
		return Some(decimal.NewFromInt32(x)), false
	case int64:
		return Some(decimal.NewFromInt(x)), false
	case uint32:
		return Some(decimal.NewFromInt(int64(x))), false
	case json.Number:
		return numberText(string(x))
	case string:
		return numberText(x)
	default:
		return numberText(fmt.Sprint(x))
	}
}

// numberText parses a number written by a human or a spreadsheet.
//
// It accepts '.' or ',' as the decimal separator. When both are present the
// last one is the decimal separator and the other one groups thousands. A
// separator repeated more than once can only be a grouping separator. A
// leading currency symbol is ignored and a trailing '%' divides by 100.
func numberText(s string) (Optional[decimal.Decimal], bool) {
	s = cleanText(s)
	if isNullText(s) {
		return None[decimal.Decimal](), false
	}

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = cleanText(strings.TrimSuffix(s, "%"))
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r)
	})
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return None[decimal.Decimal](), true
	}
	if neg {
		d = d.Neg()
	}
	if percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return Some(d), false
}

// dateValue converts a cell to a calendar date.
func dateValue(v any) (Optional[date.Date], bool) {
	switch x := v.(type) {
	case nil:
		return None[date.Date](), false
	case date.Date:
		if x.IsZero() {
			return None[date.Date](), false
		}
		return Some(x), false
	case time.Time:
		if x.IsZero() {
			return None[date.Date](), false
		}
		return Some(date.Of(x)), false
	case float64:
		if math.IsNaN(x) {
			return None[date.Date](), false
		}
	}
	s := cleanText(fmt.Sprint(v))
	if isNullText(s) {
		return None[date.Date](), false
	}
	d, err := date.ParseValue(s)
	if err != nil {
		return None[date.Date](), true
	}
	return Some(d), false
}
