package domain

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"}

// Number converts numeric values (and numeric strings) to float64
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Date converts time values and date-like strings to time.Time
func Date(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return parseDate(t)
	case fmt.Stringer:
		// TOML local dates and datetimes decode to their own types
		return parseDate(t.String())
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CompareMode is how the values of one sort key are ordered
type CompareMode int

const (
	CompareText CompareMode = iota
	CompareNumber
	CompareDate
	CompareBool
)

// ModeOf picks a single comparison for a whole set of values. Numbers, dates
// and bools are compared as such only when every value is of that kind;
// strings always compare as text, and any mix falls back to text. One mode
// per set keeps the ordering total.
func ModeOf(values []any) CompareMode {
	if len(values) == 0 {
		return CompareText
	}
	number, date, boolean := true, true, true
	for _, v := range values {
		if _, isText := v.(string); isText {
			return CompareText
		}
		if _, ok := Number(v); !ok {
			number = false
		}
		if _, ok := Date(v); !ok {
			date = false
		}
		if _, ok := v.(bool); !ok {
			boolean = false
		}
	}
	switch {
	case number:
		return CompareNumber
	case date:
		return CompareDate
	case boolean:
		return CompareBool
	}
	return CompareText
}

// CompareAs orders a and b under mode. Both values must belong to a set
// whose mode is mode.
func CompareAs(mode CompareMode, a, b any) int {
	switch mode {
	case CompareNumber:
		an, _ := Number(a)
		bn, _ := Number(b)
		return cmp.Compare(an, bn)
	case CompareDate:
		at, _ := Date(a)
		bt, _ := Date(b)
		return at.Compare(bt)
	case CompareBool:
		return compareBool(a.(bool), b.(bool))
	}
	return strings.Compare(FieldText(a), FieldText(b))
}

// Compare loosely orders a single pair of values, coercing numeric and
// date-like strings. It suits threshold checks against configured values;
// sorting uses ModeOf and CompareAs instead.
func Compare(a, b any) int {
	if an, ok := Number(a); ok {
		if bn, ok := Number(b); ok {
			return cmp.Compare(an, bn)
		}
	}
	if at, ok := Date(a); ok {
		if bt, ok := Date(b); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			return compareBool(ab, bb)
		}
	}
	return strings.Compare(FieldText(a), FieldText(b))
}

// IsEmpty reports whether a field value carries nothing to sort on
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
