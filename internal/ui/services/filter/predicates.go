package filter

import (
	"errors"
	"fmt"
	"strings"

	"collectionview/internal/domain"
)

// FromSpec builds a definition from a declarative field/operator pair,
// the form filters take in configuration files
func FromSpec(id, label, field, op string, values []any) (Definition, error) {
	if id == "" {
		return Definition{}, errors.New("filter needs an id")
	}
	if field == "" {
		field = id
	}
	if label == "" {
		label = id
	}

	var pred Predicate
	switch strings.ToLower(op) {
	case "", OpEquals:
		pred = fieldEquals(field)
	case OpContains:
		pred = fieldContains(field)
	case OpHas:
		pred = fieldHas(field)
	case OpTruthy:
		pred = fieldTruthy(field)
	case OpGTE:
		pred = fieldCompare(field, func(c int) bool { return c >= 0 })
	case OpLTE:
		pred = fieldCompare(field, func(c int) bool { return c <= 0 })
	default:
		return Definition{}, fmt.Errorf("filter %q: unknown operator %q", id, op)
	}

	return Definition{ID: id, Label: label, Predicate: pred, Values: values}, nil
}

// fieldEquals matches when the field equals the value (text compared case-insensitively)
func fieldEquals(field string) Predicate {
	return func(r domain.Record, value any) bool {
		v, ok := r.Field(field)
		if !ok {
			return false
		}
		if b, isBool := value.(bool); isBool {
			fb, fieldIsBool := v.(bool)
			return fieldIsBool && fb == b
		}
		if vn, ok := domain.Number(v); ok {
			if n, ok := domain.Number(value); ok {
				return vn == n
			}
		}
		return strings.EqualFold(domain.FieldText(v), domain.FieldText(value))
	}
}

func fieldContains(field string) Predicate {
	return func(r domain.Record, value any) bool {
		v, ok := r.Field(field)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(domain.FieldText(v)), strings.ToLower(domain.FieldText(value)))
	}
}

// fieldHas matches list fields containing the value; a list value requires all of them
func fieldHas(field string) Predicate {
	return func(r domain.Record, value any) bool {
		v, ok := r.Field(field)
		if !ok {
			return false
		}
		have := make(map[string]bool)
		for _, s := range listOf(v) {
			have[strings.ToLower(s)] = true
		}
		wants := listOf(value)
		if len(wants) == 0 {
			return true
		}
		for _, w := range wants {
			if !have[strings.ToLower(w)] {
				return false
			}
		}
		return true
	}
}

// fieldTruthy compares the truthiness of the field with a boolean value
func fieldTruthy(field string) Predicate {
	return func(r domain.Record, value any) bool {
		v, _ := r.Field(field)
		want, ok := value.(bool)
		if !ok {
			want = strings.EqualFold(domain.FieldText(value), "true") || domain.FieldText(value) == "1"
		}
		return truthy(v) == want
	}
}

func fieldCompare(field string, accept func(int) bool) Predicate {
	return func(r domain.Record, value any) bool {
		v, ok := r.Field(field)
		if !ok || domain.IsEmpty(v) {
			return false
		}
		return accept(domain.Compare(v, value))
	}
}

func listOf(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			out = append(out, domain.FieldText(x))
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return []string{domain.FieldText(t)}
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && !strings.EqualFold(t, "false") && t != "0"
	case []string:
		return len(t) > 0
	}
	if n, ok := domain.Number(v); ok {
		return n != 0
	}
	return true
}
