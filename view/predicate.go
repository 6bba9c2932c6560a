package view

import (
	"strings"

	nt "vitrina/entity"
)

type constraint[R any] struct {
	field    Field[R]
	accepted map[string]bool
}

// BuildPredicate composes a free-text search term and a filter selection into a
// single test over a record.
//
// An empty term matches everything. Otherwise some searchable field's lowercase
// string form must contain the lowercased term. Each selected field with accepted
// values must hold one of them, or for Tags fields any one of its tags. Selected
// fields unknown to the schema impose nothing. Null values, and values of
// Number fields that are not numbers, never match.
func BuildPredicate[R any](sch *Schema[R], term string, sel nt.Selection) func(R) bool {

	needle := strings.ToLower(term)
	searchable := sch.Searchable()

	constraints := []constraint[R]{}
	for name, values := range sel {
		if len(values) == 0 {
			continue
		}

		field, ok := sch.Lookup(name)
		if !ok {
			continue
		}

		accepted := make(map[string]bool, len(values))
		for _, value := range values {
			accepted[value] = true
		}
		constraints = append(constraints, constraint[R]{field: field, accepted: accepted})
	}

	return func(rec R) bool {

		if needle != "" && !search(searchable, rec, needle) {
			return false
		}

		for _, cst := range constraints {
			if !cst.matches(rec) {
				return false
			}
		}
		return true
	}
}

func search[R any](fields []Field[R], rec R, needle string) bool {

	for _, field := range fields {
		val, ok := usable(field, rec)
		if !ok {
			continue
		}

		if field.Kind == nt.Tags {
			for _, tag := range val.Strings() {
				if strings.Contains(strings.ToLower(tag), needle) {
					return true
				}
			}
			continue
		}

		if strings.Contains(val.Lower(), needle) {
			return true
		}
	}
	return false
}

func (cst constraint[R]) matches(rec R) bool {

	val, ok := usable(cst.field, rec)
	if !ok {
		return false
	}

	if cst.field.Kind == nt.Tags {
		for _, tag := range val.Strings() {
			if cst.accepted[tag] {
				return true
			}
		}
		return false
	}

	return cst.accepted[val.String()]
}

// usable is false for nulls and for Number values that are not numbers
func usable[R any](field Field[R], rec R) (val nt.Value, ok bool) {

	val = field.value(rec)
	if val.IsNull() {
		return
	}

	if field.Kind == nt.Number {
		if _, ok = number(val); !ok {
			return
		}
	}
	return val, true
}
