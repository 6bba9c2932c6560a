package view

import (
	"cmp"
	"math"

	"golang.org/x/text/collate"

	nt "vitrina/entity"
)

// BuildComparator returns a three-way comparison of records for srt.
//
// A nil sort or a field unknown to the schema compares everything equal, leaving
// a stable sort in input order. Null and unorderable values sort last in either
// direction; direction only flips the comparison of defined values.
// Number fields compare numerically, everything else by case-insensitive
// collation in the schema's language.
func BuildComparator[R any](sch *Schema[R], srt *nt.Sort) func(a, b R) int {

	if srt == nil {
		return same[R]
	}

	field, ok := sch.Lookup(srt.Field)
	if !ok {
		return same[R]
	}

	var compare func(a, b R) (int, bool, bool)
	if field.Kind == nt.Number {
		compare = numeric(field)
	} else {
		compare = textual(field, collate.New(sch.Language(), collate.IgnoreCase))
	}

	return func(a, b R) int {

		result, okA, okB := compare(a, b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}

		if srt.Dir == nt.Desc {
			return -result
		}
		return result
	}
}

func same[R any](a, b R) int {
	return 0
}

// numeric compares as float64; ok flags report whether each side is orderable.
func numeric[R any](field Field[R]) func(a, b R) (int, bool, bool) {

	return func(a, b R) (result int, okA, okB bool) {

		var fa, fb float64
		fa, okA = number(field.value(a))
		fb, okB = number(field.value(b))

		if okA && okB {
			result = cmp.Compare(fa, fb)
		}
		return
	}
}

// number is false for values that do not coerce to a float, and for NaN
func number(val nt.Value) (float64, bool) {

	num, err := val.Float()
	if err != nil || math.IsNaN(num) {
		return 0, false
	}
	return num, true
}

func textual[R any](field Field[R], col *collate.Collator) func(a, b R) (int, bool, bool) {

	return func(a, b R) (result int, okA, okB bool) {

		va, vb := field.value(a), field.value(b)
		okA, okB = !va.IsNull(), !vb.IsNull()

		if okA && okB {
			result = col.CompareString(va.String(), vb.String())
		}
		return
	}
}
