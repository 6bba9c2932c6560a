package view

import (
	"slices"

	nt "vitrina/entity"
)

// Snapshot is a point-in-time copy of view state.
type Snapshot struct {
	Search    string
	Selection nt.Selection
	Sort      *nt.Sort
}

// Compute returns the records passing the snapshot's search and filters, stably
// sorted by its sort. The input slice is never modified.
func Compute[R any](sch *Schema[R], records []R, snap Snapshot) []R {

	keep := BuildPredicate(sch, snap.Search, snap.Selection)

	visible := make([]R, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			visible = append(visible, rec)
		}
	}

	if snap.Sort != nil {
		slices.SortStableFunc(visible, BuildComparator(sch, snap.Sort))
	}

	return visible
}

// Facets returns the distinct values of a facet field in first-seen order.
// ok is false when the schema has no such facet.
func Facets[R any](sch *Schema[R], records []R, name string) (values []string, ok bool) {

	field, ok := sch.Lookup(name)
	if !ok || !field.Facet {
		return nil, false
	}

	seen := map[string]bool{}
	values = []string{}
	for _, rec := range records {
		val := field.value(rec)
		if val.IsNull() {
			continue
		}

		for _, value := range val.Strings() {
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			values = append(values, value)
		}
	}

	return values, true
}
