// Package view filters, searches and sorts in-memory record snapshots.
//
// A Schema registers typed accessors for a record type so fields can be
// addressed by name. Compute runs a Snapshot of view state over records and
// State holds that view state for one presentation surface.
package view

import (
	"golang.org/x/text/language"

	nt "vitrina/entity"
)

// Field describes one named, typed field of record type R.
type Field[R any] struct {
	Name       string
	Kind       nt.Kind
	Searchable bool // matched by the free-text search
	Facet      bool // offered as a discrete filter
	Get        func(R) nt.Value
}

// Schema is a registry of fields for record type R.
type Schema[R any] struct {
	fields []Field[R]
	byName map[string]int
	lang   language.Tag
}

// NewSchema registers fields in order.
// A repeated name replaces the earlier field in place.
func NewSchema[R any](fields ...Field[R]) *Schema[R] {

	sch := &Schema[R]{
		byName: map[string]int{},
		lang:   language.English,
	}

	for _, field := range fields {
		if idx, ok := sch.byName[field.Name]; ok {
			sch.fields[idx] = field
			continue
		}
		sch.byName[field.Name] = len(sch.fields)
		sch.fields = append(sch.fields, field)
	}

	return sch
}

// In returns a copy of the schema collating text in the given language.
func (sch *Schema[R]) In(lang language.Tag) *Schema[R] {

	clone := *sch
	clone.lang = lang
	return &clone
}

// Language used for text collation.
func (sch *Schema[R]) Language() language.Tag {
	return sch.lang
}

// Lookup finds a field by name.
func (sch *Schema[R]) Lookup(name string) (field Field[R], ok bool) {

	idx, ok := sch.byName[name]
	if !ok {
		return
	}
	field = sch.fields[idx]
	return
}

// Names returns field names in registration order.
func (sch *Schema[R]) Names() []string {

	names := make([]string, len(sch.fields))
	for i, field := range sch.fields {
		names[i] = field.Name
	}
	return names
}

// Searchable returns the fields matched by free-text search.
func (sch *Schema[R]) Searchable() []Field[R] {
	return sch.where(func(field Field[R]) bool { return field.Searchable })
}

// Facets returns the fields offered as discrete filters.
func (sch *Schema[R]) Facets() []Field[R] {
	return sch.where(func(field Field[R]) bool { return field.Facet })
}

func (sch *Schema[R]) where(keep func(Field[R]) bool) (fields []Field[R]) {

	for _, field := range sch.fields {
		if keep(field) {
			fields = append(fields, field)
		}
	}
	return
}

// value reads a field, absorbing a panicking accessor as null.
func (field Field[R]) value(rec R) (val nt.Value) {

	defer func() {
		if recover() != nil {
			val = nt.Value{}
		}
	}()

	if field.Get == nil {
		return
	}
	return field.Get(rec)
}
