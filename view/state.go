package view

import (
	"slices"

	nt "vitrina/entity"
)

// State holds the search term, filter selection and sort of one list view.
//
// Every mutation notifies subscribers with a fresh Snapshot. State is owned by a
// single presentation surface and is not safe for concurrent use. The zero value
// is an empty state with no default sort.
type State struct {
	search      string
	selection   nt.Selection
	sort        *nt.Sort
	defaultSort *nt.Sort

	observers []observer
	nextId    int
}

type observer struct {
	id int
	fn func(Snapshot)
}

// NewState creates a state with an optional initial sort.
// ClearAll returns to this sort.
func NewState(defaultSort *nt.Sort) *State {

	st := &State{
		selection: nt.Selection{},
	}
	if defaultSort != nil {
		srt := *defaultSort
		st.defaultSort = &srt
		st.sort = st.copySort(st.defaultSort)
	}

	return st
}

// Snapshot copies the current state.
func (st *State) Snapshot() Snapshot {
	return Snapshot{
		Search:    st.search,
		Selection: st.selection.Clone(),
		Sort:      st.copySort(st.sort),
	}
}

// SearchTerm returns the current search term.
func (st *State) SearchTerm() string {
	return st.search
}

// Selection returns a copy of the active filter selection.
func (st *State) Selection() nt.Selection {
	return st.selection.Clone()
}

// Sort returns a copy of the active sort, nil when unsorted.
func (st *State) Sort() *nt.Sort {
	return st.copySort(st.sort)
}

// IsActive is true when value is accepted for field.
func (st *State) IsActive(field, value string) bool {
	return st.selection.Has(field, value)
}

// HasFilters is true when any field constraint is active.
func (st *State) HasFilters() bool {
	return len(st.selection) > 0
}

// SetSearchTerm replaces the search term.
func (st *State) SetSearchTerm(term string) {

	st.search = term
	st.notify()
}

// ToggleFilterValue adds value to field's accepted set, or removes it when present.
// A field left with no values is dropped.
func (st *State) ToggleFilterValue(field, value string) {

	values := st.selection[field]
	idx := slices.Index(values, value)

	if idx < 0 {
		values = append(slices.Clone(values), value)
	} else {
		values = slices.Delete(slices.Clone(values), idx, idx+1)
	}
	st.setValues(field, values)

	st.notify()
}

// SetFilter replaces field's accepted set; no values clears it.
func (st *State) SetFilter(field string, values ...string) {

	uniq := []string{}
	for _, value := range values {
		if !slices.Contains(uniq, value) {
			uniq = append(uniq, value)
		}
	}

	st.setValues(field, uniq)
	st.notify()
}

// SetSort sorts by field, flipping direction when already sorted by it.
// A newly chosen field starts descending.
func (st *State) SetSort(field string) {

	if st.sort != nil && st.sort.Field == field {
		st.sort = &nt.Sort{Field: field, Dir: st.sort.Dir.Flip()}
	} else {
		st.sort = &nt.Sort{Field: field, Dir: nt.Desc}
	}

	st.notify()
}

// ClearFilters drops every filter, keeping search and sort.
func (st *State) ClearFilters() {

	st.selection = nt.Selection{}
	st.notify()
}

// ClearAll resets search, filters and sort to their initial values.
func (st *State) ClearAll() {

	st.search = ""
	st.selection = nt.Selection{}
	st.sort = st.copySort(st.defaultSort)
	st.notify()
}

// Subscribe registers fn to be called after every mutation.
// The returned func cancels the subscription.
func (st *State) Subscribe(fn func(Snapshot)) (cancel func()) {

	st.nextId++
	id := st.nextId
	st.observers = append(st.observers, observer{id: id, fn: fn})

	return func() {
		st.observers = slices.DeleteFunc(st.observers, func(obs observer) bool {
			return obs.id == id
		})
	}
}

// unexported

func (st *State) setValues(field string, values []string) {

	if len(values) == 0 {
		delete(st.selection, field)
		return
	}
	if st.selection == nil {
		st.selection = nt.Selection{}
	}
	st.selection[field] = values
}

func (st *State) notify() {

	snap := st.Snapshot()
	for _, obs := range slices.Clone(st.observers) {
		obs.fn(snap)
	}
}

func (st *State) copySort(srt *nt.Sort) *nt.Sort {

	if srt == nil {
		return nil
	}
	cp := *srt
	return &cp
}
