package view

// Browser keeps the visible subset of a record snapshot in step with a State.
type Browser[R any] struct {
	*State

	schema    *Schema[R]
	records   []R
	visible   []R
	observers []func(visible []R)
}

// NewBrowser binds schema and records to st, recomputing on every mutation.
func NewBrowser[R any](sch *Schema[R], st *State, records []R) *Browser[R] {

	br := &Browser[R]{
		State:   st,
		schema:  sch,
		records: records,
	}
	br.visible = Compute(sch, records, st.Snapshot())

	st.Subscribe(br.recompute)
	return br
}

// SetRecords replaces the record snapshot wholesale.
func (br *Browser[R]) SetRecords(records []R) {

	br.records = records
	br.recompute(br.Snapshot())
}

// OnChange registers fn to receive the visible subset after each recompute.
func (br *Browser[R]) OnChange(fn func(visible []R)) {
	br.observers = append(br.observers, fn)
}

// Visible returns the current ordered, filtered subset.
func (br *Browser[R]) Visible() []R {
	return br.visible
}

// Records returns the full snapshot.
func (br *Browser[R]) Records() []R {
	return br.records
}

// Total is the size of the full snapshot.
func (br *Browser[R]) Total() int {
	return len(br.records)
}

// Facets returns the distinct values of a facet field across the full snapshot.
func (br *Browser[R]) Facets(name string) ([]string, bool) {
	return Facets(br.schema, br.records, name)
}

// Schema the browser computes with.
func (br *Browser[R]) Schema() *Schema[R] {
	return br.schema
}

func (br *Browser[R]) recompute(snap Snapshot) {

	br.visible = Compute(br.schema, br.records, snap)
	for _, fn := range br.observers {
		fn(br.visible)
	}
}
