package view

import (
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	nt "vitrina/entity"
)

type car struct {
	id    string
	brand string
	model string
	year  *int
	price any
	tags  []string
}

func num(i int) *int {
	return &i
}

var carSchema = NewSchema(
	Field[car]{Name: "brand", Kind: nt.Text, Searchable: true, Facet: true, Get: func(c car) nt.Value {
		if c.brand == "" {
			return nt.Value{}
		}
		return nt.Value{Raw: c.brand}
	}},
	Field[car]{Name: "model", Kind: nt.Text, Searchable: true, Get: func(c car) nt.Value { return nt.Value{Raw: c.model} }},
	Field[car]{Name: "year", Kind: nt.Number, Searchable: true, Facet: true, Get: func(c car) nt.Value { return nt.Value{Raw: c.year} }},
	Field[car]{Name: "price", Kind: nt.Number, Get: func(c car) nt.Value { return nt.Value{Raw: c.price} }},
	Field[car]{Name: "tags", Kind: nt.Tags, Searchable: true, Facet: true, Get: func(c car) nt.Value { return nt.Value{Raw: c.tags} }},
)

func scenario() []car {
	return []car{
		{id: "p22", brand: "Porsche", year: num(2022)},
		{id: "f21", brand: "Ferrari", year: num(2021)},
		{id: "p20", brand: "Porsche", year: num(2020)},
	}
}

func fleet() []car {
	return []car{
		{id: "a", brand: "Porsche", model: "911 GT3 RS", year: num(2023), price: 320000.0, tags: []string{"#porsche", "#gt3"}},
		{id: "b", brand: "Ferrari", model: "F8 Tributo", year: num(2021), price: 280000, tags: []string{"#ferrari"}},
		{id: "c", brand: "audi", model: "R8", year: nil, price: nil, tags: nil},
		{id: "d", brand: "BMW", model: "M4", year: num(2022), price: "n/a", tags: []string{"#bmw", "#track"}},
		{id: "e", brand: "", model: "Unknown", year: num(2019), price: int64(95000)},
		{id: "f", brand: "Lamborghini", model: "Huracán STO", year: num(2022), price: float32(350000), tags: []string{"#lamborghini", "#track"}},
	}
}

func ids(recs []car) []string {
	out := []string{}
	for _, rec := range recs {
		out = append(out, rec.id)
	}
	return out
}

func TestComputeScenarios(t *testing.T) {

	tests := []struct {
		name string
		snap Snapshot
		want []string
	}{
		{
			name: "brand filter and year descending",
			snap: Snapshot{
				Selection: nt.Selection{"brand": {"Porsche"}},
				Sort:      &nt.Sort{Field: "year", Dir: nt.Desc},
			},
			want: []string{"p22", "p20"},
		},
		{
			name: "search keeps order",
			snap: Snapshot{Search: "ferr"},
			want: []string{"f21"},
		},
		{
			name: "search is case insensitive",
			snap: Snapshot{Search: "PORS"},
			want: []string{"p22", "p20"},
		},
		{
			name: "search matches numbers as decimal strings",
			snap: Snapshot{Search: "2021"},
			want: []string{"f21"},
		},
		{
			name: "default is identity",
			snap: Snapshot{},
			want: []string{"p22", "f21", "p20"},
		},
		{
			name: "year ascending",
			snap: Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Asc}},
			want: []string{"p20", "f21", "p22"},
		},
		{
			name: "unknown sort field keeps input order",
			snap: Snapshot{Sort: &nt.Sort{Field: "torque", Dir: nt.Asc}},
			want: []string{"p22", "f21", "p20"},
		},
		{
			name: "unknown filter field imposes nothing",
			snap: Snapshot{Selection: nt.Selection{"colour": {"red"}}},
			want: []string{"p22", "f21", "p20"},
		},
		{
			name: "empty accepted set is inactive",
			snap: Snapshot{Selection: nt.Selection{"brand": {}}},
			want: []string{"p22", "f21", "p20"},
		},
		{
			name: "values within a field are or'd",
			snap: Snapshot{Selection: nt.Selection{"brand": {"Ferrari", "Porsche"}}},
			want: []string{"p22", "f21", "p20"},
		},
		{
			name: "fields are and'd",
			snap: Snapshot{Selection: nt.Selection{"brand": {"Porsche"}, "year": {"2020"}}},
			want: []string{"p20"},
		},
		{
			name: "filter match is case sensitive",
			snap: Snapshot{Selection: nt.Selection{"brand": {"porsche"}}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Compute(carSchema, scenario(), tt.snap))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeNullsAndMalformed(t *testing.T) {

	tests := []struct {
		name string
		snap Snapshot
		want []string
	}{
		{
			name: "null year sorts last descending",
			snap: Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Desc}},
			want: []string{"a", "d", "f", "b", "e", "c"},
		},
		{
			name: "null year sorts last ascending",
			snap: Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Asc}},
			want: []string{"e", "b", "d", "f", "a", "c"},
		},
		{
			name: "malformed and null prices sort last",
			snap: Snapshot{Sort: &nt.Sort{Field: "price", Dir: nt.Asc}},
			want: []string{"e", "b", "a", "f", "c", "d"},
		},
		{
			name: "brand collates case insensitively with null last",
			snap: Snapshot{Sort: &nt.Sort{Field: "brand", Dir: nt.Asc}},
			want: []string{"c", "d", "b", "f", "a", "e"},
		},
		{
			name: "null brand never matches a brand filter",
			snap: Snapshot{Selection: nt.Selection{"brand": {""}}},
			want: []string{},
		},
		{
			name: "tags match any selected tag",
			snap: Snapshot{Selection: nt.Selection{"tags": {"#track", "#ferrari"}}},
			want: []string{"b", "d", "f"},
		},
		{
			name: "search reaches tags",
			snap: Snapshot{Search: "gt3"},
			want: []string{"a"},
		},
		{
			name: "search reaches accented text",
			snap: Snapshot{Search: "huracán"},
			want: []string{"f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Compute(carSchema, fleet(), tt.snap))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMalformedNumberNeverMatches(t *testing.T) {

	sch := NewSchema(
		Field[car]{Name: "price", Kind: nt.Number, Searchable: true, Facet: true, Get: func(c car) nt.Value {
			return nt.Value{Raw: c.price}
		}},
	)
	records := []car{
		{id: "ok", price: 100.0},
		{id: "bad", price: "n/a"},
		{id: "nan", price: math.NaN()},
	}

	tests := []struct {
		name string
		snap Snapshot
		want []string
	}{
		{name: "search skips malformed", snap: Snapshot{Search: "n/a"}, want: []string{}},
		{name: "search skips nan", snap: Snapshot{Search: "nan"}, want: []string{}},
		{name: "filter skips malformed", snap: Snapshot{Selection: nt.Selection{"price": {"n/a"}}}, want: []string{}},
		{name: "filter skips nan", snap: Snapshot{Selection: nt.Selection{"price": {"NaN"}}}, want: []string{}},
		{name: "well formed still matches", snap: Snapshot{Search: "100"}, want: []string{"ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Compute(sch, records, tt.snap))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeDoesNotMutate(t *testing.T) {

	records := fleet()
	before := ids(records)

	Compute(carSchema, records, Snapshot{Sort: &nt.Sort{Field: "brand", Dir: nt.Asc}})

	if got := ids(records); !reflect.DeepEqual(got, before) {
		t.Errorf("records reordered to %v, want %v", got, before)
	}
}

func TestComputeDeterministic(t *testing.T) {

	snap := Snapshot{
		Search:    "r",
		Selection: nt.Selection{"tags": {"#track", "#porsche"}},
		Sort:      &nt.Sort{Field: "price", Dir: nt.Desc},
	}

	first := Compute(carSchema, fleet(), snap)
	second := Compute(carSchema, fleet(), snap)

	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("Compute() not deterministic: %v then %v", ids(first), ids(second))
	}
}

func TestFilterMonotonic(t *testing.T) {

	steps := []nt.Selection{
		{},
		{"tags": {"#track", "#porsche", "#ferrari"}},
		{"tags": {"#track", "#porsche", "#ferrari"}, "year": {"2022", "2023"}},
		{"tags": {"#track", "#porsche", "#ferrari"}, "year": {"2022", "2023"}, "brand": {"BMW"}},
	}

	prev := ids(fleet())
	for i, sel := range steps {
		got := ids(Compute(carSchema, fleet(), Snapshot{Selection: sel}))
		for _, id := range got {
			if !slices.Contains(prev, id) {
				t.Fatalf("step %d: %s not in previous result %v", i, id, prev)
			}
		}
		prev = got
	}

	if !reflect.DeepEqual(prev, []string{"d"}) {
		t.Errorf("final result = %v, want [d]", prev)
	}
}

func TestSearchSubstringLaw(t *testing.T) {

	for _, term := range []string{"r", "RS", "20", "#", "tributo", "zzz"} {
		for _, rec := range Compute(carSchema, fleet(), Snapshot{Search: term}) {

			needle := strings.ToLower(term)
			found := false
			for _, field := range carSchema.Searchable() {
				for _, text := range field.Get(rec).Strings() {
					if strings.Contains(strings.ToLower(text), needle) {
						found = true
					}
				}
			}

			if !found {
				t.Errorf("%q matched %s without a searchable field containing it", term, rec.id)
			}
		}
	}
}

func TestSortReverse(t *testing.T) {

	records := []car{
		{id: "x", year: num(2001)},
		{id: "y", year: nil},
		{id: "z", year: num(1999)},
		{id: "w", year: num(2010)},
	}

	asc := ids(Compute(carSchema, records, Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Asc}}))
	desc := ids(Compute(carSchema, records, Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Desc}}))

	if asc[len(asc)-1] != "y" || desc[len(desc)-1] != "y" {
		t.Fatalf("null not last: asc %v desc %v", asc, desc)
	}

	defined := slices.Clone(asc[:len(asc)-1])
	slices.Reverse(defined)
	if !reflect.DeepEqual(defined, desc[:len(desc)-1]) {
		t.Errorf("desc %v is not the reverse of asc %v", desc, asc)
	}
}

func TestSortNaNLast(t *testing.T) {

	records := []car{
		{id: "one", price: 1.0},
		{id: "nan", price: math.NaN()},
		{id: "two", price: 2.0},
	}

	tests := []struct {
		dir  nt.Direction
		want []string
	}{
		{dir: nt.Asc, want: []string{"one", "two", "nan"}},
		{dir: nt.Desc, want: []string{"two", "one", "nan"}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got := ids(Compute(carSchema, records, Snapshot{Sort: &nt.Sort{Field: "price", Dir: tt.dir}}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortStableOnTies(t *testing.T) {

	records := []car{
		{id: "1", year: num(2020)},
		{id: "2", year: num(2021)},
		{id: "3", year: num(2020)},
		{id: "4", year: num(2021)},
	}

	got := ids(Compute(carSchema, records, Snapshot{Sort: &nt.Sort{Field: "year", Dir: nt.Desc}}))
	want := []string{"2", "4", "1", "3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compute() = %v, want %v", got, want)
	}
}

func TestComputeEmpty(t *testing.T) {

	got := Compute(carSchema, nil, Snapshot{Search: "x", Sort: &nt.Sort{Field: "year"}})
	if got == nil || len(got) != 0 {
		t.Errorf("Compute() = %#v, want empty non-nil slice", got)
	}
}

func TestFacets(t *testing.T) {

	got, ok := Facets(carSchema, fleet(), "tags")
	want := []string{"#porsche", "#gt3", "#ferrari", "#bmw", "#track", "#lamborghini"}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Facets(tags) = %v, %t, want %v", got, ok, want)
	}

	got, ok = Facets(carSchema, fleet(), "year")
	want = []string{"2023", "2021", "2022", "2019"}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Facets(year) = %v, %t, want %v", got, ok, want)
	}

	if _, ok = Facets(carSchema, fleet(), "model"); ok {
		t.Errorf("Facets(model) ok, want not a facet")
	}
	if _, ok = Facets(carSchema, fleet(), "nope"); ok {
		t.Errorf("Facets(nope) ok, want unknown")
	}
}

func TestPanickingAccessorIsNull(t *testing.T) {

	sch := NewSchema(
		Field[car]{Name: "model", Kind: nt.Text, Searchable: true, Get: func(c car) nt.Value { return nt.Value{Raw: c.model} }},
		Field[car]{Name: "boom", Kind: nt.Number, Searchable: true, Get: func(c car) nt.Value {
			if c.id == "b" {
				panic("bad row")
			}
			return nt.Value{Raw: c.year}
		}},
	)

	got := ids(Compute(sch, fleet(), Snapshot{Search: "20", Sort: &nt.Sort{Field: "boom", Dir: nt.Asc}}))
	want := []string{"e", "d", "f", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compute() = %v, want %v", got, want)
	}
}
