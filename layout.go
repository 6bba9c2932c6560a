package vitrina

import (
	"github.com/pkg/errors"

	"vitrina/catalog"
	nt "vitrina/entity"
)

// Layout configures the vehicle table.
type Layout struct {
	Columns     []nt.Column `yaml:"columns"`
	DefaultSort *nt.Sort    `yaml:"default_sort,omitempty"`
	Language    string      `yaml:"language,omitempty"`
}

// DefaultLayout mirrors the catalog table: brand, model, year and price, newest first.
func DefaultLayout() Layout {
	srt := catalog.DefaultVehicleSort
	return Layout{
		Columns: []nt.Column{
			{Field: "brand", Width: 14},
			{Field: "model", Width: 22},
			{Field: "year", Width: 6},
			{Field: "edition_type", Title: "edition", Width: 12},
			{Field: "current_price", Title: "price", Width: 12, Format: "price"},
			{Field: "status", Width: 10},
		},
		DefaultSort: &srt,
		Language:    "en",
	}
}

// check rejects columns and sorts naming fields the vehicle schema lacks
func (layout Layout) check() (err error) {

	for _, col := range layout.Columns {
		if _, ok := catalog.VehicleSchema.Lookup(col.Field); !ok {
			return errors.Errorf("unknown column field: %q", col.Field)
		}
	}

	if layout.DefaultSort != nil {
		if _, ok := catalog.VehicleSchema.Lookup(layout.DefaultSort.Field); !ok {
			err = errors.Errorf("unknown sort field: %q", layout.DefaultSort.Field)
		}
	}
	return
}
