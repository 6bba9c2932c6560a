// Package catalog defines the brand's catalog records and their view schemas.
package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	nt "vitrina/entity"
	"vitrina/view"
)

// Status of a vehicle in the collection.
type Status string

const (
	Available Status = "Available"
	Sold      Status = "Sold"
	InStorage Status = "In Storage"
	Prize     Status = "Prize"
	Reserved  Status = "Reserved"
)

// Statuses in display order.
var Statuses = []Status{Available, Sold, InStorage, Prize, Reserved}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(text string) (status Status, err error) {

	for _, known := range Statuses {
		if strings.EqualFold(string(known), strings.TrimSpace(text)) {
			status = known
			return
		}
	}

	err = errors.Errorf("unknown vehicle status: %q", text)
	return
}

// Vehicle is one car in the collection, sales or storage listing.
type Vehicle struct {
	Id            string    `json:"id"`
	Slug          string    `json:"slug"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Year          *int      `json:"year"`
	EditionType   *string   `json:"edition_type"`
	Horsepower    *int      `json:"horsepower"`
	Torque        *int      `json:"torque"`
	WeightKg      *int      `json:"weight_kg"`
	MileageKms    *int      `json:"mileage_kms"`
	PurchasePrice *float64  `json:"purchase_price"`
	CurrentPrice  *float64  `json:"current_price"`
	Profitability *float64  `json:"profitability_percentage"`
	Status        Status    `json:"status"`
	ImageUrl      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// Title is brand and model together.
func (vcl Vehicle) Title() string {
	return strings.TrimSpace(vcl.Brand + " " + vcl.Model)
}

// VehicleSchema registers the vehicle fields the table searches, sorts and filters.
var VehicleSchema = view.NewSchema(
	view.Field[Vehicle]{Name: "brand", Kind: nt.Text, Searchable: true, Facet: true, Get: func(vcl Vehicle) nt.Value {
		return text(vcl.Brand)
	}},
	view.Field[Vehicle]{Name: "model", Kind: nt.Text, Searchable: true, Get: func(vcl Vehicle) nt.Value {
		return text(vcl.Model)
	}},
	view.Field[Vehicle]{Name: "year", Kind: nt.Number, Searchable: true, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.Year}
	}},
	view.Field[Vehicle]{Name: "edition_type", Kind: nt.Category, Searchable: true, Facet: true, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.EditionType}
	}},
	view.Field[Vehicle]{Name: "current_price", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.CurrentPrice}
	}},
	view.Field[Vehicle]{Name: "horsepower", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.Horsepower}
	}},
	view.Field[Vehicle]{Name: "mileage_kms", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.MileageKms}
	}},
	view.Field[Vehicle]{Name: "torque", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.Torque}
	}},
	view.Field[Vehicle]{Name: "weight_kg", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.WeightKg}
	}},
	view.Field[Vehicle]{Name: "profitability_percentage", Kind: nt.Number, Get: func(vcl Vehicle) nt.Value {
		return nt.Value{Raw: vcl.Profitability}
	}},
	view.Field[Vehicle]{Name: "slug", Kind: nt.Text, Get: func(vcl Vehicle) nt.Value {
		return text(vcl.Slug)
	}},
	view.Field[Vehicle]{Name: "status", Kind: nt.Category, Facet: true, Get: func(vcl Vehicle) nt.Value {
		return text(string(vcl.Status))
	}},
)

// DefaultVehicleSort is newest model year first.
var DefaultVehicleSort = nt.Sort{Field: "year", Dir: nt.Desc}

var printer = message.NewPrinter(language.English)

// FormatPrice renders a price as whole dollars, or a dash when unknown or zero.
func FormatPrice(price *float64) string {

	if price == nil || *price == 0 {
		return "—"
	}
	return printer.Sprintf("$%d", int64(math.Round(*price)))
}

// text treats an empty string as missing.
func text(str string) nt.Value {

	if str == "" {
		return nt.Value{}
	}
	return nt.Value{Raw: str}
}
