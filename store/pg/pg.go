// Package pg is a vehicle store on the hosted postgres database.
package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"vitrina/catalog"
	nt "vitrina/entity"
)

// Pg reads vehicles through a pgx pool.
type Pg struct {
	pool   *pgxpool.Pool
	logger nt.Logger
	name   string
}

// row mirrors the vehicles table.
type row struct {
	Id            string    `db:"id"`
	Slug          string    `db:"slug"`
	Brand         string    `db:"brand"`
	Model         string    `db:"model"`
	Year          *int      `db:"year"`
	EditionType   *string   `db:"edition_type"`
	Horsepower    *int      `db:"horsepower"`
	Torque        *int      `db:"torque"`
	WeightKg      *int      `db:"weight_kg"`
	MileageKms    *int      `db:"mileage_kms"`
	PurchasePrice *float64  `db:"purchase_price"`
	CurrentPrice  *float64  `db:"current_price"`
	Profitability *float64  `db:"profitability_percentage"`
	Status        string    `db:"status"`
	ImageUrl      *string   `db:"image_url"`
	CreatedAt     time.Time `db:"created_at"`
}

// New connects a pool and checks it with a ping.
func New(ctx context.Context, dsn string, lgr nt.Logger) (pg *Pg, err error) {

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse dsn")
		return
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to create pool")
		return
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		err = errors.Wrapf(err, "failed to ping %s", cfg.ConnConfig.Host)
		return
	}

	pg = &Pg{
		pool:   pool,
		logger: lgr,
		name:   cfg.ConnConfig.Host + "/" + cfg.ConnConfig.Database,
	}
	lgr.Info(ctx, "connected to vehicle store", "name", pg.name)
	return
}

// Name returns host and database.
func (pg *Pg) Name() string {
	return pg.name
}

func (pg *Pg) Close() {
	pg.pool.Close()
}

// Vehicles returns vehicles with status, or all when status is empty, newest first.
func (pg *Pg) Vehicles(ctx context.Context, status catalog.Status) (vehicles []catalog.Vehicle, err error) {

	query, args := vehiclesQuery(status)

	rows, err := pg.pool.Query(ctx, query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query vehicles")
		return
	}

	scanned, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		err = errors.Wrapf(err, "failed to collect vehicles")
		return
	}

	vehicles = make([]catalog.Vehicle, len(scanned))
	for i, rw := range scanned {
		vehicles[i] = rw.vehicle()
	}
	return
}

// unexported

var columns = []string{
	"id", "slug", "brand", "model", "year", "edition_type", "horsepower", "torque",
	"weight_kg", "mileage_kms", "purchase_price::float8 AS purchase_price",
	"current_price::float8 AS current_price",
	"profitability_percentage::float8 AS profitability_percentage",
	"status::text AS status", "image_url", "created_at",
}

func vehiclesQuery(status catalog.Status) (query string, args []any) {

	query = "SELECT " + strings.Join(columns, ", ") + " FROM vehicles"
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC"
	return
}

func (rw row) vehicle() catalog.Vehicle {
	return catalog.Vehicle{
		Id:            rw.Id,
		Slug:          rw.Slug,
		Brand:         rw.Brand,
		Model:         rw.Model,
		Year:          rw.Year,
		EditionType:   rw.EditionType,
		Horsepower:    rw.Horsepower,
		Torque:        rw.Torque,
		WeightKg:      rw.WeightKg,
		MileageKms:    rw.MileageKms,
		PurchasePrice: rw.PurchasePrice,
		CurrentPrice:  rw.CurrentPrice,
		Profitability: rw.Profitability,
		Status:        catalog.Status(rw.Status),
		ImageUrl:      rw.ImageUrl,
		CreatedAt:     rw.CreatedAt,
	}
}
