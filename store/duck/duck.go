// Package duck is a vehicle store on embedded duckdb, loaded from a json export.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/catalog"
	nt "vitrina/entity"
)

const vehicleColumns = `id, slug, brand, model, year, edition_type, horsepower, torque,
	weight_kg, mileage_kms, purchase_price, current_price, profitability_percentage,
	COALESCE(status, 'Available'), image_url, created_at`

type Duck struct {
	db       *sql.DB
	logger   nt.Logger
	filename string
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	return dk.filename
}

// Load a json array or newline delimited json file of vehicles, replacing any previous load.
func (dk *Duck) Load(ctx context.Context, path string) (err error) {

	err = loadVehicles(ctx, dk.db, path)
	if err != nil {
		return
	}

	filled, err := fillIds(ctx, dk.db)
	if err != nil {
		return
	}

	dk.filename = path
	dk.logger.Info(ctx, "loaded vehicles", "path", path, "generated_ids", filled)
	return
}

// Vehicles returns vehicles with status, or all when status is empty, newest first.
func (dk *Duck) Vehicles(ctx context.Context, status catalog.Status) (vehicles []catalog.Vehicle, err error) {

	where, args := buildWhereClause(status)
	query := fmt.Sprintf("SELECT %s FROM vehicles %s ORDER BY rowid", vehicleColumns, where)

	rows, err := dk.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = errors.Wrapf(err, "failed to query vehicles")
		return
	}
	defer rows.Close()

	vehicles = []catalog.Vehicle{}
	for rows.Next() {
		var vcl catalog.Vehicle
		vcl, err = scanVehicle(rows)
		if err != nil {
			return
		}
		vehicles = append(vehicles, vcl)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrapf(err, "error iterating rows")
		return
	}

	// created_at is kept as text, so order here once parsed
	slices.SortStableFunc(vehicles, func(a, b catalog.Vehicle) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return
}

// unexported

// buildWhereClause filters on status when given
func buildWhereClause(status catalog.Status) (string, []any) {

	if status == "" {
		return "", nil
	}
	return "WHERE status = ?", []any{string(status)}
}

func scanVehicle(rows *sql.Rows) (vcl catalog.Vehicle, err error) {

	var id sql.NullString
	var created sql.NullString

	err = rows.Scan(
		&id, &vcl.Slug, &vcl.Brand, &vcl.Model, &vcl.Year, &vcl.EditionType,
		&vcl.Horsepower, &vcl.Torque, &vcl.WeightKg, &vcl.MileageKms,
		&vcl.PurchasePrice, &vcl.CurrentPrice, &vcl.Profitability,
		&vcl.Status, &vcl.ImageUrl, &created,
	)
	if err != nil {
		err = errors.Wrapf(err, "failed to scan vehicle")
		return
	}

	vcl.Id = id.String
	vcl.CreatedAt = parseTime(created.String)
	return
}

func parseTime(text string) time.Time {

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly} {
		ts, err := time.Parse(layout, strings.TrimSpace(text))
		if err == nil {
			return ts
		}
	}
	return time.Time{}
}

func loadVehicles(ctx context.Context, db *sql.DB, path string) (err error) {

	// missing keys load as null
	create := fmt.Sprintf(`
		CREATE OR REPLACE TABLE vehicles AS
		SELECT * FROM read_json('%s',
			format='auto',
			columns={
				id: 'VARCHAR', slug: 'VARCHAR', brand: 'VARCHAR', model: 'VARCHAR',
				year: 'INTEGER', edition_type: 'VARCHAR', horsepower: 'INTEGER',
				torque: 'INTEGER', weight_kg: 'INTEGER', mileage_kms: 'INTEGER',
				purchase_price: 'DOUBLE', current_price: 'DOUBLE',
				profitability_percentage: 'DOUBLE', status: 'VARCHAR',
				image_url: 'VARCHAR', created_at: 'VARCHAR'
			})
	`, strings.ReplaceAll(path, "'", "''"))

	_, err = db.ExecContext(ctx, create)
	if err != nil {
		err = errors.Wrapf(err, "failed to load vehicles from %s", path)
		return
	}

	_, err = db.ExecContext(ctx, "UPDATE vehicles SET slug = '' WHERE slug IS NULL")
	if err != nil {
		err = errors.Wrapf(err, "failed to default slugs")
		return
	}

	_, err = db.ExecContext(ctx, "UPDATE vehicles SET brand = '' WHERE brand IS NULL")
	if err != nil {
		err = errors.Wrapf(err, "failed to default brands")
		return
	}

	_, err = db.ExecContext(ctx, "UPDATE vehicles SET model = '' WHERE model IS NULL")
	err = errors.Wrapf(err, "failed to default models")
	return
}

// fillIds gives rows without an id a fresh uuid
func fillIds(ctx context.Context, db *sql.DB) (count int, err error) {

	rows, err := db.QueryContext(ctx, "SELECT rowid FROM vehicles WHERE id IS NULL OR id = ''")
	if err != nil {
		err = errors.Wrapf(err, "failed to query missing ids")
		return
	}

	rowIds := []int64{}
	for rows.Next() {
		var rowId int64
		if err = rows.Scan(&rowId); err != nil {
			rows.Close()
			err = errors.Wrapf(err, "failed to scan rowid")
			return
		}
		rowIds = append(rowIds, rowId)
	}
	rows.Close()

	for _, rowId := range rowIds {
		_, err = db.ExecContext(ctx, "UPDATE vehicles SET id = ? WHERE rowid = ?", uuid.NewString(), rowId)
		if err != nil {
			err = errors.Wrapf(err, "failed to set id")
			return
		}
	}

	count = len(rowIds)
	return
}
