package vehicle

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error
	SetImages(ctx context.Context, id int64, main, side *string) error
	SetLeasePdf(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const vehicleCols = `id, name, plate, brand_id, year, capacity, color, model,
	engine_number, chassis_number, vin, main_image_url, side_image_url,
	lease_pdf_url, status, created_at`

func scanVehicle(row interface{ Scan(...any) error }) (*model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Plate, &v.BrandID, &v.Year, &v.Capacity, &v.Color, &v.Model,
		&v.EngineNumber, &v.ChassisNumber, &v.VIN, &v.MainImageURL, &v.SideImageURL,
		&v.LeasePdfURL, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	const q = `
		INSERT INTO vehicles
			(name, plate, brand_id, year, capacity, color, model,
			 engine_number, chassis_number, vin, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		v.Name, v.Plate, v.BrandID, v.Year, v.Capacity, v.Color, v.Model,
		v.EngineNumber, v.ChassisNumber, v.VIN, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	const q = `SELECT ` + vehicleCols + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

func (r *repo) List(ctx context.Context) ([]model.Vehicle, error) {
	const q = `SELECT ` + vehicleCols + ` FROM vehicles ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q)
}

func (r *repo) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	const q = `SELECT ` + vehicleCols + ` FROM vehicles WHERE status = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q, status)
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	const q = `
		UPDATE vehicles
		SET name = $2, plate = $3, brand_id = $4, year = $5, capacity = $6,
			color = $7, model = $8, engine_number = $9, chassis_number = $10,
			vin = $11, status = $12
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q,
		v.ID, v.Name, v.Plate, v.BrandID, v.Year, v.Capacity,
		v.Color, v.Model, v.EngineNumber, v.ChassisNumber, v.VIN, v.Status,
	)
	return err
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error {
	const q = `UPDATE vehicles SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status)
	return err
}

func (r *repo) SetImages(ctx context.Context, id int64, main, side *string) error {
	const q = `
		UPDATE vehicles
		SET main_image_url = COALESCE($2, main_image_url),
			side_image_url = COALESCE($3, side_image_url)
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, main, side)
	return err
}

func (r *repo) SetLeasePdf(ctx context.Context, id int64, url string) error {
	const q = `UPDATE vehicles SET lease_pdf_url = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, url)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM vehicles WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
