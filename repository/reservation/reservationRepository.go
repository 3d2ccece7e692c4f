package reservation

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
)

type Repo interface {
	Insert(ctx context.Context, res *model.Reservation) error
	ByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	ByVehicle(ctx context.Context, vehicleID int64) ([]model.Reservation, error)
	ByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
	ByClientWithVehicle(ctx context.Context, clientID int64) ([]model.MyReservationRow, error)
	Update(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const resCols = `id, client_id, vehicle_id, beneficiary_name, beneficiary_phone,
	beneficiary_email, start_date, return_date, price_per_day, status, created_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.ClientID, &res.VehicleID,
		&res.Beneficiary.Name, &res.Beneficiary.Phone, &res.Beneficiary.Email,
		&res.StartDate, &res.ReturnDate, &res.PricePerDay, &res.Status, &res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `
		INSERT INTO reservations
			(client_id, vehicle_id, beneficiary_name, beneficiary_phone,
			 beneficiary_email, start_date, return_date, price_per_day, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		res.ClientID, res.VehicleID,
		res.Beneficiary.Name, res.Beneficiary.Phone, res.Beneficiary.Email,
		res.StartDate, res.ReturnDate, res.PricePerDay, res.Status,
	).Scan(&res.ID, &res.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Reservation, error) {
	const q = `SELECT ` + resCols + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *repo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + resCols + ` FROM reservations ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q)
}

func (r *repo) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Reservation, error) {
	const q = `
		SELECT ` + resCols + `
		FROM reservations
		WHERE vehicle_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q, vehicleID)
}

func (r *repo) ByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	const q = `
		SELECT ` + resCols + `
		FROM reservations
		WHERE status = $1
		ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q, status)
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *repo) ByClientWithVehicle(ctx context.Context, clientID int64) ([]model.MyReservationRow, error) {
	const q = `
		SELECT
			r.id, r.client_id, r.vehicle_id,
			r.beneficiary_name, r.beneficiary_phone, r.beneficiary_email,
			r.start_date, r.return_date, r.price_per_day, r.status, r.created_at,
			v.name        AS vehicle_name,
			v.model       AS vehicle_model,
			v.plate       AS vehicle_plate,
			v.main_image_url AS vehicle_image
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.client_id = $1
		ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MyReservationRow{}
	for rows.Next() {
		var m model.MyReservationRow
		if err := rows.Scan(
			&m.ID, &m.ClientID, &m.VehicleID,
			&m.Beneficiary.Name, &m.Beneficiary.Phone, &m.Beneficiary.Email,
			&m.StartDate, &m.ReturnDate, &m.PricePerDay, &m.Status, &m.CreatedAt,
			&m.VehicleName, &m.VehicleModel, &m.VehiclePlate, &m.VehicleImage,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `
		UPDATE reservations
		SET client_id = $2, vehicle_id = $3,
			beneficiary_name = $4, beneficiary_phone = $5, beneficiary_email = $6,
			start_date = $7, return_date = $8, price_per_day = $9, status = $10
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q,
		res.ID, res.ClientID, res.VehicleID,
		res.Beneficiary.Name, res.Beneficiary.Phone, res.Beneficiary.Email,
		res.StartDate, res.ReturnDate, res.PricePerDay, res.Status,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM reservations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
