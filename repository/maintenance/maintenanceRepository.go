package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, m *model.Maintenance) error
	ByID(ctx context.Context, id int64) (*model.Maintenance, error)
	List(ctx context.Context) ([]model.Maintenance, error)
	ByVehicle(ctx context.Context, vehicleID int64) ([]model.Maintenance, error)
	Update(ctx context.Context, m *model.Maintenance) error
	SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const cols = `id, vehicle_id, service_type, description, scheduled_date,
	completed_date, cost, status, created_at`

func scanMaintenance(row interface{ Scan(...any) error }) (*model.Maintenance, error) {
	var m model.Maintenance
	err := row.Scan(
		&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.ScheduledDate,
		&m.CompletedDate, &m.Cost, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Create(ctx context.Context, m *model.Maintenance) error {
	const q = `
		INSERT INTO maintenances
			(vehicle_id, service_type, description, scheduled_date, cost, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		m.VehicleID, m.ServiceType, m.Description, m.ScheduledDate, m.Cost, m.Status,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Maintenance, error) {
	const q = `SELECT ` + cols + ` FROM maintenances WHERE id = $1`
	m, err := scanMaintenance(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *repo) List(ctx context.Context) ([]model.Maintenance, error) {
	const q = `SELECT ` + cols + ` FROM maintenances ORDER BY scheduled_date DESC, id DESC`
	return r.queryMany(ctx, q)
}

func (r *repo) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Maintenance, error) {
	const q = `
		SELECT ` + cols + `
		FROM maintenances
		WHERE vehicle_id = $1
		ORDER BY scheduled_date DESC, id DESC`
	return r.queryMany(ctx, q, vehicleID)
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Maintenance, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Maintenance{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, m *model.Maintenance) error {
	const q = `
		UPDATE maintenances
		SET service_type = $2, description = $3, scheduled_date = $4, cost = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.ServiceType, m.Description, m.ScheduledDate, m.Cost)
	return err
}

func (r *repo) SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error {
	const q = `UPDATE maintenances SET status = $2, completed_date = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status, completedAt)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM maintenances WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
