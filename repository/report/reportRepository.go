package report

import (
	"context"
	"database/sql"
	"time"
)

type NewClientsRow struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type BrandRentalsRow struct {
	Brand        string `json:"brand"`
	Reservations int64  `json:"reservations"`
	Vehicles     int64  `json:"vehicles"`
}

type ModelRentalsRow struct {
	Model        string  `json:"model"`
	Reservations int64   `json:"reservations"`
	Revenue      float64 `json:"revenue"`
	Vehicles     int64   `json:"vehicles"`
}

type Repo interface {
	NewClientsPerDay(ctx context.Context) ([]NewClientsRow, error)
	MostRentedBrands(ctx context.Context) ([]BrandRentalsRow, error)
	MostRentedModels(ctx context.Context) ([]ModelRentalsRow, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) NewClientsPerDay(ctx context.Context) ([]NewClientsRow, error) {
	const q = `
		SELECT created_at::date AS day, COUNT(*) AS clients
		FROM clients
		GROUP BY created_at::date
		ORDER BY day DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []NewClientsRow{}
	for rows.Next() {
		var row NewClientsRow
		if err := rows.Scan(&row.Day, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) MostRentedBrands(ctx context.Context) ([]BrandRentalsRow, error) {
	const q = `
		SELECT
			b.name                    AS brand,
			COUNT(*)                  AS reservations,
			COUNT(DISTINCT v.id)      AS vehicles
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		JOIN brands b   ON b.id = v.brand_id
		GROUP BY b.name
		ORDER BY reservations DESC
		LIMIT 5`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BrandRentalsRow{}
	for rows.Next() {
		var row BrandRentalsRow
		if err := rows.Scan(&row.Brand, &row.Reservations, &row.Vehicles); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) MostRentedModels(ctx context.Context) ([]ModelRentalsRow, error) {
	// price_per_day sum is a proxy revenue figure, not a billed total
	const q = `
		SELECT
			v.model                   AS model,
			COUNT(*)                  AS reservations,
			SUM(r.price_per_day)      AS revenue,
			COUNT(DISTINCT v.name)    AS vehicles
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		GROUP BY v.model
		ORDER BY reservations DESC
		LIMIT 5`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ModelRentalsRow{}
	for rows.Next() {
		var row ModelRentalsRow
		if err := rows.Scan(&row.Model, &row.Reservations, &row.Revenue, &row.Vehicles); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
