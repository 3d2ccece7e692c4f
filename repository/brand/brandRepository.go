package brand

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Brand) error
	ByID(ctx context.Context, id int64) (*model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	Update(ctx context.Context, b *model.Brand) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Brand) error {
	const q = `
		INSERT INTO brands (name, logo_url, logo_public_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q, b.Name, b.LogoURL, b.LogoPublicID).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Brand, error) {
	const q = `
		SELECT id, name, logo_url, logo_public_id, created_at
		FROM brands
		WHERE id = $1`
	var b model.Brand
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.Name, &b.LogoURL, &b.LogoPublicID, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context) ([]model.Brand, error) {
	const q = `
		SELECT id, name, logo_url, logo_public_id, created_at
		FROM brands
		ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.LogoURL, &b.LogoPublicID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, b *model.Brand) error {
	const q = `
		UPDATE brands
		SET name = $2,
			logo_url = COALESCE(NULLIF($3, ''), logo_url),
			logo_public_id = COALESCE(NULLIF($4, ''), logo_public_id)
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, b.ID, b.Name, b.LogoURL, b.LogoPublicID)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM brands WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
