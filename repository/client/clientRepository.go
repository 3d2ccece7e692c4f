package client

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, c *model.Client) error
	ByEmail(ctx context.Context, email string) (*model.Client, error)
	ByID(ctx context.Context, id int64) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, c *model.Client) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	SetDocumentImages(ctx context.Context, id int64, front, back *string) error
	SetEmailVerified(ctx context.Context, id int64, verified bool) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const clientCols = `id, first_name, last_name, email, phone, address,
	document_number, license_number, password_hash,
	document_front_url, document_back_url, email_verified, created_at`

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address,
		&c.DocumentNumber, &c.LicenseNumber, &c.PasswordHash,
		&c.DocumentFront, &c.DocumentBack, &c.EmailVerified, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, c *model.Client) error {
	const q = `
		INSERT INTO clients
			(first_name, last_name, email, phone, address,
			 document_number, license_number, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
		c.DocumentNumber, c.LicenseNumber, c.PasswordHash,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients WHERE email = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *repo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, c *model.Client) error {
	const q = `
		UPDATE clients
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
			address = $6, document_number = $7, license_number = $8
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.Address, c.DocumentNumber, c.LicenseNumber,
	)
	return err
}

func (r *repo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	const q = `UPDATE clients SET password_hash = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, hash)
	return err
}

func (r *repo) SetDocumentImages(ctx context.Context, id int64, front, back *string) error {
	const q = `
		UPDATE clients
		SET document_front_url = COALESCE($2, document_front_url),
			document_back_url  = COALESCE($3, document_back_url)
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, front, back)
	return err
}

func (r *repo) SetEmailVerified(ctx context.Context, id int64, verified bool) error {
	const q = `UPDATE clients SET email_verified = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, verified)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM clients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
