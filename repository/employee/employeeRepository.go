package employee

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, e *model.Employee) error
	ByEmail(ctx context.Context, email string) (*model.Employee, error)
	ByID(ctx context.Context, id int64) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const cols = `id, first_name, last_name, email, phone, role, password_hash, created_at`

func scanEmployee(row interface{ Scan(...any) error }) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Role, &e.PasswordHash, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repo) Create(ctx context.Context, e *model.Employee) error {
	const q = `
		INSERT INTO employees (first_name, last_name, email, phone, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		e.FirstName, e.LastName, e.Email, e.Phone, e.Role, e.PasswordHash,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Employee, error) {
	const q = `SELECT ` + cols + ` FROM employees WHERE email = $1`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Employee, error) {
	const q = `SELECT ` + cols + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *repo) List(ctx context.Context) ([]model.Employee, error) {
	const q = `SELECT ` + cols + ` FROM employees ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, e *model.Employee) error {
	const q = `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, role = $6
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Role)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM employees WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
