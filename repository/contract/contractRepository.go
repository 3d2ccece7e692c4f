package contract

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"carrental/model"
)

type Repo interface {
	// Insert fails with a unique violation when a contract already exists
	// for the reservation.
	Insert(ctx context.Context, c *model.Contract) error
	ByID(ctx context.Context, id int64) (*model.Contract, error)
	ByReservation(ctx context.Context, reservationID int64) (*model.Contract, error)
	List(ctx context.Context) ([]model.Contract, error)
	SetStatus(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error)
	UpdateTerms(ctx context.Context, id int64, terms model.LeaseTerms) error
	SetPdfURL(ctx context.Context, id int64, url string) error
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const contractCols = `id, reservation_id, status, daily_price, rental_days,
	total_amount, deposit_amount, terms, checklist, pdf_url, created_at, ended_at`

func scanContract(row interface{ Scan(...any) error }) (*model.Contract, error) {
	var c model.Contract
	var terms []byte
	var checklist []byte
	err := row.Scan(
		&c.ID, &c.ReservationID, &c.Status, &c.DailyPrice, &c.RentalDays,
		&c.TotalAmount, &c.DepositAmount, &terms, &checklist, &c.PdfURL,
		&c.CreatedAt, &c.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(terms, &c.Terms); err != nil {
		return nil, err
	}
	c.Checklist = checklist
	return &c, nil
}

func (r *repo) Insert(ctx context.Context, c *model.Contract) error {
	terms, err := json.Marshal(c.Terms)
	if err != nil {
		return err
	}
	checklist := c.Checklist
	if len(checklist) == 0 {
		checklist = json.RawMessage(`{}`)
	}
	const q = `
		INSERT INTO contracts
			(reservation_id, status, daily_price, rental_days,
			 total_amount, deposit_amount, terms, checklist)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		c.ReservationID, c.Status, c.DailyPrice, c.RentalDays,
		c.TotalAmount, c.DepositAmount, terms, []byte(checklist),
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts WHERE id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *repo) ByReservation(ctx context.Context, reservationID int64) (*model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts WHERE reservation_id = $1`
	c, err := scanContract(r.db.QueryRowContext(ctx, q, reservationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *repo) List(ctx context.Context) ([]model.Contract, error) {
	const q = `SELECT ` + contractCols + ` FROM contracts ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SetStatus only moves contracts out of Active; Finalized and Annulled are
// terminal.
func (r *repo) SetStatus(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error) {
	const q = `
		UPDATE contracts
		SET status = $2, ended_at = $3
		WHERE id = $1 AND status = 'Active'`
	res, err := r.db.ExecContext(ctx, q, id, status, endedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repo) UpdateTerms(ctx context.Context, id int64, terms model.LeaseTerms) error {
	b, err := json.Marshal(terms)
	if err != nil {
		return err
	}
	const q = `UPDATE contracts SET terms = $2 WHERE id = $1`
	_, err = r.db.ExecContext(ctx, q, id, b)
	return err
}

func (r *repo) SetPdfURL(ctx context.Context, id int64, url string) error {
	const q = `UPDATE contracts SET pdf_url = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, url)
	return err
}
