package contractsvc

import (
	"context"
	"testing"
	"time"

	"carrental/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type contractRepoMock struct {
	insertFn    func(ctx context.Context, c *model.Contract) error
	byIDFn      func(ctx context.Context, id int64) (*model.Contract, error)
	byResFn     func(ctx context.Context, reservationID int64) (*model.Contract, error)
	listFn      func(ctx context.Context) ([]model.Contract, error)
	setStatusFn func(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error)
}

func (m *contractRepoMock) Insert(ctx context.Context, c *model.Contract) error {
	return m.insertFn(ctx, c)
}
func (m *contractRepoMock) ByID(ctx context.Context, id int64) (*model.Contract, error) {
	return m.byIDFn(ctx, id)
}
func (m *contractRepoMock) ByReservation(ctx context.Context, reservationID int64) (*model.Contract, error) {
	return m.byResFn(ctx, reservationID)
}
func (m *contractRepoMock) List(ctx context.Context) ([]model.Contract, error) {
	return m.listFn(ctx)
}
func (m *contractRepoMock) SetStatus(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error) {
	return m.setStatusFn(ctx, id, status, endedAt)
}
func (m *contractRepoMock) UpdateTerms(ctx context.Context, id int64, terms model.LeaseTerms) error {
	return nil
}
func (m *contractRepoMock) SetPdfURL(ctx context.Context, id int64, url string) error { return nil }

type brandRepoMock struct{}

func (brandRepoMock) Create(ctx context.Context, b *model.Brand) error { panic("unexpected") }
func (brandRepoMock) ByID(ctx context.Context, id int64) (*model.Brand, error) {
	return &model.Brand{ID: id, Name: "Toyota"}, nil
}
func (brandRepoMock) List(ctx context.Context) ([]model.Brand, error)  { panic("unexpected") }
func (brandRepoMock) Update(ctx context.Context, b *model.Brand) error { panic("unexpected") }
func (brandRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	panic("unexpected")
}

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestService(cr *contractRepoMock) *service {
	return &service{
		cr:            cr,
		br:            brandRepoMock{},
		signatureCity: "San Salvador",
		now:           func() time.Time { return fixedNow },
	}
}

func TestRentalDays(t *testing.T) {
	jan := func(d, h int) time.Time {
		return time.Date(2024, time.January, d, h, 0, 0, 0, time.UTC)
	}
	cases := []struct {
		name       string
		start, ret time.Time
		want       int
	}{
		{"whole days", jan(1, 0), jan(4, 0), 3},
		{"partial day rounds up", jan(1, 10), jan(2, 8), 1},
		{"just over a day", jan(1, 10), jan(2, 11), 2},
		{"exactly two days", jan(1, 0), jan(3, 0), 2},
	}
	for _, tc := range cases {
		if got := RentalDays(tc.start, tc.ret); got != tc.want {
			t.Errorf("%s: RentalDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func genInput() (*model.Reservation, *model.Vehicle, *model.Client) {
	res := &model.Reservation{
		ID: 10, ClientID: 1, VehicleID: 2,
		StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:  time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		PricePerDay: 45.5,
	}
	v := &model.Vehicle{ID: 2, Name: "Corolla", Model: "2021", Plate: "P123-456", BrandID: 3}
	c := &model.Client{ID: 1, FirstName: "Ana", LastName: "Lopez", Address: "Col. Escalon"}
	return res, v, c
}

func TestGenerate_Amounts(t *testing.T) {
	var inserted *model.Contract
	cr := &contractRepoMock{
		insertFn: func(ctx context.Context, c *model.Contract) error {
			c.ID = 5
			inserted = c
			return nil
		},
	}
	s := newTestService(cr)

	res, v, c := genInput()
	got, err := s.Generate(context.Background(), res, v, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil || got.ID != 5 {
		t.Fatal("contract not persisted")
	}
	if got.RentalDays != 3 {
		t.Errorf("RentalDays = %d, want 3", got.RentalDays)
	}
	if got.TotalAmount != 136.5 {
		t.Errorf("TotalAmount = %v, want 136.5", got.TotalAmount)
	}
	// deposit is twice the daily price, rounded to the nearest unit
	if got.DepositAmount != 91 {
		t.Errorf("DepositAmount = %v, want 91", got.DepositAmount)
	}
	if got.Status != model.ContractActive {
		t.Errorf("Status = %q, want Active", got.Status)
	}
	if got.Terms.BrandName != "Toyota" || got.Terms.TenantName != "Ana Lopez" {
		t.Errorf("terms snapshot wrong: %+v", got.Terms)
	}
	if got.Terms.SignatureCity != "San Salvador" || !got.Terms.SignatureDate.Equal(fixedNow) {
		t.Errorf("signature block wrong: %+v", got.Terms)
	}
}

func TestGenerate_DuplicateReservation(t *testing.T) {
	cr := &contractRepoMock{
		insertFn: func(ctx context.Context, c *model.Contract) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "contracts_reservation_id_key",
			}
		},
	}
	s := newTestService(cr)

	res, v, c := genInput()
	_, err := s.Generate(context.Background(), res, v, c)
	if Code(err) != ErrAlreadyExists {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
}

func TestClose_SetsEndedAt(t *testing.T) {
	cr := &contractRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Contract, error) {
			return &model.Contract{ID: id, Status: model.ContractActive}, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error) {
			return 1, nil
		},
	}
	s := newTestService(cr)

	got, err := s.Finalize(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.ContractFinalized {
		t.Errorf("Status = %q, want Finalized", got.Status)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(fixedNow) {
		t.Errorf("EndedAt = %v, want %v", got.EndedAt, fixedNow)
	}
}

func TestClose_TerminalContractsStayClosed(t *testing.T) {
	for _, st := range []model.ContractStatus{model.ContractFinalized, model.ContractAnnulled} {
		cr := &contractRepoMock{
			byIDFn: func(ctx context.Context, id int64) (*model.Contract, error) {
				return &model.Contract{ID: id, Status: st}, nil
			},
		}
		s := newTestService(cr)

		if _, err := s.Annul(context.Background(), 7); Code(err) != ErrTerminal {
			t.Errorf("status %s: got %v, want ErrTerminal", st, err)
		}
	}
}

func TestClose_LostRace(t *testing.T) {
	cr := &contractRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Contract, error) {
			return &model.Contract{ID: id, Status: model.ContractActive}, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status model.ContractStatus, endedAt time.Time) (int64, error) {
			// another close won between the read and the write
			return 0, nil
		},
	}
	s := newTestService(cr)

	if _, err := s.Finalize(context.Background(), 7); Code(err) != ErrTerminal {
		t.Fatalf("got %v, want ErrTerminal", err)
	}
}

func TestClose_NotFound(t *testing.T) {
	cr := &contractRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Contract, error) { return nil, nil },
	}
	s := newTestService(cr)

	if _, err := s.Finalize(context.Background(), 404); Code(err) != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
