package reservationsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"carrental/model"
	reservationsvc "carrental/service/reservation"
)

type resRepoMock struct {
	insertFn   func(ctx context.Context, res *model.Reservation) error
	byIDFn     func(ctx context.Context, id int64) (*model.Reservation, error)
	listFn     func(ctx context.Context) ([]model.Reservation, error)
	byVehFn    func(ctx context.Context, vehicleID int64) ([]model.Reservation, error)
	byStatusFn func(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error)
	mineFn     func(ctx context.Context, clientID int64) ([]model.MyReservationRow, error)
	updateFn   func(ctx context.Context, res *model.Reservation) error
	deleteFn   func(ctx context.Context, id int64) (int64, error)
}

func (m *resRepoMock) Insert(ctx context.Context, res *model.Reservation) error {
	return m.insertFn(ctx, res)
}
func (m *resRepoMock) ByID(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.byIDFn(ctx, id)
}
func (m *resRepoMock) List(ctx context.Context) ([]model.Reservation, error) { return m.listFn(ctx) }
func (m *resRepoMock) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Reservation, error) {
	return m.byVehFn(ctx, vehicleID)
}
func (m *resRepoMock) ByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
	return m.byStatusFn(ctx, status)
}
func (m *resRepoMock) ByClientWithVehicle(ctx context.Context, clientID int64) ([]model.MyReservationRow, error) {
	return m.mineFn(ctx, clientID)
}
func (m *resRepoMock) Update(ctx context.Context, res *model.Reservation) error {
	return m.updateFn(ctx, res)
}
func (m *resRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteFn(ctx, id)
}

type vehRepoMock struct {
	byIDFn         func(ctx context.Context, id int64) (*model.Vehicle, error)
	updateStatusFn func(ctx context.Context, id int64, status model.VehicleStatus) error
}

func (m *vehRepoMock) Create(ctx context.Context, v *model.Vehicle) error { panic("unexpected") }
func (m *vehRepoMock) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return m.byIDFn(ctx, id)
}
func (m *vehRepoMock) List(ctx context.Context) ([]model.Vehicle, error) { panic("unexpected") }
func (m *vehRepoMock) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	panic("unexpected")
}
func (m *vehRepoMock) Update(ctx context.Context, v *model.Vehicle) error { panic("unexpected") }
func (m *vehRepoMock) UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *vehRepoMock) SetImages(ctx context.Context, id int64, main, side *string) error {
	panic("unexpected")
}
func (m *vehRepoMock) SetLeasePdf(ctx context.Context, id int64, url string) error {
	panic("unexpected")
}
func (m *vehRepoMock) Delete(ctx context.Context, id int64) (int64, error) { panic("unexpected") }

type cliRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Client, error)
}

func (m *cliRepoMock) Create(ctx context.Context, c *model.Client) error { panic("unexpected") }
func (m *cliRepoMock) ByEmail(ctx context.Context, email string) (*model.Client, error) {
	panic("unexpected")
}
func (m *cliRepoMock) ByID(ctx context.Context, id int64) (*model.Client, error) {
	return m.byIDFn(ctx, id)
}
func (m *cliRepoMock) List(ctx context.Context) ([]model.Client, error)  { panic("unexpected") }
func (m *cliRepoMock) Update(ctx context.Context, c *model.Client) error { panic("unexpected") }
func (m *cliRepoMock) UpdatePassword(ctx context.Context, id int64, hash string) error {
	panic("unexpected")
}
func (m *cliRepoMock) SetDocumentImages(ctx context.Context, id int64, front, back *string) error {
	panic("unexpected")
}
func (m *cliRepoMock) SetEmailVerified(ctx context.Context, id int64, verified bool) error {
	panic("unexpected")
}
func (m *cliRepoMock) Delete(ctx context.Context, id int64) (int64, error) { panic("unexpected") }

type genMock struct {
	generateFn func(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error)
}

func (m *genMock) Generate(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error) {
	return m.generateFn(ctx, res, v, c)
}

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func happyMocks() (*resRepoMock, *vehRepoMock, *cliRepoMock, *genMock) {
	rr := &resRepoMock{
		insertFn: func(ctx context.Context, res *model.Reservation) error {
			res.ID = 77
			return nil
		},
	}
	vr := &vehRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, Name: "Corolla", BrandID: 1}, nil
		},
	}
	cr := &cliRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Client, error) {
			return &model.Client{
				ID: id, FirstName: "Ana", LastName: "Lopez",
				Phone: "7777-0000", Email: "ana@example.com",
			}, nil
		},
	}
	gen := &genMock{
		generateFn: func(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error) {
			return &model.Contract{ID: 1, ReservationID: res.ID}, nil
		},
	}
	return rr, vr, cr, gen
}

func TestCreate_RejectsBadPrice(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	for _, price := range []float64{0, -10} {
		_, err := s.Create(context.Background(), reservationsvc.CreateInput{
			ClientID: 1, VehicleID: 2,
			StartDate: day(1), ReturnDate: day(3), PricePerDay: price,
		})
		if reservationsvc.Code(err) != reservationsvc.ErrBadPrice {
			t.Fatalf("price %v: got %v, want ErrBadPrice", price, err)
		}
	}

	// any positive price is fine, even a cent
	if _, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 0.01,
	}); err != nil {
		t.Fatalf("price 0.01: unexpected error %v", err)
	}
}

func TestCreate_RejectsBadDateRange(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	cases := []struct{ start, ret time.Time }{
		{day(3), day(3)}, // equal
		{day(5), day(3)}, // inverted
	}
	for _, tc := range cases {
		_, err := s.Create(context.Background(), reservationsvc.CreateInput{
			ClientID: 1, VehicleID: 2,
			StartDate: tc.start, ReturnDate: tc.ret, PricePerDay: 30,
		})
		if reservationsvc.Code(err) != reservationsvc.ErrBadDateRange {
			t.Fatalf("start=%v return=%v: got %v, want ErrBadDateRange", tc.start, tc.ret, err)
		}
	}
}

func TestCreate_DefaultsToPending(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	res, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.ReservationPending {
		t.Fatalf("status = %q, want Pending", res.Status)
	}
}

func TestCreate_BeneficiaryFallsBackToClient(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	res, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Beneficiary.Name != "Ana Lopez" ||
		res.Beneficiary.Phone != "7777-0000" ||
		res.Beneficiary.Email != "ana@example.com" {
		t.Fatalf("beneficiary not derived from client: %+v", res.Beneficiary)
	}
}

func TestCreate_ExplicitBeneficiaryKept(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	res, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
		Beneficiary: &model.Beneficiary{Name: "Carlos Paz", Phone: "1234", Email: "cp@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Beneficiary.Name != "Carlos Paz" {
		t.Fatalf("beneficiary overwritten: %+v", res.Beneficiary)
	}
}

func TestCreate_UnknownClientOrVehicle(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	cr.byIDFn = func(ctx context.Context, id int64) (*model.Client, error) { return nil, nil }
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	_, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
	})
	if reservationsvc.Code(err) != reservationsvc.ErrClientNotFound {
		t.Fatalf("got %v, want ErrClientNotFound", err)
	}

	rr2, vr2, cr2, gen2 := happyMocks()
	vr2.byIDFn = func(ctx context.Context, id int64) (*model.Vehicle, error) { return nil, nil }
	s = reservationsvc.New(rr2, vr2, cr2, gen2, testLog)

	_, err = s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
	})
	if reservationsvc.Code(err) != reservationsvc.ErrVehicleNotFound {
		t.Fatalf("got %v, want ErrVehicleNotFound", err)
	}
}

func TestCreate_ContractFailureDoesNotUndoReservation(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	gen.generateFn = func(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error) {
		return nil, errors.New("renderer down")
	}
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	res, err := s.Create(context.Background(), reservationsvc.CreateInput{
		ClientID: 1, VehicleID: 2,
		StartDate: day(1), ReturnDate: day(3), PricePerDay: 30,
	})
	if err != nil {
		t.Fatalf("reservation should survive contract failure, got %v", err)
	}
	if res.ID != 77 {
		t.Fatalf("reservation not persisted: %+v", res)
	}
}

func existing(id int64) *model.Reservation {
	return &model.Reservation{
		ID: id, ClientID: 1, VehicleID: 5,
		StartDate: day(1), ReturnDate: day(4),
		PricePerDay: 30, Status: model.ReservationPending,
	}
}

func statusPtr(s model.ReservationStatus) *model.ReservationStatus { return &s }

func TestUpdate_ActiveReservesVehicle(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	rr.byIDFn = func(ctx context.Context, id int64) (*model.Reservation, error) {
		return existing(id), nil
	}
	rr.updateFn = func(ctx context.Context, res *model.Reservation) error { return nil }

	var gotVehicle int64
	var gotStatus model.VehicleStatus
	vr.updateStatusFn = func(ctx context.Context, id int64, status model.VehicleStatus) error {
		gotVehicle, gotStatus = id, status
		return nil
	}
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	res, err := s.Update(context.Background(), 9, reservationsvc.UpdateInput{
		Status: statusPtr(model.ReservationActive),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.ReservationActive {
		t.Fatalf("status = %q, want Active", res.Status)
	}
	if gotVehicle != 5 || gotStatus != model.VehicleReserved {
		t.Fatalf("vehicle update = (%d, %q), want (5, Reserved)", gotVehicle, gotStatus)
	}
}

func TestUpdate_CompletedReleasesVehicle(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	rr.byIDFn = func(ctx context.Context, id int64) (*model.Reservation, error) {
		return existing(id), nil
	}
	rr.updateFn = func(ctx context.Context, res *model.Reservation) error { return nil }

	var gotStatus model.VehicleStatus
	vr.updateStatusFn = func(ctx context.Context, id int64, status model.VehicleStatus) error {
		gotStatus = status
		return nil
	}
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	if _, err := s.Update(context.Background(), 9, reservationsvc.UpdateInput{
		Status: statusPtr(model.ReservationCompleted),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.VehicleAvailable {
		t.Fatalf("vehicle status = %q, want Available", gotStatus)
	}
}

func TestUpdate_PendingLeavesVehicleAlone(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	rr.byIDFn = func(ctx context.Context, id int64) (*model.Reservation, error) {
		return existing(id), nil
	}
	rr.updateFn = func(ctx context.Context, res *model.Reservation) error { return nil }
	vr.updateStatusFn = func(ctx context.Context, id int64, status model.VehicleStatus) error {
		t.Fatal("vehicle status must not change for Pending")
		return nil
	}
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	if _, err := s.Update(context.Background(), 9, reservationsvc.UpdateInput{
		Status: statusPtr(model.ReservationPending),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_MergedDatesValidated(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	rr.byIDFn = func(ctx context.Context, id int64) (*model.Reservation, error) {
		return existing(id), nil
	}
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	// stored return is day 4; moving start past it must fail
	start := day(10)
	_, err := s.Update(context.Background(), 9, reservationsvc.UpdateInput{StartDate: &start})
	if reservationsvc.Code(err) != reservationsvc.ErrBadDateRange {
		t.Fatalf("got %v, want ErrBadDateRange", err)
	}
}

func TestDelete_Unconditional(t *testing.T) {
	// Only deleteFn is wired: deletion must not look up the reservation,
	// its vehicle, its client or any dependent contract first.
	var deleted int64
	rr := &resRepoMock{
		deleteFn: func(ctx context.Context, id int64) (int64, error) {
			deleted = id
			return 1, nil
		},
	}
	s := reservationsvc.New(rr, &vehRepoMock{}, &cliRepoMock{}, &genMock{}, testLog)

	if err := s.Delete(context.Background(), 77); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 77 {
		t.Fatalf("deleted id = %d, want 77", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	rr.deleteFn = func(ctx context.Context, id int64) (int64, error) { return 0, nil }
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	err := s.Delete(context.Background(), 404)
	if reservationsvc.Code(err) != reservationsvc.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestByStatus_RejectsUnknown(t *testing.T) {
	rr, vr, cr, gen := happyMocks()
	s := reservationsvc.New(rr, vr, cr, gen, testLog)

	_, err := s.ByStatus(context.Background(), "Bogus")
	if reservationsvc.Code(err) != reservationsvc.ErrBadStatus {
		t.Fatalf("got %v, want ErrBadStatus", err)
	}
}
