package reservationsvc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"carrental/model"
	clientrepo "carrental/repository/client"
	reservationrepo "carrental/repository/reservation"
	vehiclerepo "carrental/repository/vehicle"
)

// errors used by controllers

type ErrCode string

const (
	ErrClientNotFound  ErrCode = "CLIENT_NOT_FOUND"
	ErrVehicleNotFound ErrCode = "VEHICLE_NOT_FOUND"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrBadDateRange    ErrCode = "BAD_DATE_RANGE"
	ErrBadPrice        ErrCode = "BAD_PRICE"
	ErrBadStatus       ErrCode = "BAD_STATUS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type CreateInput struct {
	ClientID    int64
	VehicleID   int64
	StartDate   time.Time
	ReturnDate  time.Time
	PricePerDay float64
	Status      model.ReservationStatus // empty defaults to Pending
	Beneficiary *model.Beneficiary      // nil falls back to the client's own contact fields
}

type UpdateInput struct {
	ClientID    *int64
	VehicleID   *int64
	Beneficiary *model.Beneficiary
	StartDate   *time.Time
	ReturnDate  *time.Time
	PricePerDay *float64
	Status      *model.ReservationStatus
}

// ContractGenerator is invoked after a reservation is persisted. Its failure
// is logged and swallowed; the reservation write is authoritative.
type ContractGenerator interface {
	Generate(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error)
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.Reservation, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context) ([]model.Reservation, error)
	ByID(ctx context.Context, id int64) (*model.Reservation, error)
	ByVehicle(ctx context.Context, vehicleID int64) ([]model.Reservation, error)
	ByStatus(ctx context.Context, status string) ([]model.Reservation, error)
	Mine(ctx context.Context, clientID int64) ([]model.MyReservationRow, error)
}

type service struct {
	rr  reservationrepo.Repo
	vr  vehiclerepo.Repo
	cr  clientrepo.Repo
	gen ContractGenerator
	log *slog.Logger
}

func New(rr reservationrepo.Repo, vr vehiclerepo.Repo, cr clientrepo.Repo, gen ContractGenerator, log *slog.Logger) Service {
	return &service{rr: rr, vr: vr, cr: cr, gen: gen, log: log}
}

// Create validates the booking, persists it, then generates the rental
// contract as a best-effort side effect. Overlapping reservations against
// the same vehicle and date range are allowed; staff arbitrate later.
func (s *service) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if in.PricePerDay <= 0 {
		return nil, makeErr(ErrBadPrice)
	}
	if !in.StartDate.Before(in.ReturnDate) {
		return nil, makeErr(ErrBadDateRange)
	}

	status := in.Status
	if status == "" {
		status = model.ReservationPending
	}
	if !status.Valid() {
		return nil, makeErr(ErrBadStatus)
	}

	client, err := s.cr.ByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, makeErr(ErrClientNotFound)
	}

	vehicle, err := s.vr.ByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, makeErr(ErrVehicleNotFound)
	}

	beneficiary := in.Beneficiary
	if beneficiary == nil {
		beneficiary = &model.Beneficiary{
			Name:  client.FirstName + " " + client.LastName,
			Phone: client.Phone,
			Email: client.Email,
		}
	}

	res := &model.Reservation{
		ClientID:    in.ClientID,
		VehicleID:   in.VehicleID,
		Beneficiary: *beneficiary,
		StartDate:   in.StartDate,
		ReturnDate:  in.ReturnDate,
		PricePerDay: in.PricePerDay,
		Status:      status,
	}
	if err := s.rr.Insert(ctx, res); err != nil {
		return nil, err
	}

	if _, err := s.gen.Generate(ctx, res, vehicle, client); err != nil {
		s.log.Error("contract generation failed, reservation kept",
			"reservation_id", res.ID, "err", err)
	}

	return res, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*model.Reservation, error) {
	res, err := s.rr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, makeErr(ErrNotFound)
	}

	if in.ClientID != nil {
		c, err := s.cr.ByID(ctx, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, makeErr(ErrClientNotFound)
		}
		res.ClientID = *in.ClientID
	}
	if in.VehicleID != nil {
		v, err := s.vr.ByID(ctx, *in.VehicleID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, makeErr(ErrVehicleNotFound)
		}
		res.VehicleID = *in.VehicleID
	}
	if in.Beneficiary != nil {
		res.Beneficiary = *in.Beneficiary
	}
	if in.StartDate != nil {
		res.StartDate = *in.StartDate
	}
	if in.ReturnDate != nil {
		res.ReturnDate = *in.ReturnDate
	}
	// effective range after merging supplied and stored dates
	if !res.StartDate.Before(res.ReturnDate) {
		return nil, makeErr(ErrBadDateRange)
	}
	if in.PricePerDay != nil {
		if *in.PricePerDay <= 0 {
			return nil, makeErr(ErrBadPrice)
		}
		res.PricePerDay = *in.PricePerDay
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, makeErr(ErrBadStatus)
		}
		res.Status = *in.Status
	}

	if err := s.rr.Update(ctx, res); err != nil {
		return nil, err
	}

	// Availability side effect. Two independent writes: a conflicting update
	// from another reservation wins by being last. Pending leaves the
	// vehicle untouched.
	if in.Status != nil {
		switch *in.Status {
		case model.ReservationActive:
			err = s.vr.UpdateStatus(ctx, res.VehicleID, model.VehicleReserved)
		case model.ReservationCompleted:
			err = s.vr.UpdateStatus(ctx, res.VehicleID, model.VehicleAvailable)
		}
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Delete is unconditional: no dependent-contract check, no vehicle status
// reconciliation.
func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.rr.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Reservation, error) {
	return s.rr.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.rr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, makeErr(ErrNotFound)
	}
	return res, nil
}

func (s *service) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Reservation, error) {
	return s.rr.ByVehicle(ctx, vehicleID)
}

func (s *service) ByStatus(ctx context.Context, status string) ([]model.Reservation, error) {
	st := model.ReservationStatus(status)
	if !st.Valid() {
		return nil, makeErr(ErrBadStatus)
	}
	return s.rr.ByStatus(ctx, st)
}

func (s *service) Mine(ctx context.Context, clientID int64) ([]model.MyReservationRow, error) {
	return s.rr.ByClientWithVehicle(ctx, clientID)
}
