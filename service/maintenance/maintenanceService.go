package maintenancesvc

import (
	"context"
	"errors"
	"time"

	"carrental/model"
	maintenancerepo "carrental/repository/maintenance"
	vehiclerepo "carrental/repository/vehicle"
)

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrVehicleNotFound ErrCode = "VEHICLE_NOT_FOUND"
	ErrBadStatus       ErrCode = "BAD_STATUS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	Create(ctx context.Context, m *model.Maintenance) error
	List(ctx context.Context) ([]model.Maintenance, error)
	ByID(ctx context.Context, id int64) (*model.Maintenance, error)
	ByVehicle(ctx context.Context, vehicleID int64) ([]model.Maintenance, error)
	Update(ctx context.Context, m *model.Maintenance) error
	SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) (*model.Maintenance, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	mr  maintenancerepo.Repo
	vr  vehiclerepo.Repo
	now func() time.Time
}

func New(mr maintenancerepo.Repo, vr vehiclerepo.Repo) Service {
	return &service{mr: mr, vr: vr, now: time.Now}
}

// Create schedules the work and flags the vehicle as under maintenance.
// The vehicle write follows the same best-effort coupling reservations use;
// a record logged directly in a terminal state leaves the vehicle alone.
func (s *service) Create(ctx context.Context, m *model.Maintenance) error {
	v, err := s.vr.ByID(ctx, m.VehicleID)
	if err != nil {
		return err
	}
	if v == nil {
		return makeErr(ErrVehicleNotFound)
	}

	if m.Status == "" {
		m.Status = model.MaintenanceScheduled
	}
	if !m.Status.Valid() {
		return makeErr(ErrBadStatus)
	}

	if err := s.mr.Create(ctx, m); err != nil {
		return err
	}
	if m.Status == model.MaintenanceScheduled || m.Status == model.MaintenanceInProgress {
		return s.vr.UpdateStatus(ctx, m.VehicleID, model.VehicleMaintenance)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Maintenance, error) {
	return s.mr.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Maintenance, error) {
	m, err := s.mr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, makeErr(ErrNotFound)
	}
	return m, nil
}

func (s *service) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Maintenance, error) {
	return s.mr.ByVehicle(ctx, vehicleID)
}

func (s *service) Update(ctx context.Context, m *model.Maintenance) error {
	existing, err := s.mr.ByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return makeErr(ErrNotFound)
	}
	return s.mr.Update(ctx, m)
}

// SetStatus moves the record through its lifecycle; Completed and Cancelled
// release the vehicle back to Available.
func (s *service) SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus) (*model.Maintenance, error) {
	if !status.Valid() {
		return nil, makeErr(ErrBadStatus)
	}
	m, err := s.mr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, makeErr(ErrNotFound)
	}

	var completedAt *time.Time
	if status == model.MaintenanceCompleted {
		t := s.now()
		completedAt = &t
	}
	if err := s.mr.SetStatus(ctx, id, status, completedAt); err != nil {
		return nil, err
	}
	m.Status = status
	m.CompletedDate = completedAt

	if status == model.MaintenanceCompleted || status == model.MaintenanceCancelled {
		if err := s.vr.UpdateStatus(ctx, m.VehicleID, model.VehicleAvailable); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.mr.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}
