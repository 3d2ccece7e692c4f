package maintenancesvc_test

import (
	"context"
	"testing"
	"time"

	"carrental/model"
	maintenancesvc "carrental/service/maintenance"
)

type mRepoMock struct {
	createFn    func(ctx context.Context, m *model.Maintenance) error
	byIDFn      func(ctx context.Context, id int64) (*model.Maintenance, error)
	setStatusFn func(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error
	deleteFn    func(ctx context.Context, id int64) (int64, error)
}

func (m *mRepoMock) Create(ctx context.Context, rec *model.Maintenance) error {
	return m.createFn(ctx, rec)
}
func (m *mRepoMock) ByID(ctx context.Context, id int64) (*model.Maintenance, error) {
	return m.byIDFn(ctx, id)
}
func (m *mRepoMock) List(ctx context.Context) ([]model.Maintenance, error) { return nil, nil }
func (m *mRepoMock) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Maintenance, error) {
	return nil, nil
}
func (m *mRepoMock) Update(ctx context.Context, rec *model.Maintenance) error { return nil }
func (m *mRepoMock) SetStatus(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error {
	return m.setStatusFn(ctx, id, status, completedAt)
}
func (m *mRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteFn(ctx, id)
}

type vRepoMock struct {
	byIDFn         func(ctx context.Context, id int64) (*model.Vehicle, error)
	updateStatusFn func(ctx context.Context, id int64, status model.VehicleStatus) error
}

func (m *vRepoMock) Create(ctx context.Context, v *model.Vehicle) error { panic("unexpected") }
func (m *vRepoMock) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return m.byIDFn(ctx, id)
}
func (m *vRepoMock) List(ctx context.Context) ([]model.Vehicle, error) { panic("unexpected") }
func (m *vRepoMock) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	panic("unexpected")
}
func (m *vRepoMock) Update(ctx context.Context, v *model.Vehicle) error { panic("unexpected") }
func (m *vRepoMock) UpdateStatus(ctx context.Context, id int64, status model.VehicleStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *vRepoMock) SetImages(ctx context.Context, id int64, main, side *string) error {
	panic("unexpected")
}
func (m *vRepoMock) SetLeasePdf(ctx context.Context, id int64, url string) error {
	panic("unexpected")
}
func (m *vRepoMock) Delete(ctx context.Context, id int64) (int64, error) { panic("unexpected") }

func TestCreate_FlagsVehicle(t *testing.T) {
	mr := &mRepoMock{
		createFn: func(ctx context.Context, rec *model.Maintenance) error {
			rec.ID = 3
			return nil
		},
	}
	var gotStatus model.VehicleStatus
	vr := &vRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, Status: model.VehicleAvailable}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status model.VehicleStatus) error {
			gotStatus = status
			return nil
		},
	}
	s := maintenancesvc.New(mr, vr)

	rec := &model.Maintenance{VehicleID: 8, ServiceType: "oil change", ScheduledDate: time.Now()}
	if err := s.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != model.MaintenanceScheduled {
		t.Errorf("status = %q, want Scheduled", rec.Status)
	}
	if gotStatus != model.VehicleMaintenance {
		t.Errorf("vehicle status = %q, want Maintenance", gotStatus)
	}
}

func TestCreate_TerminalStatusLeavesVehicle(t *testing.T) {
	mr := &mRepoMock{
		createFn: func(ctx context.Context, rec *model.Maintenance) error { return nil },
	}
	vr := &vRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, Status: model.VehicleAvailable}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status model.VehicleStatus) error {
			t.Fatal("a record logged as Completed must not flag the vehicle")
			return nil
		},
	}
	s := maintenancesvc.New(mr, vr)

	rec := &model.Maintenance{
		VehicleID:     8,
		ServiceType:   "bodywork",
		ScheduledDate: time.Now(),
		Status:        model.MaintenanceCompleted,
	}
	if err := s.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_UnknownVehicle(t *testing.T) {
	vr := &vRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Vehicle, error) { return nil, nil },
	}
	s := maintenancesvc.New(&mRepoMock{}, vr)

	err := s.Create(context.Background(), &model.Maintenance{VehicleID: 404})
	if maintenancesvc.Code(err) != maintenancesvc.ErrVehicleNotFound {
		t.Fatalf("got %v, want ErrVehicleNotFound", err)
	}
}

func TestSetStatus_CompletedReleasesVehicle(t *testing.T) {
	mr := &mRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Maintenance, error) {
			return &model.Maintenance{ID: id, VehicleID: 8, Status: model.MaintenanceInProgress}, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error {
			if completedAt == nil {
				t.Error("Completed must carry a completion timestamp")
			}
			return nil
		},
	}
	var gotStatus model.VehicleStatus
	vr := &vRepoMock{
		updateStatusFn: func(ctx context.Context, id int64, status model.VehicleStatus) error {
			gotStatus = status
			return nil
		},
	}
	s := maintenancesvc.New(mr, vr)

	rec, err := s.SetStatus(context.Background(), 3, model.MaintenanceCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.CompletedDate == nil {
		t.Error("CompletedDate not set")
	}
	if gotStatus != model.VehicleAvailable {
		t.Errorf("vehicle status = %q, want Available", gotStatus)
	}
}

func TestSetStatus_InProgressKeepsVehicle(t *testing.T) {
	mr := &mRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Maintenance, error) {
			return &model.Maintenance{ID: id, VehicleID: 8, Status: model.MaintenanceScheduled}, nil
		},
		setStatusFn: func(ctx context.Context, id int64, status model.MaintenanceStatus, completedAt *time.Time) error {
			if completedAt != nil {
				t.Error("InProgress must not set a completion timestamp")
			}
			return nil
		},
	}
	vr := &vRepoMock{
		updateStatusFn: func(ctx context.Context, id int64, status model.VehicleStatus) error {
			t.Fatal("vehicle status must not change for InProgress")
			return nil
		},
	}
	s := maintenancesvc.New(mr, vr)

	if _, err := s.SetStatus(context.Background(), 3, model.MaintenanceInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetStatus_RejectsUnknown(t *testing.T) {
	s := maintenancesvc.New(&mRepoMock{}, &vRepoMock{})

	_, err := s.SetStatus(context.Background(), 3, model.MaintenanceStatus("Bogus"))
	if maintenancesvc.Code(err) != maintenancesvc.ErrBadStatus {
		t.Fatalf("got %v, want ErrBadStatus", err)
	}
}
