package contractsvc

import (
	"context"
	"errors"
	"math"
	"time"

	"carrental/model"
	brandrepo "carrental/repository/brand"
	clientrepo "carrental/repository/client"
	contractrepo "carrental/repository/contract"
	rendererrepo "carrental/repository/renderer"
	reservationrepo "carrental/repository/reservation"
	vehiclerepo "carrental/repository/vehicle"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrAlreadyExists ErrCode = "ALREADY_EXISTS"
	ErrTerminal      ErrCode = "TERMINAL_STATUS"
	ErrOrphaned      ErrCode = "ORPHANED_CONTRACT"
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
	// Generate derives the contract from a persisted reservation and its
	// referenced entities. One contract per reservation; a second call
	// fails with ErrAlreadyExists.
	Generate(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error)

	Finalize(ctx context.Context, id int64) (*model.Contract, error)
	Annul(ctx context.Context, id int64) (*model.Contract, error)
	RegeneratePdf(ctx context.Context, id int64) (*model.Contract, error)

	ByID(ctx context.Context, id int64) (*model.Contract, error)
	ByReservation(ctx context.Context, reservationID int64) (*model.Contract, error)
	List(ctx context.Context) ([]model.Contract, error)
}

type service struct {
	cr  contractrepo.Repo
	rr  reservationrepo.Repo
	vr  vehiclerepo.Repo
	clr clientrepo.Repo
	br  brandrepo.Repo
	rd  rendererrepo.Repo

	signatureCity string
	now           func() time.Time
}

func New(cr contractrepo.Repo, rr reservationrepo.Repo, vr vehiclerepo.Repo, clr clientrepo.Repo, br brandrepo.Repo, rd rendererrepo.Repo, signatureCity string) Service {
	return &service{
		cr: cr, rr: rr, vr: vr, clr: clr, br: br, rd: rd,
		signatureCity: signatureCity,
		now:           time.Now,
	}
}

// RentalDays counts calendar days between start and return; partial days
// round up, so a 22-hour rental is 1 day.
func RentalDays(start, ret time.Time) int {
	return int(math.Ceil(ret.Sub(start).Hours() / 24))
}

func (s *service) buildTerms(c *model.Client, v *model.Vehicle, brandName string) model.LeaseTerms {
	return model.LeaseTerms{
		TenantName:     c.FirstName + " " + c.LastName,
		TenantAddress:  c.Address,
		TenantDocument: c.DocumentNumber,
		TenantLicense:  c.LicenseNumber,
		VehicleName:    v.Name,
		BrandName:      brandName,
		VehicleModel:   v.Model,
		Plate:          v.Plate,
		SignatureCity:  s.signatureCity,
		SignatureDate:  s.now(),
	}
}

func (s *service) Generate(ctx context.Context, res *model.Reservation, v *model.Vehicle, c *model.Client) (*model.Contract, error) {
	brandName := ""
	if b, err := s.br.ByID(ctx, v.BrandID); err == nil && b != nil {
		brandName = b.Name
	}

	days := RentalDays(res.StartDate, res.ReturnDate)
	contract := &model.Contract{
		ReservationID: res.ID,
		Status:        model.ContractActive,
		DailyPrice:    res.PricePerDay,
		RentalDays:    days,
		TotalAmount:   float64(days) * res.PricePerDay,
		DepositAmount: math.Round(res.PricePerDay * 2),
		Terms:         s.buildTerms(c, v, brandName),
		// checklist stays empty until the hand-off inspection fills it in
	}

	if err := s.cr.Insert(ctx, contract); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return nil, makeErr(ErrAlreadyExists)
		}
		return nil, err
	}
	return contract, nil
}

func (s *service) Finalize(ctx context.Context, id int64) (*model.Contract, error) {
	return s.close(ctx, id, model.ContractFinalized)
}

func (s *service) Annul(ctx context.Context, id int64) (*model.Contract, error) {
	return s.close(ctx, id, model.ContractAnnulled)
}

func (s *service) close(ctx context.Context, id int64, status model.ContractStatus) (*model.Contract, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	if c.Status != model.ContractActive {
		return nil, makeErr(ErrTerminal)
	}

	endedAt := s.now()
	n, err := s.cr.SetStatus(ctx, id, status, endedAt)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// lost a race against another close; the first one stands
		return nil, makeErr(ErrTerminal)
	}
	c.Status = status
	c.EndedAt = &endedAt
	return c, nil
}

// RegeneratePdf re-resolves the contract's reservation, vehicle and client,
// recomputes the lease-terms snapshot and requests a fresh rendering.
func (s *service) RegeneratePdf(ctx context.Context, id int64) (*model.Contract, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}

	res, err := s.rr.ByID(ctx, c.ReservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		// the reservation was deleted after the contract was generated
		return nil, makeErr(ErrOrphaned)
	}

	v, err := s.vr.ByID(ctx, res.VehicleID)
	if err != nil {
		return nil, err
	}
	client, err := s.clr.ByID(ctx, res.ClientID)
	if err != nil {
		return nil, err
	}
	if v == nil || client == nil {
		return nil, makeErr(ErrOrphaned)
	}

	brandName := ""
	if b, err := s.br.ByID(ctx, v.BrandID); err == nil && b != nil {
		brandName = b.Name
	}

	terms := s.buildTerms(client, v, brandName)
	if err := s.cr.UpdateTerms(ctx, id, terms); err != nil {
		return nil, err
	}

	url, err := s.rd.RenderLease(rendererrepo.RenderReq{
		ContractID:    c.ID,
		Terms:         terms,
		RentalDays:    c.RentalDays,
		DailyPrice:    c.DailyPrice,
		TotalAmount:   c.TotalAmount,
		DepositAmount: c.DepositAmount,
	})
	if err != nil {
		return nil, err
	}
	if err := s.cr.SetPdfURL(ctx, id, url); err != nil {
		return nil, err
	}
	// denormalized copy of the latest rendered lease, best effort
	_ = s.vr.SetLeasePdf(ctx, v.ID, url)

	c.Terms = terms
	c.PdfURL = &url
	return c, nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Contract, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	return c, nil
}

func (s *service) ByReservation(ctx context.Context, reservationID int64) (*model.Contract, error) {
	c, err := s.cr.ByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]model.Contract, error) {
	return s.cr.List(ctx)
}
