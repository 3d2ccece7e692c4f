package vehiclesvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"carrental/model"
	brandrepo "carrental/repository/brand"
	cloudinaryrepo "carrental/repository/cloudinary"
	vehiclerepo "carrental/repository/vehicle"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrBrandNotFound ErrCode = "BRAND_NOT_FOUND"
	ErrPlateTaken    ErrCode = "PLATE_TAKEN"
	ErrBadStatus     ErrCode = "BAD_STATUS"
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
	Create(ctx context.Context, v *model.Vehicle) error
	List(ctx context.Context, status string) ([]model.Vehicle, error)
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	UploadImages(ctx context.Context, id int64, main, side []byte) (*model.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	vr  vehiclerepo.Repo
	br  brandrepo.Repo
	img cloudinaryrepo.Repo
	log *slog.Logger
}

func New(vr vehiclerepo.Repo, br brandrepo.Repo, img cloudinaryrepo.Repo, log *slog.Logger) Service {
	return &service{vr: vr, br: br, img: img, log: log}
}

func (s *service) Create(ctx context.Context, v *model.Vehicle) error {
	b, err := s.br.ByID(ctx, v.BrandID)
	if err != nil {
		return err
	}
	if b == nil {
		return makeErr(ErrBrandNotFound)
	}

	if v.Status == "" {
		v.Status = model.VehicleAvailable
	}
	if !v.Status.Valid() {
		return makeErr(ErrBadStatus)
	}

	if err := s.vr.Create(ctx, v); err != nil {
		if field, ok := pgerr.UniqueField(err); ok && field == "plate" {
			return makeErr(ErrPlateTaken)
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, status string) ([]model.Vehicle, error) {
	if status == "" {
		return s.vr.List(ctx)
	}
	st := model.VehicleStatus(status)
	if !st.Valid() {
		return nil, makeErr(ErrBadStatus)
	}
	return s.vr.ListByStatus(ctx, st)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.vr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, makeErr(ErrNotFound)
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, v *model.Vehicle) error {
	existing, err := s.vr.ByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return makeErr(ErrNotFound)
	}
	if v.BrandID != existing.BrandID {
		b, err := s.br.ByID(ctx, v.BrandID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrBrandNotFound)
		}
	}
	if !v.Status.Valid() {
		return makeErr(ErrBadStatus)
	}
	if err := s.vr.Update(ctx, v); err != nil {
		if field, ok := pgerr.UniqueField(err); ok && field == "plate" {
			return makeErr(ErrPlateTaken)
		}
		return err
	}
	return nil
}

// UploadImages stores whichever images were supplied; an upload failure on
// one image does not discard the other.
func (s *service) UploadImages(ctx context.Context, id int64, main, side []byte) (*model.Vehicle, error) {
	v, err := s.vr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, makeErr(ErrNotFound)
	}

	var mainURL, sideURL *string
	if len(main) > 0 {
		resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
			Data: main, Folder: "vehicles", PublicID: fmt.Sprintf("vehicle-%d-main", id),
		})
		if err != nil {
			s.log.Error("vehicle main image upload failed", "vehicle_id", id, "err", err)
		} else {
			mainURL = &resp.URL
		}
	}
	if len(side) > 0 {
		resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
			Data: side, Folder: "vehicles", PublicID: fmt.Sprintf("vehicle-%d-side", id),
		})
		if err != nil {
			s.log.Error("vehicle side image upload failed", "vehicle_id", id, "err", err)
		} else {
			sideURL = &resp.URL
		}
	}
	if mainURL == nil && sideURL == nil {
		return nil, errors.New("no image could be stored")
	}

	if err := s.vr.SetImages(ctx, id, mainURL, sideURL); err != nil {
		return nil, err
	}
	if mainURL != nil {
		v.MainImageURL = mainURL
	}
	if sideURL != nil {
		v.SideImageURL = sideURL
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.vr.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}
