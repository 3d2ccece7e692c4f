package brandsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carrental/model"
	brandrepo "carrental/repository/brand"
	cloudinaryrepo "carrental/repository/cloudinary"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrNameTaken ErrCode = "NAME_TAKEN"
	ErrLogoStore ErrCode = "LOGO_STORE_FAILED"
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
	// Create requires the logo: the upload happens before any persistence
	// and its failure aborts the whole operation.
	Create(ctx context.Context, name string, logo []byte) (*model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	ByID(ctx context.Context, id int64) (*model.Brand, error)
	Update(ctx context.Context, id int64, name string, logo []byte) (*model.Brand, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	br  brandrepo.Repo
	img cloudinaryrepo.Repo
	log *slog.Logger
}

func New(br brandrepo.Repo, img cloudinaryrepo.Repo, log *slog.Logger) Service {
	return &service{br: br, img: img, log: log}
}

func (s *service) Create(ctx context.Context, name string, logo []byte) (*model.Brand, error) {
	if len(logo) == 0 {
		return nil, makeErr(ErrLogoStore)
	}
	resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
		Data: logo, Folder: "brands", PublicID: fmt.Sprintf("brand-%s-%d", name, time.Now().Unix()),
	})
	if err != nil {
		s.log.Error("brand logo upload failed", "name", name, "err", err)
		return nil, makeErr(ErrLogoStore)
	}

	b := &model.Brand{Name: name, LogoURL: resp.URL, LogoPublicID: resp.PublicID}
	if err := s.br.Create(ctx, b); err != nil {
		// drop the orphaned logo, best effort
		if derr := s.img.Delete(resp.PublicID); derr != nil {
			s.log.Error("orphaned logo cleanup failed", "public_id", resp.PublicID, "err", derr)
		}
		if _, ok := pgerr.UniqueField(err); ok {
			return nil, makeErr(ErrNameTaken)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Brand, error) {
	return s.br.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Brand, error) {
	b, err := s.br.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, name string, logo []byte) (*model.Brand, error) {
	b, err := s.br.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}

	if len(logo) > 0 {
		resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
			Data: logo, Folder: "brands", PublicID: fmt.Sprintf("brand-%s-%d", name, time.Now().Unix()),
		})
		if err != nil {
			return nil, makeErr(ErrLogoStore)
		}
		old := b.LogoPublicID
		b.LogoURL, b.LogoPublicID = resp.URL, resp.PublicID
		if old != "" {
			if derr := s.img.Delete(old); derr != nil {
				s.log.Error("stale logo cleanup failed", "public_id", old, "err", derr)
			}
		}
	}
	if name != "" {
		b.Name = name
	}

	if err := s.br.Update(ctx, b); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return nil, makeErr(ErrNameTaken)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	b, err := s.br.ByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return makeErr(ErrNotFound)
	}
	if _, err := s.br.Delete(ctx, id); err != nil {
		return err
	}
	if b.LogoPublicID != "" {
		if derr := s.img.Delete(b.LogoPublicID); derr != nil {
			s.log.Error("brand logo cleanup failed", "public_id", b.LogoPublicID, "err", derr)
		}
	}
	return nil
}
