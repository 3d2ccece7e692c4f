package brandsvc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"carrental/model"
	cloudinaryrepo "carrental/repository/cloudinary"
	brandsvc "carrental/service/brand"
)

type brandRepoMock struct {
	createFn func(ctx context.Context, b *model.Brand) error
	byIDFn   func(ctx context.Context, id int64) (*model.Brand, error)
}

func (m *brandRepoMock) Create(ctx context.Context, b *model.Brand) error {
	return m.createFn(ctx, b)
}
func (m *brandRepoMock) ByID(ctx context.Context, id int64) (*model.Brand, error) {
	return m.byIDFn(ctx, id)
}
func (m *brandRepoMock) List(ctx context.Context) ([]model.Brand, error)  { return nil, nil }
func (m *brandRepoMock) Update(ctx context.Context, b *model.Brand) error { return nil }
func (m *brandRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	return 1, nil
}

type imgMock struct {
	uploadFn func(req cloudinaryrepo.UploadReq) (*cloudinaryrepo.UploadResp, error)
	deleted  []string
}

func (m *imgMock) Upload(req cloudinaryrepo.UploadReq) (*cloudinaryrepo.UploadResp, error) {
	if m.uploadFn == nil {
		return &cloudinaryrepo.UploadResp{URL: "https://cdn/x.png", PublicID: "brands/x"}, nil
	}
	return m.uploadFn(req)
}
func (m *imgMock) Delete(publicID string) error {
	m.deleted = append(m.deleted, publicID)
	return nil
}

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCreate_LogoRequired(t *testing.T) {
	s := brandsvc.New(&brandRepoMock{}, &imgMock{}, testLog)

	_, err := s.Create(context.Background(), "Toyota", nil)
	if brandsvc.Code(err) != brandsvc.ErrLogoStore {
		t.Fatalf("got %v, want ErrLogoStore", err)
	}
}

func TestCreate_UploadFailureAborts(t *testing.T) {
	br := &brandRepoMock{
		createFn: func(ctx context.Context, b *model.Brand) error {
			t.Fatal("must not persist when the logo upload fails")
			return nil
		},
	}
	img := &imgMock{
		uploadFn: func(req cloudinaryrepo.UploadReq) (*cloudinaryrepo.UploadResp, error) {
			return nil, errors.New("cloudinary 500")
		},
	}
	s := brandsvc.New(br, img, testLog)

	_, err := s.Create(context.Background(), "Toyota", []byte{1})
	if brandsvc.Code(err) != brandsvc.ErrLogoStore {
		t.Fatalf("got %v, want ErrLogoStore", err)
	}
}

func TestCreate_InsertFailureCleansUpLogo(t *testing.T) {
	br := &brandRepoMock{
		createFn: func(ctx context.Context, b *model.Brand) error {
			return errors.New("db down")
		},
	}
	img := &imgMock{}
	s := brandsvc.New(br, img, testLog)

	_, err := s.Create(context.Background(), "Toyota", []byte{1})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(img.deleted) != 1 || img.deleted[0] != "brands/x" {
		t.Fatalf("orphaned logo not cleaned up: %v", img.deleted)
	}
}

func TestCreate_Success(t *testing.T) {
	br := &brandRepoMock{
		createFn: func(ctx context.Context, b *model.Brand) error {
			b.ID = 4
			return nil
		},
	}
	s := brandsvc.New(br, &imgMock{}, testLog)

	b, err := s.Create(context.Background(), "Toyota", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 4 || b.LogoURL != "https://cdn/x.png" || b.LogoPublicID != "brands/x" {
		t.Fatalf("brand not populated: %+v", b)
	}
}

func TestDelete_RemovesStoredLogo(t *testing.T) {
	br := &brandRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Brand, error) {
			return &model.Brand{ID: id, Name: "Toyota", LogoPublicID: "brands/old"}, nil
		},
	}
	img := &imgMock{}
	s := brandsvc.New(br, img, testLog)

	if err := s.Delete(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img.deleted) != 1 || img.deleted[0] != "brands/old" {
		t.Fatalf("logo not removed: %v", img.deleted)
	}
}
