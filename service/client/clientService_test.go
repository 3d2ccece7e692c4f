package clientsvc_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"carrental/model"
	cloudinaryrepo "carrental/repository/cloudinary"
	mailerrepo "carrental/repository/mailer"
	clientsvc "carrental/service/client"
	"carrental/util/cache"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type clientRepoMock struct {
	byIDFn          func(ctx context.Context, id int64) (*model.Client, error)
	updateFn        func(ctx context.Context, c *model.Client) error
	setEmailVerifFn func(ctx context.Context, id int64, verified bool) error
	deleteFn        func(ctx context.Context, id int64) (int64, error)
}

func (m *clientRepoMock) Create(ctx context.Context, c *model.Client) error { panic("unexpected") }
func (m *clientRepoMock) ByEmail(ctx context.Context, email string) (*model.Client, error) {
	panic("unexpected")
}
func (m *clientRepoMock) ByID(ctx context.Context, id int64) (*model.Client, error) {
	return m.byIDFn(ctx, id)
}
func (m *clientRepoMock) List(ctx context.Context) ([]model.Client, error) { panic("unexpected") }
func (m *clientRepoMock) Update(ctx context.Context, c *model.Client) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, c)
}
func (m *clientRepoMock) UpdatePassword(ctx context.Context, id int64, hash string) error {
	panic("unexpected")
}
func (m *clientRepoMock) SetDocumentImages(ctx context.Context, id int64, front, back *string) error {
	panic("unexpected")
}
func (m *clientRepoMock) SetEmailVerified(ctx context.Context, id int64, verified bool) error {
	if m.setEmailVerifFn == nil {
		return nil
	}
	return m.setEmailVerifFn(ctx, id, verified)
}
func (m *clientRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteFn(ctx, id)
}

type imgMock struct{}

func (imgMock) Upload(req cloudinaryrepo.UploadReq) (*cloudinaryrepo.UploadResp, error) {
	return &cloudinaryrepo.UploadResp{URL: "https://cdn/doc.png", PublicID: "documents/doc"}, nil
}
func (imgMock) Delete(publicID string) error { return nil }

type mailMock struct{}

func (mailMock) Send(msg mailerrepo.Message) error { return nil }

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func anaByID(ctx context.Context, id int64) (*model.Client, error) {
	return &model.Client{
		ID: id, FirstName: "Ana", LastName: "Lopez",
		Email: "ana@example.com", Phone: "7777-0000",
	}, nil
}

// pendingCode digs the parked code out of the cache the way the mailed
// message would deliver it.
func pendingCode(t *testing.T, codes cache.Cache, id string) string {
	t.Helper()
	raw, err := codes.Get(context.Background(), "email-change:"+id)
	if err != nil {
		t.Fatalf("no pending change stored: %v", err)
	}
	var p struct {
		Code  string `json:"code"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("stored payload not JSON: %v", err)
	}
	if len(p.Code) != 6 {
		t.Fatalf("code %q is not six digits", p.Code)
	}
	return p.Code
}

func TestEmailChange_Flow(t *testing.T) {
	ctx := context.Background()
	var savedEmail string
	var verified bool
	cr := &clientRepoMock{
		byIDFn: anaByID,
		updateFn: func(ctx context.Context, c *model.Client) error {
			savedEmail = c.Email
			return nil
		},
		setEmailVerifFn: func(ctx context.Context, id int64, v bool) error {
			verified = v
			return nil
		},
	}
	codes := cache.NewMemory()
	s := clientsvc.New(cr, imgMock{}, codes, mailMock{}, testLog)

	if err := s.RequestEmailChange(ctx, 7, "  NEW@Example.COM "); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	code := pendingCode(t, codes, "7")

	row, err := s.ConfirmEmailChange(ctx, 7, code)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if savedEmail != "new@example.com" || row.Email != "new@example.com" {
		t.Errorf("email = %q / %q, want normalized new address", savedEmail, row.Email)
	}
	if !verified {
		t.Error("confirmed address not flagged as verified")
	}

	// codes are single-use
	if _, err := s.ConfirmEmailChange(ctx, 7, code); clientsvc.Code(err) != clientsvc.ErrBadCode {
		t.Fatalf("got %v, want ErrBadCode on reuse", err)
	}
}

func TestConfirmEmailChange_WrongCode(t *testing.T) {
	ctx := context.Background()
	cr := &clientRepoMock{byIDFn: anaByID}
	codes := cache.NewMemory()
	s := clientsvc.New(cr, imgMock{}, codes, mailMock{}, testLog)

	if err := s.RequestEmailChange(ctx, 7, "new@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := s.ConfirmEmailChange(ctx, 7, "000000"); clientsvc.Code(err) != clientsvc.ErrBadCode {
		t.Fatalf("got %v, want ErrBadCode", err)
	}
}

func TestConfirmEmailChange_EmailTaken(t *testing.T) {
	ctx := context.Background()
	cr := &clientRepoMock{
		byIDFn: anaByID,
		updateFn: func(ctx context.Context, c *model.Client) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "clients_email_key"}
		},
	}
	codes := cache.NewMemory()
	s := clientsvc.New(cr, imgMock{}, codes, mailMock{}, testLog)

	if err := s.RequestEmailChange(ctx, 7, "taken@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	code := pendingCode(t, codes, "7")

	if _, err := s.ConfirmEmailChange(ctx, 7, code); clientsvc.Code(err) != clientsvc.ErrEmailTaken {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestRequestEmailChange_UnknownClient(t *testing.T) {
	cr := &clientRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Client, error) { return nil, nil },
	}
	s := clientsvc.New(cr, imgMock{}, cache.NewMemory(), mailMock{}, testLog)

	err := s.RequestEmailChange(context.Background(), 404, "new@example.com")
	if clientsvc.Code(err) != clientsvc.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDelete_Unconditional(t *testing.T) {
	// Only deleteFn is wired: deletion must not consult the record or any
	// reservations that still reference it.
	var deleted int64
	cr := &clientRepoMock{
		deleteFn: func(ctx context.Context, id int64) (int64, error) {
			deleted = id
			return 1, nil
		},
	}
	s := clientsvc.New(cr, imgMock{}, cache.NewMemory(), mailMock{}, testLog)

	if err := s.Delete(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 {
		t.Fatalf("deleted id = %d, want 7", deleted)
	}
}
