package clientsvc

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"carrental/model"
	clientrepo "carrental/repository/client"
	cloudinaryrepo "carrental/repository/cloudinary"
	mailerrepo "carrental/repository/mailer"
	"carrental/util/cache"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrEmailTaken ErrCode = "EMAIL_TAKEN"
	ErrBadCode    ErrCode = "BAD_CODE"
	ErrDocStore   ErrCode = "DOCUMENT_STORE_FAILED"
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

const emailChangeTTL = 10 * time.Minute

// UpdateProfileInput carries the plain profile fields. Email is absent on
// purpose: address changes go through the verification-code flow below.
type UpdateProfileInput struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Address        *string
	DocumentNumber *string
	LicenseNumber  *string
}

type Service interface {
	List(ctx context.Context) ([]model.Client, error)
	ByID(ctx context.Context, id int64) (*model.Client, error)
	UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (*model.Client, error)
	RequestEmailChange(ctx context.Context, id int64, newEmail string) error
	ConfirmEmailChange(ctx context.Context, id int64, code string) (*model.Client, error)
	UploadDocuments(ctx context.Context, id int64, front, back []byte) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	cr    clientrepo.Repo
	img   cloudinaryrepo.Repo
	codes cache.Cache
	mail  mailerrepo.Repo
	log   *slog.Logger
}

func New(cr clientrepo.Repo, img cloudinaryrepo.Repo, codes cache.Cache, mail mailerrepo.Repo, log *slog.Logger) Service {
	return &service{cr: cr, img: img, codes: codes, mail: mail, log: log}
}

func (s *service) List(ctx context.Context) ([]model.Client, error) {
	return s.cr.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Client, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}
	return c, nil
}

func (s *service) UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (*model.Client, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}

	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.DocumentNumber != nil {
		c.DocumentNumber = *in.DocumentNumber
	}
	if in.LicenseNumber != nil {
		c.LicenseNumber = *in.LicenseNumber
	}

	if err := s.cr.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func emailChangeKey(id int64) string { return fmt.Sprintf("email-change:%d", id) }

type pendingEmailChange struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestEmailChange parks the requested address with a short-lived code and
// mails the code to that address. Nothing on the client record changes until
// the code comes back; a restart drops pending changes.
func (s *service) RequestEmailChange(ctx context.Context, id int64, newEmail string) error {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return makeErr(ErrNotFound)
	}

	newEmail = strings.ToLower(strings.TrimSpace(newEmail))
	code, err := sixDigitCode()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(pendingEmailChange{Code: code, Email: newEmail})
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, emailChangeKey(id), string(payload), emailChangeTTL); err != nil {
		return err
	}

	go func() {
		if err := s.mail.Send(mailerrepo.Message{
			To:      newEmail,
			Subject: "Confirm your new email address",
			HTML:    fmt.Sprintf("<p>Your confirmation code is <b>%s</b>. It expires in 10 minutes.</p>", code),
		}); err != nil {
			s.log.Error("email change mail failed", "client_id", id, "err", err)
		}
	}()
	return nil
}

// ConfirmEmailChange applies the parked address once the code matches.
func (s *service) ConfirmEmailChange(ctx context.Context, id int64, code string) (*model.Client, error) {
	stored, err := s.codes.Get(ctx, emailChangeKey(id))
	if err != nil {
		return nil, makeErr(ErrBadCode)
	}
	var pending pendingEmailChange
	if err := json.Unmarshal([]byte(stored), &pending); err != nil || pending.Code != code {
		return nil, makeErr(ErrBadCode)
	}

	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}

	c.Email = pending.Email
	if err := s.cr.Update(ctx, c); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return nil, makeErr(ErrEmailTaken)
		}
		return nil, err
	}
	// the round-trip proved the new inbox
	if err := s.cr.SetEmailVerified(ctx, id, true); err != nil {
		s.log.Error("email verification flag update failed", "client_id", id, "err", err)
	}
	// codes are single-use
	_ = s.codes.Delete(ctx, emailChangeKey(id))
	return c, nil
}

// UploadDocuments stores the identity-document images. The upload is the
// point of the operation here, so a total failure is surfaced, but a single
// missing side is tolerated.
func (s *service) UploadDocuments(ctx context.Context, id int64, front, back []byte) (*model.Client, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound)
	}

	var frontURL, backURL *string
	if len(front) > 0 {
		resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
			Data: front, Folder: "documents", PublicID: fmt.Sprintf("client-%d-front", id),
		})
		if err != nil {
			s.log.Error("document front upload failed", "client_id", id, "err", err)
		} else {
			frontURL = &resp.URL
		}
	}
	if len(back) > 0 {
		resp, err := s.img.Upload(cloudinaryrepo.UploadReq{
			Data: back, Folder: "documents", PublicID: fmt.Sprintf("client-%d-back", id),
		})
		if err != nil {
			s.log.Error("document back upload failed", "client_id", id, "err", err)
		} else {
			backURL = &resp.URL
		}
	}
	if frontURL == nil && backURL == nil {
		return nil, makeErr(ErrDocStore)
	}

	if err := s.cr.SetDocumentImages(ctx, id, frontURL, backURL); err != nil {
		return nil, err
	}
	if frontURL != nil {
		c.DocumentFront = frontURL
	}
	if backURL != nil {
		c.DocumentBack = backURL
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.cr.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}
