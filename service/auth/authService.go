package authsvc

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"carrental/model"
	clientrepo "carrental/repository/client"
	employeerepo "carrental/repository/employee"
	mailerrepo "carrental/repository/mailer"
	"carrental/util/cache"
	"carrental/util/hash"
	jwtutil "carrental/util/jwt"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadCode      ErrCode = "BAD_CODE"
	ErrNotFound     ErrCode = "NOT_FOUND"
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

const (
	recoveryTTL = 10 * time.Minute
	tokenTTL    = 24 // hours
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Client, string, error)
	Login(ctx context.Context, req model.LoginReq) (int64, string, string, error)
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, clientID int64, oldPassword, newPassword string) error
}

type service struct {
	cr     clientrepo.Repo
	er     employeerepo.Repo
	codes  cache.Cache
	mail   mailerrepo.Repo
	secret string
	log    *slog.Logger
}

func New(cr clientrepo.Repo, er employeerepo.Repo, codes cache.Cache, mail mailerrepo.Repo, secret string, log *slog.Logger) Service {
	return &service{cr: cr, er: er, codes: codes, mail: mail, secret: secret, log: log}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Client, string, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	c := &model.Client{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Address:        req.Address,
		DocumentNumber: req.DocumentNumber,
		LicenseNumber:  req.LicenseNumber,
		PasswordHash:   hashed,
	}
	if err := s.cr.Create(ctx, c); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return nil, "", makeErr(ErrEmailTaken)
		}
		return nil, "", err
	}

	// welcome mail is fire-and-forget
	go func() {
		if err := s.mail.Send(mailerrepo.Message{
			To:      c.Email,
			Subject: "Welcome to our rental service",
			HTML:    fmt.Sprintf("<p>Hi %s, your account is ready.</p>", c.FirstName),
		}); err != nil {
			s.log.Error("welcome mail failed", "client_id", c.ID, "err", err)
		}
	}()

	token, err := jwtutil.Issue(s.secret, c.ID, "client", tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

// Login resolves employees first so a staff account with a client-side
// duplicate still gets its role.
func (s *service) Login(ctx context.Context, req model.LoginReq) (int64, string, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if e, err := s.er.ByEmail(ctx, email); err == nil && e != nil {
		if !hash.Check(e.PasswordHash, req.Password) {
			return 0, "", "", makeErr(ErrInvalidCreds)
		}
		role := e.Role
		if role == "" {
			role = "employee"
		}
		token, err := jwtutil.Issue(s.secret, e.ID, role, tokenTTL)
		return e.ID, role, token, err
	}

	c, err := s.cr.ByEmail(ctx, email)
	if err != nil || c == nil {
		return 0, "", "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(c.PasswordHash, req.Password) {
		return 0, "", "", makeErr(ErrInvalidCreds)
	}
	token, err := jwtutil.Issue(s.secret, c.ID, "client", tokenTTL)
	return c.ID, "client", token, err
}

func recoveryKey(email string) string { return "recovery:" + email }

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RecoverPassword stores a short-lived code and mails it. The code survives
// only in the cache: a restart drops pending recoveries.
func (s *service) RecoverPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	c, err := s.cr.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	if c == nil {
		return makeErr(ErrNotFound)
	}

	code, err := sixDigitCode()
	if err != nil {
		return err
	}
	if err := s.codes.Put(ctx, recoveryKey(email), code, recoveryTTL); err != nil {
		return err
	}

	go func() {
		if err := s.mail.Send(mailerrepo.Message{
			To:      email,
			Subject: "Password recovery code",
			HTML:    fmt.Sprintf("<p>Your recovery code is <b>%s</b>. It expires in 10 minutes.</p>", code),
		}); err != nil {
			s.log.Error("recovery mail failed", "client_id", c.ID, "err", err)
		}
	}()
	return nil
}

func (s *service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	stored, err := s.codes.Get(ctx, recoveryKey(email))
	if err != nil || stored != code {
		return makeErr(ErrBadCode)
	}

	c, err := s.cr.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	if c == nil {
		return makeErr(ErrNotFound)
	}

	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.cr.UpdatePassword(ctx, c.ID, hashed); err != nil {
		return err
	}
	// a completed code round-trip proves the inbox
	if err := s.cr.SetEmailVerified(ctx, c.ID, true); err != nil {
		s.log.Error("email verification flag update failed", "client_id", c.ID, "err", err)
	}
	// codes are single-use
	_ = s.codes.Delete(ctx, recoveryKey(email))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, clientID int64, oldPassword, newPassword string) error {
	c, err := s.cr.ByID(ctx, clientID)
	if err != nil {
		return err
	}
	if c == nil {
		return makeErr(ErrNotFound)
	}
	if !hash.Check(c.PasswordHash, oldPassword) {
		return makeErr(ErrInvalidCreds)
	}
	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.cr.UpdatePassword(ctx, clientID, hashed)
}
