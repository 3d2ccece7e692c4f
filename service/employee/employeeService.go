package employeesvc

import (
	"context"
	"errors"
	"strings"

	"carrental/model"
	employeerepo "carrental/repository/employee"
	"carrental/util/hash"
	"carrental/util/pgerr"
)

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrEmailTaken ErrCode = "EMAIL_TAKEN"
	ErrBadRole    ErrCode = "BAD_ROLE"
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

func validRole(role string) bool {
	return role == "employee" || role == "manager"
}

type Service interface {
	Create(ctx context.Context, e *model.Employee, password string) error
	List(ctx context.Context) ([]model.Employee, error)
	ByID(ctx context.Context, id int64) (*model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ er employeerepo.Repo }

func New(er employeerepo.Repo) Service { return &service{er: er} }

func (s *service) Create(ctx context.Context, e *model.Employee, password string) error {
	if !validRole(e.Role) {
		return makeErr(ErrBadRole)
	}
	hashed, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.PasswordHash = hashed

	if err := s.er.Create(ctx, e); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return makeErr(ErrEmailTaken)
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Employee, error) {
	return s.er.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Employee, error) {
	e, err := s.er.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, makeErr(ErrNotFound)
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, e *model.Employee) error {
	existing, err := s.er.ByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return makeErr(ErrNotFound)
	}
	if !validRole(e.Role) {
		return makeErr(ErrBadRole)
	}
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))

	if err := s.er.Update(ctx, e); err != nil {
		if _, ok := pgerr.UniqueField(err); ok {
			return makeErr(ErrEmailTaken)
		}
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	n, err := s.er.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return makeErr(ErrNotFound)
	}
	return nil
}
