package model

import "time"

type Client struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	DocumentNumber string    `json:"document_number"`
	LicenseNumber  string    `json:"license_number"`
	PasswordHash   string    `json:"-"`
	DocumentFront  *string   `json:"document_front_url,omitempty"`
	DocumentBack   *string   `json:"document_back_url,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterReq represents client registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address"`
	DocumentNumber string `json:"document_number" validate:"required"`
	LicenseNumber  string `json:"license_number"`
	Password       string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
