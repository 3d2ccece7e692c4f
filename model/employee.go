package model

import "time"

type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"` // employee | manager
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
