package model

import "time"

type Brand struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LogoURL      string    `json:"logo_url"`
	LogoPublicID string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
