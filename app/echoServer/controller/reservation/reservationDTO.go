package reservation

import (
	"time"

	"carrental/model"
)

type BeneficiaryReq struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CreateReservationReq struct {
	ClientID    int64           `json:"client_id" validate:"omitempty,gt=0"`
	VehicleID   int64           `json:"vehicle_id" validate:"required,gt=0"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	ReturnDate  time.Time       `json:"return_date" validate:"required"`
	PricePerDay float64         `json:"price_per_day" validate:"required,gt=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=Pending Active Completed"`
	Beneficiary *BeneficiaryReq `json:"beneficiary"`
}

type UpdateReservationReq struct {
	ClientID    *int64          `json:"client_id" validate:"omitempty,gt=0"`
	VehicleID   *int64          `json:"vehicle_id" validate:"omitempty,gt=0"`
	StartDate   *time.Time      `json:"start_date"`
	ReturnDate  *time.Time      `json:"return_date"`
	PricePerDay *float64        `json:"price_per_day"`
	Status      *string         `json:"status"`
	Beneficiary *BeneficiaryReq `json:"beneficiary"`
}

func (b *BeneficiaryReq) toModel() *model.Beneficiary {
	if b == nil {
		return nil
	}
	return &model.Beneficiary{Name: b.Name, Phone: b.Phone, Email: b.Email}
}
