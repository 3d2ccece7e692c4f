package model

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationActive    ReservationStatus = "Active"
	ReservationCompleted ReservationStatus = "Completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationActive, ReservationCompleted:
		return true
	}
	return false
}

// Beneficiary is the denormalized snapshot of the person actually renting,
// which may differ from the account that made the booking.
type Beneficiary struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Reservation struct {
	ID          int64             `json:"id"`
	ClientID    int64             `json:"client_id"`
	VehicleID   int64             `json:"vehicle_id"`
	Beneficiary Beneficiary       `json:"beneficiary"`
	StartDate   time.Time         `json:"start_date"`
	ReturnDate  time.Time         `json:"return_date"`
	PricePerDay float64           `json:"price_per_day"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// MyReservationRow decorates a reservation with vehicle display fields for
// the authenticated client's listing.
type MyReservationRow struct {
	Reservation
	VehicleName  string  `json:"vehicle_name"`
	VehicleModel string  `json:"vehicle_model"`
	VehiclePlate string  `json:"vehicle_plate"`
	VehicleImage *string `json:"vehicle_image,omitempty"`
}
