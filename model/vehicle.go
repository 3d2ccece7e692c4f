package model

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "Available"
	VehicleReserved    VehicleStatus = "Reserved"
	VehicleMaintenance VehicleStatus = "Maintenance"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleAvailable, VehicleReserved, VehicleMaintenance:
		return true
	}
	return false
}

type Vehicle struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Plate         string        `json:"plate"`
	BrandID       int64         `json:"brand_id"`
	Year          int           `json:"year"`
	Capacity      int           `json:"capacity"`
	Color         string        `json:"color"`
	Model         string        `json:"model"`
	EngineNumber  string        `json:"engine_number"`
	ChassisNumber string        `json:"chassis_number"`
	VIN           string        `json:"vin"`
	MainImageURL  *string       `json:"main_image_url,omitempty"`
	SideImageURL  *string       `json:"side_image_url,omitempty"`
	LeasePdfURL   *string       `json:"lease_pdf_url,omitempty"`
	Status        VehicleStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
