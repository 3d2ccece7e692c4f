package maintenance

import "time"

type CreateMaintenanceReq struct {
	VehicleID     int64     `json:"vehicle_id" validate:"required,gt=0"`
	ServiceType   string    `json:"service_type" validate:"required"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Cost          float64   `json:"cost" validate:"gte=0"`
	Status        string    `json:"status" validate:"omitempty,oneof=Scheduled InProgress Completed Cancelled"`
}

type UpdateMaintenanceReq struct {
	ServiceType   string    `json:"service_type" validate:"required"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Cost          float64   `json:"cost" validate:"gte=0"`
}

type SetStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Scheduled InProgress Completed Cancelled"`
}
