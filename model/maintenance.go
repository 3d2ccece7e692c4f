package model

import "time"

type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceInProgress MaintenanceStatus = "InProgress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
	MaintenanceCancelled  MaintenanceStatus = "Cancelled"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted, MaintenanceCancelled:
		return true
	}
	return false
}

type Maintenance struct {
	ID            int64             `json:"id"`
	VehicleID     int64             `json:"vehicle_id"`
	ServiceType   string            `json:"service_type"`
	Description   string            `json:"description"`
	ScheduledDate time.Time         `json:"scheduled_date"`
	CompletedDate *time.Time        `json:"completed_date,omitempty"`
	Cost          float64           `json:"cost"`
	Status        MaintenanceStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}
