package model

import (
	"encoding/json"
	"time"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "Active"
	ContractFinalized ContractStatus = "Finalized"
	ContractAnnulled  ContractStatus = "Annulled"
)

// LeaseTerms is the frozen snapshot computed at generation time. It is never
// recomputed when the source client or vehicle records change, except by an
// explicit PDF regeneration.
type LeaseTerms struct {
	TenantName     string    `json:"tenant_name"`
	TenantAddress  string    `json:"tenant_address"`
	TenantDocument string    `json:"tenant_document"`
	TenantLicense  string    `json:"tenant_license"`
	VehicleName    string    `json:"vehicle_name"`
	BrandName      string    `json:"brand_name"`
	VehicleModel   string    `json:"vehicle_model"`
	Plate          string    `json:"plate"`
	SignatureCity  string    `json:"signature_city"`
	SignatureDate  time.Time `json:"signature_date"`
}

type Contract struct {
	ID            int64          `json:"id"`
	ReservationID int64          `json:"reservation_id"`
	Status        ContractStatus `json:"status"`
	DailyPrice    float64        `json:"daily_price"`
	RentalDays    int            `json:"rental_days"`
	TotalAmount   float64        `json:"total_amount"`
	DepositAmount float64        `json:"deposit_amount"`
	Terms         LeaseTerms     `json:"terms"`
	// Checklist is the hand-off inspection sub-document, opaque to this
	// service and filled in by the inspection workflow.
	Checklist json.RawMessage `json:"checklist,omitempty"`
	PdfURL    *string         `json:"pdf_url,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	EndedAt   *time.Time      `json:"ended_at,omitempty"`
}
