package rendererrepo

import "carrental/model"

type RenderReq struct {
	ContractID    int64
	Terms         model.LeaseTerms
	RentalDays    int
	DailyPrice    float64
	TotalAmount   float64
	DepositAmount float64
}

// Repo renders a lease document from structured terms and returns a
// retrievable URL.
type Repo interface {
	RenderLease(req RenderReq) (string, error)
}
