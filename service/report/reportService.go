package reportsvc

import (
	"context"

	reportrepo "carrental/repository/report"
)

type NewClientsRow = reportrepo.NewClientsRow
type BrandRentalsRow = reportrepo.BrandRentalsRow
type ModelRentalsRow = reportrepo.ModelRentalsRow

// Service exposes the read-only aggregations. Empty collections yield empty
// slices, never errors.
type Service interface {
	NewClientsPerDay(ctx context.Context) ([]NewClientsRow, error)
	MostRentedBrands(ctx context.Context) ([]BrandRentalsRow, error)
	MostRentedModels(ctx context.Context) ([]ModelRentalsRow, error)
}

type service struct{ r reportrepo.Repo }

func New(r reportrepo.Repo) Service { return &service{r: r} }

func (s *service) NewClientsPerDay(ctx context.Context) ([]NewClientsRow, error) {
	return s.r.NewClientsPerDay(ctx)
}

func (s *service) MostRentedBrands(ctx context.Context) ([]BrandRentalsRow, error) {
	return s.r.MostRentedBrands(ctx)
}

func (s *service) MostRentedModels(ctx context.Context) ([]ModelRentalsRow, error) {
	return s.r.MostRentedModels(ctx)
}
