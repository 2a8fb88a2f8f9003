package store

import (
	"context"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/models"
)

type DiseasesStore struct {
	res resource[[]models.Disease]
	api *client.Client
}

func NewDiseasesStore(api *client.Client) *DiseasesStore {
	return &DiseasesStore{api: api}
}

func (s *DiseasesStore) Refetch(ctx context.Context, plantTypeID string) error {
	return s.res.refetch(ctx, func(ctx context.Context) ([]models.Disease, int, error) {
		return s.api.GetDiseases(ctx, plantTypeID)
	})
}

func (s *DiseasesStore) Diseases() ([]models.Disease, int) {
	data, count, _, _ := s.res.snapshot()
	return data, count
}

func (s *DiseasesStore) IsLoading() bool {
	_, _, state, _ := s.res.snapshot()
	return state == StateLoading
}

func (s *DiseasesStore) Err() error {
	_, _, _, err := s.res.snapshot()
	return err
}

// OverviewStore holds the dashboard home aggregates.
type OverviewStore struct {
	res resource[*models.OverviewStats]
	api *client.Client
}

func NewOverviewStore(api *client.Client) *OverviewStore {
	return &OverviewStore{api: api}
}

func (s *OverviewStore) Refetch(ctx context.Context) error {
	return s.res.refetch(ctx, func(ctx context.Context) (*models.OverviewStats, int, error) {
		stats, err := s.api.GetOverviewStats(ctx)
		return stats, 0, err
	})
}

func (s *OverviewStore) Stats() *models.OverviewStats {
	data, _, _, _ := s.res.snapshot()
	return data
}

func (s *OverviewStore) IsLoading() bool {
	_, _, state, _ := s.res.snapshot()
	return state == StateLoading
}

func (s *OverviewStore) Err() error {
	_, _, _, err := s.res.snapshot()
	return err
}
