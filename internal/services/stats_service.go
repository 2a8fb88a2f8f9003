package services

import (
	"agriscan/internal/models"
	"agriscan/internal/repository"
)

type IStatsService interface {
	GetOverview() (*models.OverviewStats, error)
	GetGeographical() (*models.GeographicalStats, error)
}

type StatsService struct {
	statsRepo repository.IStatsRepository
}

func NewStatsService(statsRepo repository.IStatsRepository) IStatsService {
	return &StatsService{statsRepo: statsRepo}
}

func (s *StatsService) GetOverview() (*models.OverviewStats, error) {
	return s.statsRepo.GetOverview()
}

func (s *StatsService) GetGeographical() (*models.GeographicalStats, error) {
	states, err := s.statsRepo.GetGeographical()
	if err != nil {
		return nil, err
	}
	return &models.GeographicalStats{States: states}, nil
}
