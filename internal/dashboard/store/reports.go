package store

import (
	"context"
	"sync"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/models"
)

// ReportsStore holds the last fetched page of reports. Refetch replaces
// the result set; it never merges.
type ReportsStore struct {
	res resource[[]models.Report]

	mu         sync.Mutex
	lastParams client.ReportParams
	api        *client.Client
}

func NewReportsStore(api *client.Client) *ReportsStore {
	return &ReportsStore{api: api}
}

func (s *ReportsStore) Refetch(ctx context.Context, params client.ReportParams) error {
	s.mu.Lock()
	s.lastParams = params
	s.mu.Unlock()
	return s.res.refetch(ctx, func(ctx context.Context) ([]models.Report, int, error) {
		return s.api.GetReports(ctx, params)
	})
}

// Refresh re-issues the previous fetch, the retry affordance on the
// reports screens.
func (s *ReportsStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	params := s.lastParams
	s.mu.Unlock()
	return s.Refetch(ctx, params)
}

func (s *ReportsStore) Reports() ([]models.Report, int) {
	data, count, _, _ := s.res.snapshot()
	return data, count
}

func (s *ReportsStore) IsLoading() bool {
	_, _, state, _ := s.res.snapshot()
	return state == StateLoading
}

func (s *ReportsStore) Err() error {
	_, _, _, err := s.res.snapshot()
	return err
}

// ReportDetailsStore holds one report fetched by id.
type ReportDetailsStore struct {
	res resource[*models.Report]
	api *client.Client
}

func NewReportDetailsStore(api *client.Client) *ReportDetailsStore {
	return &ReportDetailsStore{api: api}
}

func (s *ReportDetailsStore) Refetch(ctx context.Context, reportID string) error {
	return s.res.refetch(ctx, func(ctx context.Context) (*models.Report, int, error) {
		report, err := s.api.GetReportDetails(ctx, reportID)
		return report, 0, err
	})
}

// UpdateStatus submits an inspector review and replaces the held report
// with the reviewed one.
func (s *ReportDetailsStore) UpdateStatus(ctx context.Context, reportID string, req *models.UpdateReportStatusRequest) (*models.Report, error) {
	report, err := s.api.UpdateReportStatus(ctx, reportID, req)
	if err != nil {
		return nil, err
	}
	s.res.mutate(func(_ *models.Report, count int) (*models.Report, int) {
		return report, count
	})
	return report, nil
}

func (s *ReportDetailsStore) Report() *models.Report {
	data, _, _, _ := s.res.snapshot()
	return data
}

func (s *ReportDetailsStore) IsLoading() bool {
	_, _, state, _ := s.res.snapshot()
	return state == StateLoading
}

func (s *ReportDetailsStore) Err() error {
	_, _, _, err := s.res.snapshot()
	return err
}
