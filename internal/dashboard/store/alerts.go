package store

import (
	"context"
	"sync"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/models"
)

// AlertsStore holds the fetched alert list. Delete is optimistic: the
// alert is spliced out locally and the count decremented without a
// refetch. Create and update always go back to the server for the full
// list instead of reconciling locally.
type AlertsStore struct {
	res resource[[]models.Alert]

	mu         sync.Mutex
	lastParams client.AlertParams
	api        *client.Client
}

func NewAlertsStore(api *client.Client) *AlertsStore {
	return &AlertsStore{api: api}
}

func (s *AlertsStore) Refetch(ctx context.Context, params client.AlertParams) error {
	s.mu.Lock()
	s.lastParams = params
	s.mu.Unlock()
	return s.res.refetch(ctx, func(ctx context.Context) ([]models.Alert, int, error) {
		return s.api.GetAlerts(ctx, params)
	})
}

func (s *AlertsStore) refetchLast(ctx context.Context) error {
	s.mu.Lock()
	params := s.lastParams
	s.mu.Unlock()
	return s.Refetch(ctx, params)
}

func (s *AlertsStore) Create(ctx context.Context, req *models.CreateAlertRequest) error {
	if _, err := s.api.CreateAlert(ctx, req); err != nil {
		return err
	}
	// A failed refetch leaves the prior list in place with the error
	// surfaced through Err.
	return s.refetchLast(ctx)
}

func (s *AlertsStore) Update(ctx context.Context, alertID string, req *models.UpdateAlertRequest) error {
	if _, err := s.api.UpdateAlert(ctx, alertID, req); err != nil {
		return err
	}
	return s.refetchLast(ctx)
}

func (s *AlertsStore) Delete(ctx context.Context, alertID string) error {
	if err := s.api.DeleteAlert(ctx, alertID); err != nil {
		return err
	}
	s.res.mutate(func(alerts []models.Alert, count int) ([]models.Alert, int) {
		kept := alerts[:0]
		for _, alert := range alerts {
			if alert.ID != alertID {
				kept = append(kept, alert)
			}
		}
		return kept, count - 1
	})
	return nil
}

func (s *AlertsStore) Alerts() ([]models.Alert, int) {
	data, count, _, _ := s.res.snapshot()
	return data, count
}

func (s *AlertsStore) IsLoading() bool {
	_, _, state, _ := s.res.snapshot()
	return state == StateLoading
}

func (s *AlertsStore) Err() error {
	_, _, _, err := s.res.snapshot()
	return err
}
