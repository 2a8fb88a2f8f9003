package worker

import (
	"log"

	"agriscan/internal/services"

	"github.com/robfig/cron/v3"
)

// AlertSweeper periodically deactivates alerts past their expiry so the
// alerts list only serves live ones.
type AlertSweeper struct {
	alertService services.IAlertService
	cron         *cron.Cron
}

func NewAlertSweeper(alertService services.IAlertService) *AlertSweeper {
	return &AlertSweeper{
		alertService: alertService,
		cron:         cron.New(),
	}
}

func (s *AlertSweeper) Start() {
	s.cron.AddFunc("@hourly", func() {
		swept, err := s.alertService.SweepExpired()
		if err != nil {
			log.Printf("alert expiry sweep failed: %v", err)
			return
		}
		if swept > 0 {
			log.Printf("alert expiry sweep deactivated %d alerts", swept)
		}
	})
	s.cron.Start()
}

func (s *AlertSweeper) Stop() {
	s.cron.Stop()
}
