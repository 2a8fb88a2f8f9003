package repository

import (
	"fmt"

	"agriscan/internal/models"

	"github.com/jmoiron/sqlx"
)

type IStatsRepository interface {
	GetOverview() (*models.OverviewStats, error)
	GetGeographical() ([]models.StateStats, error)
}

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) IStatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetOverview() (*models.OverviewStats, error) {
	stats := &models.OverviewStats{
		SeverityDistribution:  map[string]int{},
		PlantTypeDistribution: map[string]int{},
	}

	counts := struct {
		Total    int `db:"total"`
		Pending  int `db:"pending"`
		ThisWeek int `db:"this_week"`
	}{}
	err := r.db.Get(&counts, `
        SELECT
            COUNT(*) AS total,
            COUNT(*) FILTER (WHERE status = 'submitted') AS pending,
            COUNT(*) FILTER (WHERE timestamp >= now() - INTERVAL '7 days') AS this_week
        FROM reports
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate report counts: %w", err)
	}
	stats.TotalReports = counts.Total
	stats.PendingReports = counts.Pending
	stats.ReportsThisWeek = counts.ThisWeek

	if err := r.db.Get(&stats.TotalFarmers, "SELECT COUNT(*) FROM users WHERE role = 'farmer'"); err != nil {
		return nil, fmt.Errorf("failed to count farmers: %w", err)
	}

	// Severity buckets follow the dashboard's classification priority:
	// disease is high, then pest medium, then drought low, else healthy.
	severityRows := []struct {
		Severity string `db:"severity"`
		Count    int    `db:"count"`
	}{}
	err = r.db.Select(&severityRows, `
        SELECT
            CASE
                WHEN disease_id IS NOT NULL THEN 'high'
                WHEN pest_id IS NOT NULL THEN 'medium'
                WHEN drought_confidence IS NOT NULL THEN 'low'
                ELSE 'healthy'
            END AS severity,
            COUNT(*) AS count
        FROM reports
        GROUP BY 1
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate severity distribution: %w", err)
	}
	for _, row := range severityRows {
		stats.SeverityDistribution[row.Severity] = row.Count
	}

	plantRows := []struct {
		Plant string `db:"plant"`
		Count int    `db:"count"`
	}{}
	err = r.db.Select(&plantRows, `
        SELECT COALESCE(plant_name, 'Unknown') AS plant, COUNT(*) AS count
        FROM reports
        GROUP BY 1
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate plant distribution: %w", err)
	}
	for _, row := range plantRows {
		stats.PlantTypeDistribution[row.Plant] = row.Count
	}

	return stats, nil
}

func (r *StatsRepository) GetGeographical() ([]models.StateStats, error) {
	states := []models.StateStats{}
	err := r.db.Select(&states, `
        SELECT
            state,
            COUNT(*) AS report_count,
            COUNT(disease_id) AS disease_count,
            COUNT(pest_id) AS pest_count,
            COUNT(drought_confidence) AS drought_count
        FROM reports
        WHERE state <> ''
        GROUP BY state
        ORDER BY report_count DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate geographical stats: %w", err)
	}
	return states, nil
}
