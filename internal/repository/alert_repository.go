package repository

import (
	"fmt"
	"log"
	"strings"

	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/jmoiron/sqlx"
)

type IAlertRepository interface {
	CreateAlert(alert *models.Alert) error
	GetAlerts(q *models.AlertQuery) ([]models.Alert, int, error)
	GetAlertByID(alertID string) (*models.Alert, error)
	UpdateAlert(alert *models.Alert) error
	DeleteAlert(alertID string) error
	DeactivateExpired() (int64, error)
}

type AlertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) IAlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) CreateAlert(alert *models.Alert) error {
	query := `
        INSERT INTO alerts (
            id, title, description, severity, target_state, target_city,
            created_at, expires_at, is_active
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	err := utils.ExecWithCheck(r.db, query, utils.ExecInsert,
		alert.ID, alert.Title, alert.Description, alert.Severity,
		alert.TargetState, alert.TargetCity, alert.CreatedAt, alert.ExpiresAt, alert.IsActive,
	)
	if err != nil {
		log.Printf("Error creating alert: %s", err.Error())
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) GetAlerts(q *models.AlertQuery) ([]models.Alert, int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}
	argPos := 1

	if q.Severity != "" {
		where = append(where, fmt.Sprintf("severity = $%d", argPos))
		args = append(args, q.Severity)
		argPos++
	}
	if q.State != "" {
		where = append(where, fmt.Sprintf("target_state = $%d", argPos))
		args = append(args, q.State)
		argPos++
	}

	whereClause := " WHERE " + strings.Join(where, " AND ")

	var count int
	if err := r.db.Get(&count, "SELECT COUNT(*) FROM alerts"+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM alerts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, argPos, argPos+1,
	)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	alerts := []models.Alert{}
	if err := r.db.Select(&alerts, query, args...); err != nil {
		log.Printf("Error fetching alerts: %v", err)
		return nil, 0, fmt.Errorf("failed to fetch alerts: %w", err)
	}

	return alerts, count, nil
}

func (r *AlertRepository) GetAlertByID(alertID string) (*models.Alert, error) {
	var alert models.Alert
	err := r.db.Get(&alert, "SELECT * FROM alerts WHERE id = $1", alertID)
	if err != nil {
		log.Printf("Error fetching alert %s: %v", alertID, err)
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepository) UpdateAlert(alert *models.Alert) error {
	query := `
        UPDATE alerts SET
            title = $1,
            description = $2,
            severity = $3,
            target_state = $4,
            target_city = $5,
            expires_at = $6
        WHERE id = $7
    `
	if err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		alert.Title, alert.Description, alert.Severity,
		alert.TargetState, alert.TargetCity, alert.ExpiresAt, alert.ID); err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) DeleteAlert(alertID string) error {
	if err := utils.ExecWithCheck(r.db, "DELETE FROM alerts WHERE id = $1", utils.ExecDelete, alertID); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// DeactivateExpired flips is_active off for alerts past their expiry.
func (r *AlertRepository) DeactivateExpired() (int64, error) {
	result, err := r.db.Exec("UPDATE alerts SET is_active = FALSE WHERE is_active = TRUE AND expires_at < now()")
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired alerts: %w", err)
	}
	return result.RowsAffected()
}
