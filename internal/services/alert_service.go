package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"agriscan/internal/event"
	"agriscan/internal/models"
	"agriscan/internal/repository"

	"github.com/google/uuid"
)

type IAlertService interface {
	GetAlerts(q *models.AlertQuery) ([]models.Alert, int, error)
	CreateAlert(ctx context.Context, req *models.CreateAlertRequest) (*models.Alert, error)
	UpdateAlert(ctx context.Context, alertID string, req *models.UpdateAlertRequest) (*models.Alert, error)
	DeleteAlert(alertID string) error
	SweepExpired() (int64, error)
}

type AlertService struct {
	alertRepo repository.IAlertRepository
	publisher event.AlertPublisher
}

func NewAlertService(alertRepo repository.IAlertRepository, publisher event.AlertPublisher) IAlertService {
	return &AlertService{
		alertRepo: alertRepo,
		publisher: publisher,
	}
}

func (s *AlertService) GetAlerts(q *models.AlertQuery) ([]models.Alert, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.alertRepo.GetAlerts(q)
}

func ValidateCreateAlert(req *models.CreateAlertRequest) (*models.Alert, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if req.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if req.TargetState == "" {
		return nil, fmt.Errorf("target state is required")
	}
	severity, ok := models.NormalizeAlertSeverity(req.Severity)
	if !ok {
		return nil, fmt.Errorf("invalid severity: %s", req.Severity)
	}
	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("invalid expiresAt: %s", req.ExpiresAt)
	}
	if !expiresAt.After(time.Now()) {
		return nil, fmt.Errorf("expiresAt must be in the future")
	}

	return &models.Alert{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Severity:    severity,
		TargetState: req.TargetState,
		TargetCity:  req.TargetCity,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
		IsActive:    true,
	}, nil
}

func (s *AlertService) CreateAlert(ctx context.Context, req *models.CreateAlertRequest) (*models.Alert, error) {
	alert, err := ValidateCreateAlert(req)
	if err != nil {
		return nil, err
	}

	if err := s.alertRepo.CreateAlert(alert); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAlert(ctx, alert); err != nil {
			// The alert is stored either way; delivery is best effort.
			log.Printf("failed to publish alert %s: %v", alert.ID, err)
		}
	}

	return alert, nil
}

func (s *AlertService) UpdateAlert(ctx context.Context, alertID string, req *models.UpdateAlertRequest) (*models.Alert, error) {
	alert, err := s.alertRepo.GetAlertByID(alertID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		alert.Title = *req.Title
	}
	if req.Description != nil {
		alert.Description = *req.Description
	}
	if req.Severity != nil {
		severity, ok := models.NormalizeAlertSeverity(*req.Severity)
		if !ok {
			return nil, fmt.Errorf("invalid severity: %s", *req.Severity)
		}
		alert.Severity = severity
	}
	if req.TargetState != nil {
		alert.TargetState = *req.TargetState
	}
	if req.TargetCity != nil {
		alert.TargetCity = req.TargetCity
	}
	if req.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expiresAt: %s", *req.ExpiresAt)
		}
		alert.ExpiresAt = expiresAt
	}

	if err := s.alertRepo.UpdateAlert(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) DeleteAlert(alertID string) error {
	return s.alertRepo.DeleteAlert(alertID)
}

func (s *AlertService) SweepExpired() (int64, error) {
	return s.alertRepo.DeactivateExpired()
}
