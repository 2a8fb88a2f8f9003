package services

import (
	"context"
	"fmt"
	"time"

	"agriscan/internal/models"
	"agriscan/internal/repository"

	"github.com/google/uuid"
)

type SessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

func (s *SessionService) CreateSession(ctx context.Context, userID, token string, deviceInfo, ipAddress *string) (*models.UserSession, error) {
	session := &models.UserSession{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		CreatedAt:  time.Now(),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func (s *SessionService) GetSessionByToken(ctx context.Context, token string) (*models.UserSession, error) {
	return s.sessionRepo.GetSessionByToken(ctx, token)
}

func (s *SessionService) RevokeUserSessions(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}
