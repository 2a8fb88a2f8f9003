package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agriscan/internal/models"

	"github.com/redis/go-redis/v9"
)

// SessionRepository handles session storage in Redis.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.UserSession) error
	GetSession(ctx context.Context, sessionID string) (*models.UserSession, error)
	GetSessionByToken(ctx context.Context, token string) (*models.UserSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}

type sessionRepository struct {
	client     *redis.Client
	expiration time.Duration
}

// storedSession is the Redis copy of a session. UserSession hides the token
// from API responses, so the Redis copy carries it in a sibling field;
// DeleteSession needs it back to drop the tokenlookup key.
type storedSession struct {
	models.UserSession
	Token string `json:"token"`
}

func marshalSession(session *models.UserSession) ([]byte, error) {
	return json.Marshal(storedSession{UserSession: *session, Token: session.Token})
}

func unmarshalSession(data []byte) (*models.UserSession, error) {
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	session := stored.UserSession
	session.Token = stored.Token
	return &session, nil
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{
		client:     client,
		expiration: 24 * time.Hour,
	}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *models.UserSession) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}
	if session.UserID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	session.ExpiresAt = time.Now().Add(r.expiration)
	session.IsActive = true

	sessionData, err := marshalSession(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.getSessionKey(session.ID), sessionData, r.expiration)
	pipe.Set(ctx, r.getTokenKey(session.Token), session.ID, r.expiration)
	pipe.SAdd(ctx, r.getUserSessionsKey(session.UserID), session.ID)
	pipe.Expire(ctx, r.getUserSessionsKey(session.UserID), r.expiration)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID cannot be empty")
	}

	sessionData, err := r.client.Get(ctx, r.getSessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session, err := unmarshalSession([]byte(sessionData))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		r.DeleteSession(ctx, sessionID)
		return nil, fmt.Errorf("session expired")
	}

	return session, nil
}

func (r *sessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.UserSession, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, r.getTokenKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	return r.GetSession(ctx, sessionID)
}

func (r *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		// Session might already be deleted or expired, not an error
		return nil
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.getSessionKey(sessionID))
	pipe.Del(ctx, r.getTokenKey(session.Token))
	pipe.SRem(ctx, r.getUserSessionsKey(session.UserID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	userSessionsKey := r.getUserSessionsKey(userID)
	sessionIDs, err := r.client.SMembers(ctx, userSessionsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to get user sessions: %w", err)
	}

	for _, sessionID := range sessionIDs {
		if err := r.DeleteSession(ctx, sessionID); err != nil {
			return err
		}
	}

	return r.client.Del(ctx, userSessionsKey).Err()
}

func (r *sessionRepository) getSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (r *sessionRepository) getTokenKey(token string) string {
	return fmt.Sprintf("session_token:%s", token)
}

func (r *sessionRepository) getUserSessionsKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}
