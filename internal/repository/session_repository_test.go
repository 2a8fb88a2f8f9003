package repository

import (
	"encoding/json"
	"testing"
	"time"

	"agriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSessionRedisCopyKeepsToken(t *testing.T) {
	session := &models.UserSession{
		ID:        "sess-1",
		UserID:    "user-1",
		Token:     "jwt-token-value",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
		IsActive:  true,
	}

	data, err := marshalSession(session)
	assert.NoError(t, err)

	restored, err := unmarshalSession(data)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, restored.ID)
	assert.Equal(t, session.UserID, restored.UserID)
	assert.Equal(t, "jwt-token-value", restored.Token, "token must survive the round trip so DeleteSession can drop the token lookup key")
}

func TestSessionAPISerializationHidesToken(t *testing.T) {
	session := &models.UserSession{
		ID:     "sess-1",
		UserID: "user-1",
		Token:  "jwt-token-value",
	}

	data, err := json.Marshal(session)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "jwt-token-value")
}
