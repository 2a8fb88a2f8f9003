package services

import (
	"testing"

	"agriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateNewToken("user-1", "+1234567890", models.RoleInspector)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "+1234567890", claims.Phone)
	assert.Equal(t, string(models.RoleInspector), claims.Role)
	assert.Equal(t, "agriscan-api", claims.Issuer)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateNewToken("user-1", "+1234567890", models.RoleFarmer)
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	_, err := NewJWTService("test-secret").VerifyToken("not-a-token")
	assert.Error(t, err)
}
