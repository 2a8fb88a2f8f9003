package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserSession struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Token      string    `json:"-"`
	DeviceInfo *string   `json:"device_info"`
	IPAddress  *string   `json:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `json:"is_active"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Phone  string
	Role   string
}
