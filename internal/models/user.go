package models

import (
	"time"
)

type User struct {
	UserID       string     `json:"userId" db:"user_id"`
	Phone        string     `json:"phone" db:"phone"`
	FullName     string     `json:"full_name" db:"full_name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         UserRole   `json:"role" db:"role"`
	City         *string    `json:"city,omitempty" db:"city"`
	State        *string    `json:"state,omitempty" db:"state"`
	GpsLat       *float64   `json:"gpsLat,omitempty" db:"gps_lat"`
	GpsLng       *float64   `json:"gpsLng,omitempty" db:"gps_lng"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastActive   *time.Time `json:"lastActive,omitempty" db:"last_active"`
}

type UserRole string

const (
	RoleFarmer    UserRole = "farmer"
	RoleInspector UserRole = "inspector"
)

func (r UserRole) Valid() bool {
	return r == RoleFarmer || r == RoleInspector
}
