package repository

import (
	"fmt"
	"log"
	"time"

	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type IUserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(userID string) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UpdateProfile(userID string, req *models.UpdateProfileRequest) error
	TouchLastActive(userID string) error
	CountByRole(role models.UserRole) (int, error)
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, hash string) bool
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
        INSERT INTO users (
            user_id, phone, full_name, password_hash, role,
            city, state, gps_lat, gps_lng, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	err := utils.ExecWithCheck(
		r.db,
		query,
		utils.ExecInsert,
		user.UserID,
		user.Phone,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.City,
		user.State,
		user.GpsLat,
		user.GpsLng,
		user.CreatedAt,
	)
	if err != nil {
		log.Printf("Error creating new user: %s", err.Error())
		return fmt.Errorf("error creating new user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE user_id = $1", userID)
	if err != nil {
		log.Printf("Error fetching user by id %s: %v", userID, err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.Get(&user, "SELECT * FROM users WHERE phone = $1", phone)
	if err != nil {
		log.Printf("Error fetching user by phone: %v", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(userID string, req *models.UpdateProfileRequest) error {
	query := `
        UPDATE users SET
            full_name = COALESCE($1, full_name),
            city      = COALESCE($2, city),
            state     = COALESCE($3, state),
            gps_lat   = COALESCE($4, gps_lat),
            gps_lng   = COALESCE($5, gps_lng)
        WHERE user_id = $6
    `
	if err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		req.FullName, req.City, req.State, req.GpsLat, req.GpsLng, userID); err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	return nil
}

func (r *UserRepository) TouchLastActive(userID string) error {
	_, err := r.db.Exec("UPDATE users SET last_active = $1 WHERE user_id = $2", time.Now(), userID)
	return err
}

func (r *UserRepository) CountByRole(role models.UserRole) (int, error) {
	var count int
	err := r.db.Get(&count, "SELECT COUNT(*) FROM users WHERE role = $1", role)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}

func (r *UserRepository) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (r *UserRepository) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
