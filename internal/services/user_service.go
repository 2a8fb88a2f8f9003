package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"agriscan/internal/models"
	"agriscan/internal/repository"

	"github.com/google/uuid"
)

type IUserService interface {
	RegisterNewUser(req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, phone, password string, deviceInfo, ipAddress *string) (*models.User, string, error)
	Logout(ctx context.Context, userID string) error
	GetUserByID(userID string) (*models.User, error)
	UpdateProfile(userID string, req *models.UpdateProfileRequest) (*models.User, error)
}

type UserService struct {
	userRepo       repository.IUserRepository
	sessionService *SessionService
	jwtService     *JWTService
}

func NewUserService(userRepo repository.IUserRepository, sessionService *SessionService, jwtService *JWTService) IUserService {
	return &UserService{
		userRepo:       userRepo,
		sessionService: sessionService,
		jwtService:     jwtService,
	}
}

func (s *UserService) RegisterNewUser(req *models.RegisterRequest) (*models.User, error) {
	hash, err := s.userRepo.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleFarmer
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Phone:        req.Phone,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if req.City != "" {
		user.City = &req.City
	}
	if req.State != "" {
		user.State = &req.State
	}
	user.GpsLat = req.GpsLat
	user.GpsLng = req.GpsLng

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, phone, password string, deviceInfo, ipAddress *string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByPhone(phone)
	if err != nil {
		log.Printf("user searching failed: %s", err)
		return nil, "", fmt.Errorf("phone number or password incorrect")
	}

	if !s.userRepo.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", fmt.Errorf("invalid password")
	}

	token, err := s.jwtService.GenerateNewToken(user.UserID, user.Phone, user.Role)
	if err != nil {
		log.Println("error generating token: ", err)
		return nil, "", fmt.Errorf("error generating token: %s", err)
	}

	if _, err := s.sessionService.CreateSession(ctx, user.UserID, token, deviceInfo, ipAddress); err != nil {
		log.Println("error creating new session: ", err)
		return nil, "", fmt.Errorf("error creating new session: %s", err)
	}

	if err := s.userRepo.TouchLastActive(user.UserID); err != nil {
		log.Printf("failed to update last_active for user %s: %v", user.UserID, err)
	}

	return user, token, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.sessionService.RevokeUserSessions(ctx, userID)
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

func (s *UserService) UpdateProfile(userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(userID, req); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(userID)
}
