package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"agriscan/internal/models"
	"agriscan/internal/services"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.IUserService
	middleware  *Middleware
}

func NewAuthHandler(userService services.IUserService, middleware *Middleware) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		middleware:  middleware,
	}
}

func (a *AuthHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login/", a.Login)
	router.POST("/auth/register/", a.Register)

	protected := router.Group("/auth", a.middleware.RequireAuth())
	protected.GET("/profile/", a.GetProfile)
	protected.PUT("/profile", a.UpdateProfile)
	protected.POST("/logout/", a.Logout)
}

// Login handles user authentication
func (a *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid login request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if err := a.validateLoginRequest(&req); err != nil {
		log.Printf("Login validation failed: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}

	deviceInfo := a.getDeviceInfo(c)
	ipAddress := c.ClientIP()

	user, token, err := a.userService.Login(c.Request.Context(), req.Phone, req.Password, &deviceInfo, &ipAddress)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Phone, err)
		statusCode, errorCode := a.mapLoginError(err)
		c.JSON(statusCode, utils.CreateErrorResponse(errorCode, "Login failed"))
		return
	}

	log.Printf("Successful login for user %s", user.UserID)
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(models.LoginResponseData{
		UserID:      user.UserID,
		Phone:       user.Phone,
		FullName:    user.FullName,
		Role:        user.Role,
		AccessToken: token,
	}))
}

// Register handles user registration
func (a *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid register request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	if err := a.validateRegisterRequest(&req); err != nil {
		log.Printf("Register validation failed: %v", err)
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"VALIDATION_ERROR", err.Error()))
		return
	}

	user, err := a.userService.RegisterNewUser(&req)
	if err != nil {
		log.Printf("Registration failed for %s: %v", req.Phone, err)
		statusCode, errorCode := a.mapRegisterError(err)
		c.JSON(statusCode, utils.CreateErrorResponse(errorCode, "Registration failed"))
		return
	}

	log.Printf("Successful registration for user %s", user.UserID)
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(user))
}

func (a *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	user, err := a.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.CreateErrorResponse(
			"USER_NOT_FOUND", "user not found"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}

func (a *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	userID := c.GetString(ContextUserID)
	user, err := a.userService.UpdateProfile(userID, &req)
	if err != nil {
		log.Printf("Profile update failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Profile update failed"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}

func (a *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	if err := a.userService.Logout(c.Request.Context(), userID); err != nil {
		log.Printf("Logout failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse(
			"INTERNAL_ERROR", "Logout failed"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(nil))
}

func (a *AuthHandler) validateLoginRequest(req *models.LoginRequest) error {
	if req.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("invalid phone number format")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func (a *AuthHandler) validateRegisterRequest(req *models.RegisterRequest) error {
	if req.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("invalid phone number format")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if req.FullName == "" {
		return fmt.Errorf("full name is required")
	}
	if req.Role != "" && !req.Role.Valid() {
		return fmt.Errorf("invalid role: %s", req.Role)
	}
	return nil
}

func (a *AuthHandler) getDeviceInfo(c *gin.Context) string {
	userAgent := c.GetHeader("User-Agent")
	if userAgent == "" {
		userAgent = "Unknown Device"
	}
	return userAgent
}

func (a *AuthHandler) mapLoginError(err error) (int, string) {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "invalid password"):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case strings.Contains(errorMsg, "phone number or password incorrect"):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func (a *AuthHandler) mapRegisterError(err error) (int, string) {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "phone"):
		return http.StatusBadRequest, "INVALID_PHONE"
	case strings.Contains(errorMsg, "creating new user"):
		return http.StatusConflict, "USER_ALREADY_EXISTS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
