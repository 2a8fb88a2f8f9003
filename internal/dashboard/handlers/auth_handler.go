package handlers

import (
	"errors"
	"log"
	"net/http"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/session"
	"agriscan/internal/models"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions *session.Manager
	api      *client.Client
}

func NewAuthHandler(sessions *session.Manager, api *client.Client) *AuthHandler {
	return &AuthHandler{sessions: sessions, api: api}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, guard *Guard) {
	router.GET("/login", h.LoginPage)
	router.POST("/login", h.Login)
	router.GET("/signup", h.SignupPage)
	router.POST("/signup", h.Signup)
	router.POST("/logout", h.Logout)
	router.GET("/unauthorized", h.Unauthorized)

	profile := router.Group("/dashboard/profile", guard.RequireSession())
	profile.GET("", h.Profile)
	profile.PUT("", h.UpdateProfile)
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.sessions.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"authenticated": false,
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}
	if req.Phone == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"MISSING_CREDENTIALS", "Phone and password are required"))
		return
	}

	user, err := h.sessions.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusUnauthorized, utils.CreateErrorResponse(apiErr.Code, apiErr.Message))
			return
		}
		log.Printf("Login failed: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Login request failed"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"user":     user,
		"redirect": "/dashboard",
	}))
}

type signupRequest struct {
	Phone           string   `json:"phone"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	FullName        string   `json:"full_name"`
	Role            string   `json:"role"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	GpsLat          *float64 `json:"gpsLat"`
	GpsLng          *float64 `json:"gpsLng"`
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	if h.sessions.IsAuthenticated() {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"authenticated": false,
	}))
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}
	if req.FullName == "" || req.Phone == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"MISSING_FIELDS", "Full name, phone and password are required"))
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"PASSWORD_MISMATCH", "Passwords do not match"))
		return
	}
	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.RoleFarmer
	}
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_ROLE", "Role must be farmer or inspector"))
		return
	}

	user, err := h.api.Register(c.Request.Context(), &models.RegisterRequest{
		Phone:    req.Phone,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
		City:     req.City,
		State:    req.State,
		GpsLat:   req.GpsLat,
		GpsLng:   req.GpsLng,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			status := apiErr.Status
			if status < 400 {
				status = http.StatusBadGateway
			}
			c.JSON(status, utils.CreateErrorResponse(apiErr.Code, apiErr.Message))
			return
		}
		log.Printf("Signup failed: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Signup request failed"))
		return
	}

	// Registration does not log the user in; they land on the login page.
	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(gin.H{
		"user":     user,
		"redirect": "/login?signupSuccess=true",
	}))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(gin.H{
		"redirect": "/login",
	}))
}

func (h *AuthHandler) Unauthorized(c *gin.Context) {
	c.JSON(http.StatusForbidden, utils.CreateErrorResponse(
		"FORBIDDEN", "You do not have access to this page"))
}

func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(h.sessions.CurrentUser()))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse(
			"INVALID_REQUEST_FORMAT", "Invalid request format"))
		return
	}

	user, err := h.sessions.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(apiErr.Code, apiErr.Message))
			return
		}
		log.Printf("Profile update failed: %v", err)
		c.JSON(http.StatusBadGateway, utils.CreateErrorResponse(
			"UPSTREAM_ERROR", "Profile update failed"))
		return
	}
	c.JSON(http.StatusOK, utils.CreateSuccessResponse(user))
}
