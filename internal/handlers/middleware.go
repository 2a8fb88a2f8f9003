package handlers

import (
	"log"
	"net/http"
	"strings"

	"agriscan/internal/models"
	"agriscan/internal/services"
	"agriscan/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type Middleware struct {
	jwtService     *services.JWTService
	sessionService *services.SessionService
}

func NewMiddleware(jwtService *services.JWTService, sessionService *services.SessionService) *Middleware {
	return &Middleware{
		jwtService:     jwtService,
		sessionService: sessionService,
	}
}

// RequireAuth validates the bearer token and checks the session is still
// live before letting the request through.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse(
				"MISSING_TOKEN", "authorization header required"))
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse(
				"INVALID_TOKEN", "token validation failed"))
			return
		}

		session, err := m.sessionService.GetSessionByToken(c.Request.Context(), tokenString)
		if err != nil || !session.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse(
				"SESSION_INVALID", "no session found or session invalid"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates an endpoint to a single role. Must run after RequireAuth.
func (m *Middleware) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.CreateErrorResponse(
				"FORBIDDEN", "insufficient role"))
			return
		}
		c.Next()
	}
}
