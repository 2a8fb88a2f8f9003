package handlers

import (
	"net/http"

	"agriscan/internal/dashboard/session"
	"agriscan/internal/models"

	"github.com/gin-gonic/gin"
)

// Guard redirects unauthenticated or under-privileged operators away from
// dashboard routes. It is a UX convenience, not a security boundary; the
// backend enforces authorization on every API call.
type Guard struct {
	sessions *session.Manager
}

func NewGuard(sessions *session.Manager) *Guard {
	return &Guard{sessions: sessions}
}

func (g *Guard) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.sessions.IsAuthenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (g *Guard) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := g.sessions.CurrentUser()
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if user.Role != role {
			c.Redirect(http.StatusFound, "/unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
