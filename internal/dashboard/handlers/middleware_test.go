package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/dashboard/session"
	"agriscan/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newSessionManager(t *testing.T, apiURL string) (*session.Manager, *client.Client) {
	t.Helper()
	tokens := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	api := client.New(apiURL, tokens)
	return session.NewManager(api, tokens), api
}

// fakeAuthBackend serves login and register for the given role.
func fakeAuthBackend(t *testing.T, role models.UserRole) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"userId":       "u-1",
					"phone":        "+1234567890",
					"full_name":    "Test User",
					"role":         string(role),
					"access_token": "abc",
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func loginAs(t *testing.T, role models.UserRole) *session.Manager {
	t.Helper()
	server := fakeAuthBackend(t, role)
	manager, _ := newSessionManager(t, server.URL)
	_, err := manager.Login(context.Background(), "+1234567890", "secret")
	assert.NoError(t, err)
	return manager
}

func TestRequireSession_RedirectsAnonymousToLogin(t *testing.T) {
	manager, _ := newSessionManager(t, "http://127.0.0.1:0")
	guard := NewGuard(manager)

	router := gin.New()
	router.GET("/dashboard/reports", guard.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/reports", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireSession_PassesAuthenticatedUser(t *testing.T) {
	guard := NewGuard(loginAs(t, models.RoleFarmer))

	router := gin.New()
	router.GET("/dashboard/reports", guard.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/reports", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RedirectsFarmerToUnauthorized(t *testing.T) {
	guard := NewGuard(loginAs(t, models.RoleFarmer))

	router := gin.New()
	router.PUT("/dashboard/reports/:id/status",
		guard.RequireSession(), guard.RequireRole(models.RoleInspector),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/dashboard/reports/r-1/status", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/unauthorized", w.Header().Get("Location"))
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	guard := NewGuard(loginAs(t, models.RoleInspector))

	router := gin.New()
	router.PUT("/dashboard/reports/:id/status",
		guard.RequireSession(), guard.RequireRole(models.RoleInspector),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/dashboard/reports/r-1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RedirectsAnonymousToLogin(t *testing.T) {
	manager, _ := newSessionManager(t, "http://127.0.0.1:0")
	guard := NewGuard(manager)

	router := gin.New()
	router.GET("/dashboard/alerts", guard.RequireRole(models.RoleInspector), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/alerts", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
