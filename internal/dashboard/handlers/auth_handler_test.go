package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"agriscan/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSignupRouter(t *testing.T, backend *httptest.Server) *gin.Engine {
	t.Helper()
	manager, api := newSessionManager(t, backend.URL)
	router := gin.New()
	NewAuthHandler(manager, api).RegisterRoutes(router, NewGuard(manager))
	return router
}

func postSignup(router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestSignup_RegistersThroughBackend(t *testing.T) {
	var registered models.RegisterRequest
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&registered))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"userId":    "u-9",
				"phone":     registered.Phone,
				"full_name": registered.FullName,
				"role":      string(registered.Role),
			},
		})
	}))
	defer backend.Close()

	w := postSignup(newSignupRouter(t, backend), map[string]any{
		"phone":           "+1234567890",
		"password":        "secret",
		"confirmPassword": "secret",
		"full_name":       "New Farmer",
		"city":            "Blida",
		"state":           "Blida",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "+1234567890", registered.Phone)
	assert.Equal(t, "New Farmer", registered.FullName)
	assert.Equal(t, models.RoleFarmer, registered.Role, "role defaults to farmer")

	var resp struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/login?signupSuccess=true", resp.Data.Redirect)
}

func TestSignup_PasswordMismatchNeverReachesBackend(t *testing.T) {
	var calls int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer backend.Close()

	w := postSignup(newSignupRouter(t, backend), map[string]any{
		"phone":           "+1234567890",
		"password":        "secret",
		"confirmPassword": "different",
		"full_name":       "New Farmer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PASSWORD_MISMATCH", errorCode(t, w))
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestSignup_MissingFieldsRejected(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	}))
	defer backend.Close()
	router := newSignupRouter(t, backend)

	for _, body := range []map[string]any{
		{"password": "secret", "confirmPassword": "secret", "full_name": "A"},
		{"phone": "+1234567890", "confirmPassword": "", "full_name": "A"},
		{"phone": "+1234567890", "password": "secret", "confirmPassword": "secret"},
	} {
		w := postSignup(router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_FIELDS", errorCode(t, w))
	}
}

func TestSignup_InvalidRoleRejected(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called")
	}))
	defer backend.Close()

	w := postSignup(newSignupRouter(t, backend), map[string]any{
		"phone":           "+1234567890",
		"password":        "secret",
		"confirmPassword": "secret",
		"full_name":       "New Farmer",
		"role":            "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ROLE", errorCode(t, w))
}

func TestSignup_BackendErrorPassedThrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "PHONE_EXISTS", "message": "phone already registered"},
		})
	}))
	defer backend.Close()

	w := postSignup(newSignupRouter(t, backend), map[string]any{
		"phone":           "+1234567890",
		"password":        "secret",
		"confirmPassword": "secret",
		"full_name":       "New Farmer",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "PHONE_EXISTS", errorCode(t, w))
}

func TestSignupPage_RedirectsAuthenticatedToDashboard(t *testing.T) {
	manager := loginAs(t, models.RoleFarmer)
	router := gin.New()
	NewAuthHandler(manager, nil).RegisterRoutes(router, NewGuard(manager))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signup", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
