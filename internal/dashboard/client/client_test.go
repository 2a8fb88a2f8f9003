package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

type memoryTokenStore struct {
	token string
}

func (s *memoryTokenStore) Token() (string, bool) {
	return s.token, s.token != ""
}

func (s *memoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}

func (s *memoryTokenStore) Clear() error {
	s.token = ""
	return nil
}

func TestLogin_PersistsAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login/", r.URL.Path)

		var req models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+1234567890", req.Phone)
		assert.Equal(t, "secret", req.Password)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"userId":       "u-1",
				"phone":        "+1234567890",
				"full_name":    "Test Inspector",
				"role":         "inspector",
				"access_token": "abc",
			},
		})
	}))
	defer server.Close()

	tokens := &memoryTokenStore{}
	c := New(server.URL, tokens)

	data, err := c.Login(context.Background(), "+1234567890", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "abc", data.AccessToken)
	assert.Equal(t, "abc", tokens.token, "login stores the returned token")
	assert.Equal(t, models.RoleInspector, data.Role)
}

func TestUnauthorizedResponseClearsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "INVALID_TOKEN", "message": "token expired"},
		})
	}))
	defer server.Close()

	tokens := &memoryTokenStore{token: "stale"}
	c := New(server.URL, tokens)

	_, err := c.GetProfile(context.Background())

	assert.Error(t, err)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_TOKEN", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Empty(t, tokens.token, "a 401 clears the persisted token")
}

func TestGetReports_ForwardsPaginationAndDecodesCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		assert.Equal(t, "Alger", r.URL.Query().Get("state"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"reports": []map[string]any{
					{"reportId": "r-1", "status": "submitted", "gpsLat": 36.75, "gpsLng": 3.06},
				},
				"count": 25,
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "tok"})

	reports, count, err := c.GetReports(context.Background(), ReportParams{Page: 2, PageSize: 10, State: "Alger"})

	assert.NoError(t, err)
	assert.Equal(t, 25, count, "total count comes from the server")
	assert.Len(t, reports, 1)
	assert.Equal(t, "r-1", reports[0].ReportID)
}

func TestGetAlerts_NormalizesSnakeCaseFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"results": []map[string]any{
					{
						"id":           "a-1",
						"title":        "Drought warning",
						"severity":     "warning",
						"target_state": "Oran",
						"target_city":  "Oran",
						"created_at":   "2026-08-01T00:00:00Z",
						"expires_at":   "2026-09-01T00:00:00Z",
					},
					{
						"id":          "a-2",
						"title":       "Locust swarm",
						"severity":    "danger",
						"targetState": "Alger",
						"createdAt":   "2026-08-02T00:00:00Z",
						"expiresAt":   "2026-09-02T00:00:00Z",
					},
				},
				"count": 2,
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "tok"})

	alerts, count, err := c.GetAlerts(context.Background(), AlertParams{})

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "Oran", alerts[0].TargetState, "snake_case spelling is normalized")
	assert.NotNil(t, alerts[0].TargetCity)
	assert.False(t, alerts[0].CreatedAt.IsZero())
	assert.Equal(t, "Alger", alerts[1].TargetState, "camelCase spelling passes through")
}

func TestErrorEnvelopeBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "REPORT_NOT_FOUND", "message": "report not found"},
		})
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{token: "tok"})

	_, err := c.GetReportDetails(context.Background(), "missing")

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "REPORT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "REPORT_NOT_FOUND: report not found", apiErr.Error())
}

func TestNonEnvelopeErrorFallsBackToHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))
	defer server.Close()

	c := New(server.URL, &memoryTokenStore{})

	_, err := c.GetPlants(context.Background())

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP_ERROR", apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
