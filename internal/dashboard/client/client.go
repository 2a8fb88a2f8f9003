package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agriscan/internal/models"
)

// TokenStore holds the single persisted access token. Absence of a token
// means the operator is unauthenticated.
type TokenStore interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// APIError is the normalized error envelope returned by the remote service.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Status  int            `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client is the single point of outbound communication with the AgriScan
// REST API. Each call is one HTTP round trip, no retry, no caching.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Re-authentication is forced on the next guarded navigation.
		if err := c.tokens.Clear(); err != nil {
			log.Printf("failed to clear persisted token: %v", err)
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Code: "HTTP_ERROR", Message: resp.Status, Status: resp.StatusCode}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != nil {
			env.Error.Status = resp.StatusCode
			return env.Error
		}
		return &APIError{Code: "HTTP_ERROR", Message: resp.Status, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Login authenticates with phone and password and persists the returned
// access token for subsequent requests.
func (c *Client) Login(ctx context.Context, phone, password string) (*models.LoginResponseData, error) {
	var data models.LoginResponseData
	err := c.do(ctx, http.MethodPost, "/auth/login/", nil, models.LoginRequest{
		Phone:    phone,
		Password: password,
	}, &data)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Save(data.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist access token: %w", err)
	}
	return &data, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend to revoke the session. The token is cleared
// locally by the session manager regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, nil)
}

type ReportParams struct {
	Page          int
	PageSize      int
	State         string
	Status        string
	DetectionType string
}

func (p ReportParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.DetectionType != "" {
		q.Set("detection_type", p.DetectionType)
	}
	return q
}

func (c *Client) GetReports(ctx context.Context, params ReportParams) ([]models.Report, int, error) {
	var data struct {
		Reports []models.Report `json:"reports"`
		Count   int             `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/reports/", params.query(), nil, &data); err != nil {
		return nil, 0, err
	}
	return data.Reports, data.Count, nil
}

func (c *Client) GetReportDetails(ctx context.Context, reportID string) (*models.Report, error) {
	var report models.Report
	if err := c.do(ctx, http.MethodGet, "/reports/"+reportID, nil, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) UpdateReportStatus(ctx context.Context, reportID string, req *models.UpdateReportStatusRequest) (*models.Report, error) {
	var report models.Report
	if err := c.do(ctx, http.MethodPut, "/reports/"+reportID+"/status", nil, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

type AlertParams struct {
	Page     int
	Limit    int
	Severity string
	State    string
}

func (p AlertParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Severity != "" {
		q.Set("severity", p.Severity)
	}
	if p.State != "" {
		q.Set("state", p.State)
	}
	return q
}

// alertPayload tolerates the snake_case spellings older deployments of the
// alerts endpoint used for the same fields.
type alertPayload struct {
	models.Alert
	TargetStateAlt string     `json:"target_state"`
	TargetCityAlt  *string    `json:"target_city"`
	CreatedAtAlt   *time.Time `json:"created_at"`
	ExpiresAtAlt   *time.Time `json:"expires_at"`
}

func (p *alertPayload) toAlert() models.Alert {
	alert := p.Alert
	if alert.TargetState == "" {
		alert.TargetState = p.TargetStateAlt
	}
	if alert.TargetCity == nil {
		alert.TargetCity = p.TargetCityAlt
	}
	if alert.CreatedAt.IsZero() && p.CreatedAtAlt != nil {
		alert.CreatedAt = *p.CreatedAtAlt
	}
	if alert.ExpiresAt.IsZero() && p.ExpiresAtAlt != nil {
		alert.ExpiresAt = *p.ExpiresAtAlt
	}
	return alert
}

func (c *Client) GetAlerts(ctx context.Context, params AlertParams) ([]models.Alert, int, error) {
	var data struct {
		Results []alertPayload `json:"results"`
		Count   int            `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/alerts", params.query(), nil, &data); err != nil {
		return nil, 0, err
	}
	alerts := make([]models.Alert, 0, len(data.Results))
	for i := range data.Results {
		alerts = append(alerts, data.Results[i].toAlert())
	}
	return alerts, data.Count, nil
}

func (c *Client) CreateAlert(ctx context.Context, req *models.CreateAlertRequest) (*models.Alert, error) {
	var payload alertPayload
	if err := c.do(ctx, http.MethodPost, "/alerts", nil, req, &payload); err != nil {
		return nil, err
	}
	alert := payload.toAlert()
	return &alert, nil
}

func (c *Client) UpdateAlert(ctx context.Context, alertID string, req *models.UpdateAlertRequest) (*models.Alert, error) {
	var payload alertPayload
	if err := c.do(ctx, http.MethodPut, "/alerts/"+alertID, nil, req, &payload); err != nil {
		return nil, err
	}
	alert := payload.toAlert()
	return &alert, nil
}

func (c *Client) DeleteAlert(ctx context.Context, alertID string) error {
	return c.do(ctx, http.MethodDelete, "/alerts/"+alertID, nil, nil, nil)
}

func (c *Client) GetDiseases(ctx context.Context, plantTypeID string) ([]models.Disease, int, error) {
	q := url.Values{}
	if plantTypeID != "" {
		q.Set("plantTypeId", plantTypeID)
	}
	var data struct {
		Results []models.Disease `json:"results"`
		Count   int              `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/diseases", q, nil, &data); err != nil {
		return nil, 0, err
	}
	return data.Results, data.Count, nil
}

func (c *Client) GetPlants(ctx context.Context) ([]models.Plant, error) {
	var data struct {
		Results []models.Plant `json:"results"`
		Count   int            `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/plants", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

func (c *Client) GetPlantDetails(ctx context.Context, plantID string) (*models.Plant, error) {
	var plant models.Plant
	if err := c.do(ctx, http.MethodGet, "/plants/"+plantID, nil, nil, &plant); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (c *Client) GetOverviewStats(ctx context.Context) (*models.OverviewStats, error) {
	var stats models.OverviewStats
	if err := c.do(ctx, http.MethodGet, "/stats/overview", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) GetGeographicalStats(ctx context.Context) (*models.GeographicalStats, error) {
	var stats models.GeographicalStats
	if err := c.do(ctx, http.MethodGet, "/stats/geographical", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
