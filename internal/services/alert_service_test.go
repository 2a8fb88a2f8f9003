package services

import (
	"testing"
	"time"

	"agriscan/internal/models"

	"github.com/stretchr/testify/assert"
)

func validCreateAlertRequest() *models.CreateAlertRequest {
	return &models.CreateAlertRequest{
		Title:       "Drought warning",
		Description: "Reservoir levels dropping",
		Severity:    "warning",
		TargetState: "Alger",
		ExpiresAt:   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
}

func TestValidateCreateAlert_Valid(t *testing.T) {
	alert, err := ValidateCreateAlert(validCreateAlertRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.Equal(t, models.AlertSeverityWarning, alert.Severity)
	assert.True(t, alert.IsActive)
	assert.True(t, alert.ExpiresAt.After(time.Now()))
}

func TestValidateCreateAlert_SeverityAliases(t *testing.T) {
	cases := []struct {
		in   string
		want models.AlertSeverity
	}{
		{"high", models.AlertSeverityDanger},
		{"danger", models.AlertSeverityDanger},
		{"medium", models.AlertSeverityWarning},
		{"warning", models.AlertSeverityWarning},
		{"low", models.AlertSeverityInfo},
		{"info", models.AlertSeverityInfo},
	}
	for _, tc := range cases {
		req := validCreateAlertRequest()
		req.Severity = tc.in
		alert, err := ValidateCreateAlert(req)
		assert.NoError(t, err, "severity %q", tc.in)
		assert.Equal(t, tc.want, alert.Severity)
	}
}

func TestValidateCreateAlert_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CreateAlertRequest)
	}{
		{"missing title", func(r *models.CreateAlertRequest) { r.Title = "" }},
		{"missing description", func(r *models.CreateAlertRequest) { r.Description = "" }},
		{"missing target state", func(r *models.CreateAlertRequest) { r.TargetState = "" }},
		{"unknown severity", func(r *models.CreateAlertRequest) { r.Severity = "catastrophic" }},
		{"malformed expiry", func(r *models.CreateAlertRequest) { r.ExpiresAt = "tomorrow" }},
		{"expiry in the past", func(r *models.CreateAlertRequest) {
			r.ExpiresAt = time.Now().Add(-time.Hour).Format(time.RFC3339)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateAlertRequest()
			tc.mutate(req)
			_, err := ValidateCreateAlert(req)
			assert.Error(t, err)
		})
	}
}
