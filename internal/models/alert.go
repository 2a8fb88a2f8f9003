package models

import "time"

type AlertSeverity string

const (
	AlertSeverityDanger  AlertSeverity = "danger"
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityInfo    AlertSeverity = "info"
)

// NormalizeAlertSeverity maps the high/medium/low spellings some dashboard
// forms submit onto the stored severity values.
func NormalizeAlertSeverity(s string) (AlertSeverity, bool) {
	switch s {
	case "danger", "high":
		return AlertSeverityDanger, true
	case "warning", "medium":
		return AlertSeverityWarning, true
	case "info", "low":
		return AlertSeverityInfo, true
	}
	return "", false
}

type Alert struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description string        `json:"description" db:"description"`
	Severity    AlertSeverity `json:"severity" db:"severity"`
	TargetState string        `json:"targetState" db:"target_state"`
	TargetCity  *string       `json:"targetCity,omitempty" db:"target_city"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	ExpiresAt   time.Time     `json:"expiresAt" db:"expires_at"`
	IsActive    bool          `json:"-" db:"is_active"`
}
