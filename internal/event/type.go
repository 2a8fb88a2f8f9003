package event

import "time"

const AlertQueue = "alert_events"

type NotificationType string

const (
	TypeSMS  NotificationType = "sms"
	TypePush NotificationType = "push"
)

type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityMedium NotificationPriority = "medium"
	PriorityLow    NotificationPriority = "low"
)

// AlertEventMessage is the payload pushed onto the alert queue for the
// notification fanout. Recipients are resolved downstream from the target
// state/city.
type AlertEventMessage struct {
	ID          string               `json:"id"`
	Type        NotificationType     `json:"type"`
	Priority    NotificationPriority `json:"priority"`
	AlertID     string               `json:"alert_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Severity    string               `json:"severity"`
	TargetState string               `json:"target_state"`
	TargetCity  *string              `json:"target_city,omitempty"`
	ExpiresAt   time.Time            `json:"expires_at"`
	CreatedAt   time.Time            `json:"created_at"`
}
