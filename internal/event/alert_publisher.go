package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"agriscan/internal/models"
	"agriscan/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AlertPublisher pushes created alerts onto the notification queue.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *models.Alert) error
}

type alertPublisher struct {
	broker            *Broker
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewAlertPublisher(broker *Broker) AlertPublisher {
	return &alertPublisher{
		broker:          broker,
		lastPublishTime: time.Now(),
	}
}

func (p *alertPublisher) PublishAlert(ctx context.Context, alert *models.Alert) error {
	message := AlertEventMessage{
		ID:          utils.GenerateRandomStringWithLength(6),
		Type:        TypePush,
		Priority:    priorityForSeverity(alert.Severity),
		AlertID:     alert.ID,
		Title:       alert.Title,
		Description: alert.Description,
		Severity:    string(alert.Severity),
		TargetState: alert.TargetState,
		TargetCity:  alert.TargetCity,
		ExpiresAt:   alert.ExpiresAt,
		CreatedAt:   time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	err = p.broker.ch.PublishWithContext(
		ctx,
		"",         // exchange
		AlertQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish alert event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Alert event published",
		"queue", AlertQueue,
		"alert_id", alert.ID,
		"severity", alert.Severity,
	)

	return nil
}

func priorityForSeverity(severity models.AlertSeverity) NotificationPriority {
	switch severity {
	case models.AlertSeverityDanger:
		return PriorityHigh
	case models.AlertSeverityWarning:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
