package event

import (
	"fmt"
	"log/slog"

	"agriscan/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Broker wraps the AMQP connection used for alert fan-out. The alert
// queue is declared once at dial time so publishers can assume it exists.
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(cfg config.RabbitMQConfig) (*Broker, error) {
	connStr := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to alert broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open broker channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		AlertQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare alert queue: %w", err)
	}

	slog.Info("Alert broker ready", "host", cfg.Host, "port", cfg.Port, "queue", AlertQueue)

	return &Broker{conn: conn, ch: ch}, nil
}

func (b *Broker) Close() error {
	if b.ch != nil {
		if err := b.ch.Close(); err != nil {
			slog.Error("failed to close broker channel", "error", err)
		}
	}
	if b.conn != nil {
		if err := b.conn.Close(); err != nil {
			slog.Error("failed to close broker connection", "error", err)
			return err
		}
	}
	return nil
}
