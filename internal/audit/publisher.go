// Package audit публикует события безопасности (входы, выдачи и отзывы
// доступов) в RabbitMQ для внешней обработки. Публикация — строго
// best-effort: сбой брокера логируется и никогда не валит запрос.
package audit

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/edushield/edushield/internal/lib/sl"
)

// Типы событий аудита.
const (
	EventLogin        = "login"
	EventGrantIssued  = "grant_issued"
	EventGrantRevoked = "grant_revoked"
	EventAccessDenied = "access_denied"
	EventTierChanged  = "tier_changed"
)

const (
	exchangeName = "audit"
	routingKey   = "security"
)

// Event — запись журнала аудита.
type Event struct {
	Type     string    `json:"type"`
	UserUID  string    `json:"user_uid,omitempty"`
	CourseID int       `json:"course_id,omitempty"`
	ActorUID string    `json:"actor_uid,omitempty"` // Кто выполнил действие (для грантов — администратор)
	At       time.Time `json:"at"`
}

// Publisher отправляет события аудита в выделенный exchange.
// Нулевой указатель — валидный отключенный издатель.
type Publisher struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// Connect устанавливает соединение с RabbitMQ с повторами.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "audit.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// New открывает канал, объявляет exchange аудита и возвращает Publisher.
func New(conn *amqp.Connection, log *slog.Logger) (*Publisher, error) {
	const op = "audit.New"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchangeName,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{ch: ch, log: log}, nil
}

// Publish отправляет событие аудита. Ошибки публикации логируются
// и наружу не возвращаются.
func (p *Publisher) Publish(event Event) {
	if p == nil || p.ch == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal audit event", sl.Err(err))
		return
	}

	err = p.ch.Publish(
		exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		p.log.Error("failed to publish audit event", sl.Err(err))
	}
}
