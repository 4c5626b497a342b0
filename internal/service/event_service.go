package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/model"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const RoutingInterviewFinished = "interview.finished"

type InterviewFinishedEvent struct {
	SessionID   uuid.UUID             `json:"session_id"`
	CandidateID uuid.UUID             `json:"candidate_id"`
	Attempt     int                   `json:"attempt"`
	TotalScore  int                   `json:"total_score"`
	Status      model.CandidateStatus `json:"status"`
	Summary     string                `json:"summary"`
	FinishedAt  time.Time             `json:"finished_at"`
}

type EventPublisher interface {
	PublishInterviewFinished(ctx context.Context, evt InterviewFinishedEvent) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishInterviewFinished(context.Context, InterviewFinishedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
}

func NewRabbitMQPublisher(url, exchange string, log *zap.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	log.Info("connected to rabbitmq", zap.String("exchange", exchange))
	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

func (p *RabbitMQPublisher) PublishInterviewFinished(ctx context.Context, evt InterviewFinishedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		p.exchange,
		RoutingInterviewFinished,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.SessionID.String(),
			Timestamp:    evt.FinishedAt,
			Body:         body,
		},
	)
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.log.Warn("close rabbitmq channel", zap.Error(err))
	}
	return p.conn.Close()
}
