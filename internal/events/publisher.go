// Package events publishes recorded assessments to a RabbitMQ queue so other
// systems (reporting, reminders) can follow a child's growth without polling
// the API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Krimson/growth-monitory/internal/journal"
)

const (
	EventAssessmentRecorded = "assessment.recorded"

	mailboxSize    = 128
	publishTimeout = 5 * time.Second
)

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AssessmentEvent is the message body.
type AssessmentEvent struct {
	Type       string              `json:"type"`
	Assessment *journal.Assessment `json:"assessment"`
}

// Publisher is a single goroutine that owns the AMQP channel. Callers hand it
// messages through a buffered mailbox and never wait on the broker.
type Publisher struct {
	queue   string
	channel Channel
	conn    io.Closer
	mailbox chan amqp.Publishing
	done    chan struct{}
	logger  *zap.Logger
}

// Dial connects to the broker and declares a durable queue.
func Dial(url, queue string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return NewPublisher(ch, conn, queue, logger), nil
}

// NewPublisher wraps an open channel. conn may be nil.
func NewPublisher(ch Channel, conn io.Closer, queue string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		queue:   queue,
		channel: ch,
		conn:    conn,
		mailbox: make(chan amqp.Publishing, mailboxSize),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run publishes queued messages until ctx is cancelled. Messages still in the
// mailbox at that point are dropped.
func (p *Publisher) Run(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			if n := len(p.mailbox); n > 0 {
				p.logger.Warn("publisher stopped with pending events", zap.Int("dropped", n))
			}
			return
		case msg := <-p.mailbox:
			p.publish(ctx, msg)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, msg amqp.Publishing) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(ctx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("queue", p.queue),
			zap.String("message_id", msg.MessageId),
			zap.Error(err))
		return
	}
	p.logger.Debug("event published", zap.String("queue", p.queue), zap.String("message_id", msg.MessageId))
}

// NotifyAssessment implements journal.Notifier.
func (p *Publisher) NotifyAssessment(a *journal.Assessment) {
	body, err := json.Marshal(AssessmentEvent{Type: EventAssessmentRecorded, Assessment: a})
	if err != nil {
		p.logger.Error("failed to marshal assessment event", zap.Error(err))
		return
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    a.ID,
		Timestamp:    a.CreatedAt,
		Type:         EventAssessmentRecorded,
		Body:         body,
	}

	select {
	case p.mailbox <- msg:
	case <-p.done:
	default:
		p.logger.Warn("event mailbox full, dropping event", zap.String("assessment_id", a.ID))
	}
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
