package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"travel-kernel/internal/pkg/config"
	"travel-kernel/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits booking lifecycle and search notifications. The writer
// runs async, so publishing never waits on the broker; delivery failures are
// logged from the completion callback.
type KafkaPublisher struct {
	writer       messageWriter
	bookingTopic string
	searchTopic  string
	logger       *slog.Logger
}

func NewKafkaWriter(cfg config.KafkaConfig, logger *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("event delivery failed", "messages", len(messages), "error", err.Error())
			}
		},
	}
}

func NewKafkaPublisher(writer messageWriter, cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:       writer,
		bookingTopic: cfg.BookingTopic,
		searchTopic:  cfg.SearchTopic,
		logger:       logger,
	}
}

func (p *KafkaPublisher) PublishBooking(ctx context.Context, events ...shared.BookingEvent) {
	if len(events) == 0 {
		return
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			p.logger.Warn("booking event encode failed", "booking_id", e.BookingID, "error", err.Error())
			continue
		}
		// keyed by listing so one listing's events stay ordered
		msgs = append(msgs, kafka.Message{
			Topic: p.bookingTopic,
			Key:   []byte(e.ListingID),
			Value: data,
			Time:  e.OccurredAt,
		})
	}
	p.write(ctx, msgs)
}

func (p *KafkaPublisher) PublishSearch(ctx context.Context, event shared.SearchEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("search event encode failed", "listing_id", event.ListingID, "error", err.Error())
		return
	}
	p.write(ctx, []kafka.Message{{
		Topic: p.searchTopic,
		Key:   []byte(event.ListingID),
		Value: data,
		Time:  event.OccurredAt,
	}})
}

func (p *KafkaPublisher) write(ctx context.Context, msgs []kafka.Message) {
	if len(msgs) == 0 {
		return
	}
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msgs...); err != nil {
		p.logger.Warn("event publish failed", "topic", msgs[0].Topic, "count", len(msgs), "error", err.Error())
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop is used when the event bus is disabled.
type Noop struct{}

func (Noop) PublishBooking(context.Context, ...shared.BookingEvent) {}
func (Noop) PublishSearch(context.Context, shared.SearchEvent)      {}
