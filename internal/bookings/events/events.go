// Package events emits booking lifecycle notifications. Publishing is best
// effort: a failed publish is logged and never changes a booking outcome.
package events

import (
	"context"
	"strconv"
	"time"

	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/middleware"
)

const (
	TypeBookingCommitted  = "booking.committed"
	TypeBookingRolledBack = "booking.rolled_back"
	TypeBookingFailed     = "booking.failed"
	TypeBookingRemoved    = "booking.removed"

	SchemaVersion = "1"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	TransactionID int64     `json:"transaction_id,omitempty"`
	UserID        int64     `json:"user_id,omitempty"`
	RoomIDs       []int64   `json:"room_ids"`
	BookingIDs    []int64   `json:"booking_ids,omitempty"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Key groups every event of one transaction onto the same partition.
func (e BookingEvent) Key() string {
	if e.TransactionID != 0 {
		return "txn-" + strconv.FormatInt(e.TransactionID, 10)
	}
	if len(e.BookingIDs) > 0 {
		return "booking-" + strconv.FormatInt(e.BookingIDs[0], 10)
	}
	return "user-" + strconv.FormatInt(e.UserID, 10)
}

type Publisher interface {
	Publish(ctx context.Context, ev BookingEvent)
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, BookingEvent) {}

// MessageProducer is the part of kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessageProducer
	source   string
	timeout  time.Duration
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessageProducer, source string, timeout time.Duration, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		timeout:  timeout,
		log:      log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, ev BookingEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	msg := kafka.NewMessage().
		WithKey(ev.Key()).
		WithValue(ev).
		WithEventType(ev.Type).
		WithSource(p.source).
		WithSchemaVersion(SchemaVersion).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", ev.Type,
			"transaction_id", ev.TransactionID,
			"error", err,
		)
		return
	}
	p.log.Debug("Booking event published", "event_type", ev.Type, "key", msg.Key)
}
