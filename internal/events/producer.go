// Package events publishes domain events to a Redis stream for the
// notification service. Delivery is out of scope here; the core only emits.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"pathlight.app/interviews/internal/model"
)

type EventType string

const (
	EventSlotsProposed    EventType = "slots_proposed"
	EventSlotConfirmed    EventType = "slot_confirmed"
	EventSlotCancelled    EventType = "slot_cancelled"
	EventRequestSubmitted EventType = "request_submitted"
	EventRequestAccepted  EventType = "request_accepted"
	EventRequestDeclined  EventType = "request_declined"
	EventOutcomeRecorded  EventType = "outcome_recorded"
)

type Event struct {
	Type      EventType
	Owner     model.OwnerRef
	ActorID   int64
	ActorRole model.Role
	SlotID    *int64
	RequestID *int64
}

type Producer interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, ev Event) error {
	fields := map[string]any{
		"type":        string(ev.Type),
		"owner_id":    ev.Owner.ID,
		"owner_kind":  string(ev.Owner.Kind),
		"actor_id":    ev.ActorID,
		"actor_role":  string(ev.ActorRole),
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	}
	if ev.SlotID != nil {
		fields["slot_id"] = *ev.SlotID
	}
	if ev.RequestID != nil {
		fields["request_id"] = *ev.RequestID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publishing %s: %w", ev.Type, err)
	}

	p.logger.InfoContext(ctx, "domain event published",
		"type", ev.Type,
		"owner_id", ev.Owner.ID,
		"owner_kind", ev.Owner.Kind,
	)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// Discard is a Producer that drops every event. Used in tests and when the
// stream is not configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
func (Discard) Close() error                         { return nil }
