package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	pkgctx "github.com/baechuer/courtsplit/internal/pkg/context"
)

const (
	EventVersion  = 1
	EventProducer = "courtsplit"
)

// Routing keys on the topic exchange.
const (
	RKSessionCreated   = "session.created"
	RKSessionUpdated   = "session.updated"
	RKSessionCancelled = "session.cancelled"
	RKPlayerRegistered = "player.registered"
	RKPlayerCancelled  = "player.cancelled"
	RKPlayerPromoted   = "player.promoted"
	RKPlayerAbsent     = "player.absent"
	RKUsageRecorded    = "usage.recorded"
	RKBillFinalized    = "bill.finalized"
)

// DomainEventEnvelope is the stable contract for everything published by this service.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// ID lets transports reuse the envelope id as the broker message id.
func (e DomainEventEnvelope[T]) ID() string { return e.MessageID }

type SessionPayload struct {
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	Venue      string    `json:"venue"`
	MaxPlayers int       `json:"max_players"`
	Courts     int       `json:"courts"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PlayerPayload struct {
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	UserID   string `json:"user_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status"`
	SameDay  bool   `json:"same_day,omitempty"`
}

type UsagePayload struct {
	EventID          string  `json:"event_id"`
	CourtHours       float64 `json:"court_hours"`
	ShuttlecocksUsed int     `json:"shuttlecocks_used"`
}

type BillPayload struct {
	EventID    string  `json:"event_id"`
	Players    int     `json:"players"`
	GrandTotal float64 `json:"grand_total"`
	FinePool   float64 `json:"fine_pool"`
}

// publish wraps payload in an envelope and sends it. Failures are logged and swallowed: the
// state change has already been persisted.
func publish[T any](ctx context.Context, pub Publisher, now time.Time, routingKey string, payload T) {
	if pub == nil {
		return
	}
	env := DomainEventEnvelope[T]{
		Version:    EventVersion,
		Producer:   EventProducer,
		MessageID:  uuid.NewString(),
		TraceID:    pkgctx.GetRequestID(ctx),
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
	if err := pub.PublishEvent(ctx, routingKey, env); err != nil {
		zlog.Warn().Err(err).Str("routing_key", routingKey).Str("message_id", env.MessageID).Msg("publish domain event failed")
	}
}
