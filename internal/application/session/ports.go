package session

import (
	"context"
	"time"

	"github.com/baechuer/courtsplit/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// EventStore is the persistence collaborator. Calls are independent: a failure between
// SaveNewEvent and SaveCourts leaves an event without courts, which readers treat as incomplete.
type EventStore interface {
	LoadEvents(ctx context.Context) ([]*domain.Event, error)
	LoadEvent(ctx context.Context, id string) (*domain.Event, error)

	SaveNewEvent(ctx context.Context, e *domain.Event) (string, error)
	SaveCourts(ctx context.Context, eventID string, courts []domain.Court) error
	SavePlayers(ctx context.Context, eventID string, players []*domain.Player) error
	UpdateEventFields(ctx context.Context, eventID string, f EventFields) error
}

// EventFields is a partial update of the event row; nil fields are left alone.
type EventFields struct {
	Name             *string
	Date             *time.Time
	Venue            *string
	MaxPlayers       *int
	ShuttlecockPrice *float64
	CourtHourlyRate  *float64
	ShuttlecocksUsed *int
	Status           *domain.EventStatus
	UpdatedAt        time.Time
}

type Publisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
