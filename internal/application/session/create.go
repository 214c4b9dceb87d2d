package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

type CourtSpec struct {
	Number        int
	ReservedStart timeslot.Clock
	ReservedEnd   timeslot.Clock
}

type CreateCmd struct {
	Actor Actor

	Name             string
	Date             time.Time
	Venue            string
	MaxPlayers       int
	ShuttlecockPrice float64
	CourtHourlyRate  float64
	Courts           []CourtSpec
}

// CreateEvent saves the event row and then its courts. When the second call fails the
// returned error is persistence_failure and the event is left incomplete in the store.
func (s *Service) CreateEvent(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, err
	}

	courts := make([]domain.Court, len(cmd.Courts))
	for i, c := range cmd.Courts {
		n := c.Number
		if n == 0 {
			n = i + 1
		}
		courts[i] = domain.Court{Number: n, ReservedStart: c.ReservedStart, ReservedEnd: c.ReservedEnd}
	}

	now := s.clock.Now().UTC()
	ev, err := domain.NewEvent(uuid.NewString(), cmd.Actor.UserID, domain.EventDraft{
		Name:             cmd.Name,
		Date:             cmd.Date,
		Venue:            cmd.Venue,
		MaxPlayers:       cmd.MaxPlayers,
		ShuttlecockPrice: cmd.ShuttlecockPrice,
		CourtHourlyRate:  cmd.CourtHourlyRate,
		Courts:           courts,
	}, now)
	if err != nil {
		return nil, err
	}

	id, err := s.store.SaveNewEvent(ctx, ev)
	if err != nil {
		return ev, domain.ErrPersistence("save event", err)
	}
	ev.ID = id
	if err := s.store.SaveCourts(ctx, ev.ID, ev.Courts); err != nil {
		return ev, domain.ErrPersistence("save courts", err)
	}

	s.audit.EventCreated(ctx, ev.ID, cmd.Actor.UserID, len(ev.Courts))
	publish(ctx, s.pub, now, RKSessionCreated, sessionPayload(ev, cmd.Actor.UserID))
	return ev, nil
}
