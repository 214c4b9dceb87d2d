package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/metrics"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

type RegisterCmd struct {
	Actor   Actor
	EventID string

	Name      string
	Email     string
	StartTime *timeslot.Clock
	EndTime   timeslot.Clock
}

// Register adds a player; the waitlist manager decides between registered and waitlist.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (*domain.Event, *domain.Player, error) {
	unlock := s.locks.Lock(cmd.EventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, cmd.EventID)
	if err != nil {
		return nil, nil, err
	}
	if ev.Status != domain.StatusUpcoming {
		return nil, nil, domain.ErrInvalidState("registration is closed")
	}

	d := domain.PlayerDraft{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(cmd.Actor.UserID),
		Name:      cmd.Name,
		Email:     cmd.Email,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
	}
	if d.UserID == "" {
		d.CancelToken = uuid.NewString()
	}
	play, _ := ev.PlayWindow()
	if err := d.Validate(play); err != nil {
		return nil, nil, err
	}
	if d.UserID != "" {
		for _, p := range ev.Players {
			if p.UserID == d.UserID && p.Status != domain.PlayerCancelled {
				return nil, nil, domain.ErrInvalidState("already registered for this event")
			}
		}
	}

	now := s.clock.Now().UTC()
	p := ev.Register(d, now)
	if err := s.checkCapacity(ctx, ev); err != nil {
		return nil, nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SavePlayers(ctx, ev.ID, ev.Players); err != nil {
		return ev, p, domain.ErrPersistence("save players", err)
	}

	metrics.RecordRegistration(string(p.Status))
	s.audit.PlayerRegistered(ctx, ev.ID, p.ID, p.UserID, string(p.Status))
	publish(ctx, s.pub, now, RKPlayerRegistered, playerPayload(ev.ID, p))
	return ev, p, nil
}
