package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
)

type UpdateCmd struct {
	Actor   Actor
	EventID string
	Patch   domain.EventPatch
}

// UpdateEvent applies a partial update. Raising MaxPlayers promotes waitlisted players into the
// new seats.
func (s *Service) UpdateEvent(ctx context.Context, cmd UpdateCmd) (*domain.Event, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(cmd.EventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, cmd.EventID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	promoted, err := ev.ApplyUpdate(cmd.Patch, now)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx, ev); err != nil {
		return nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.UpdateEventFields(ctx, ev.ID, fieldsFromPatch(ev, cmd.Patch)); err != nil {
		return ev, domain.ErrPersistence("update event", err)
	}
	if len(promoted) > 0 {
		if err := s.store.SavePlayers(ctx, ev.ID, ev.Players); err != nil {
			return ev, domain.ErrPersistence("save players", err)
		}
	}

	s.audit.EventUpdated(ctx, ev.ID, cmd.Actor.UserID)
	publish(ctx, s.pub, now, RKSessionUpdated, sessionPayload(ev, cmd.Actor.UserID))
	s.announcePromotions(ctx, ev, promoted)
	return ev, nil
}

// fieldsFromPatch copies the post-update values of every patched field.
func fieldsFromPatch(ev *domain.Event, p domain.EventPatch) EventFields {
	f := EventFields{UpdatedAt: ev.UpdatedAt}
	if p.Name != nil {
		f.Name = &ev.Name
	}
	if p.Date != nil {
		f.Date = &ev.Date
	}
	if p.Venue != nil {
		f.Venue = &ev.Venue
	}
	if p.MaxPlayers != nil {
		f.MaxPlayers = &ev.MaxPlayers
	}
	if p.ShuttlecockPrice != nil {
		f.ShuttlecockPrice = &ev.ShuttlecockPrice
	}
	if p.CourtHourlyRate != nil {
		f.CourtHourlyRate = &ev.CourtHourlyRate
	}
	return f
}
