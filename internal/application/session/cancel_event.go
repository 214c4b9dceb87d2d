package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
)

func (s *Service) CancelEvent(ctx context.Context, actor Actor, eventID string) (*domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(eventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	if err := ev.CancelEvent(now); err != nil {
		return nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	status := ev.Status
	if err := s.store.UpdateEventFields(ctx, ev.ID, EventFields{Status: &status, UpdatedAt: ev.UpdatedAt}); err != nil {
		return ev, domain.ErrPersistence("cancel event", err)
	}

	s.audit.EventCancelled(ctx, ev.ID, actor.UserID)
	publish(ctx, s.pub, now, RKSessionCancelled, sessionPayload(ev, actor.UserID))
	return ev, nil
}
