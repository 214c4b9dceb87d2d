package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
)

func (s *Service) AddCourt(ctx context.Context, actor Actor, eventID string) (*domain.Event, domain.Court, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, domain.Court{}, err
	}
	unlock := s.locks.Lock(eventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, eventID)
	if err != nil {
		return nil, domain.Court{}, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, domain.Court{}, domain.ErrInvalidState("event is cancelled")
	}
	c, err := ev.AddCourt(s.clock.Now().UTC())
	if err != nil {
		return nil, domain.Court{}, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SaveCourts(ctx, ev.ID, ev.Courts); err != nil {
		return ev, c, domain.ErrPersistence("save courts", err)
	}
	s.audit.CourtsChanged(ctx, ev.ID, actor.UserID, "added", c.Number)
	return ev, c, nil
}

func (s *Service) RemoveCourt(ctx context.Context, actor Actor, eventID string, index int) (*domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(eventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, domain.ErrInvalidState("event is cancelled")
	}
	var number int
	if index >= 0 && index < len(ev.Courts) {
		number = ev.Courts[index].Number
	}
	if err := ev.RemoveCourt(index, s.clock.Now().UTC()); err != nil {
		return nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SaveCourts(ctx, ev.ID, ev.Courts); err != nil {
		return ev, domain.ErrPersistence("save courts", err)
	}
	s.audit.CourtsChanged(ctx, ev.ID, actor.UserID, "removed", number)
	return ev, nil
}
