package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
)

type MarkAbsentCmd struct {
	Actor    Actor
	EventID  string
	PlayerID string
}

// MarkAbsent records a no-show. The player stops being billed for court time and adds one
// incident to the fine pool.
func (s *Service) MarkAbsent(ctx context.Context, cmd MarkAbsentCmd) (*domain.Event, *domain.Player, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, nil, err
	}
	unlock := s.locks.Lock(cmd.EventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, cmd.EventID)
	if err != nil {
		return nil, nil, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, nil, domain.ErrInvalidState("event is cancelled")
	}
	now := s.clock.Now().UTC()
	p, err := ev.MarkAbsent(cmd.PlayerID, now)
	if err != nil {
		return nil, nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SavePlayers(ctx, ev.ID, ev.Players); err != nil {
		return ev, p, domain.ErrPersistence("save players", err)
	}

	s.audit.MarkedAbsent(ctx, ev.ID, p.ID, cmd.Actor.UserID)
	publish(ctx, s.pub, now, RKPlayerAbsent, playerPayload(ev.ID, p))
	return ev, p, nil
}
