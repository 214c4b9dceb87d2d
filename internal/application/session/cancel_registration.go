package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/metrics"
)

type CancelCmd struct {
	Actor    Actor
	EventID  string
	PlayerID string

	// CancelToken is required for anonymous entries.
	CancelToken string
}

// CancelRegistration cancels a player entry. Whether it counts as a same-day cancellation is
// decided here from the clock and the event's local date.
//
// A repeated cancel returns already_cancelled together with the unchanged event.
func (s *Service) CancelRegistration(ctx context.Context, cmd CancelCmd) (*domain.Event, domain.CancelResult, error) {
	unlock := s.locks.Lock(cmd.EventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, cmd.EventID)
	if err != nil {
		return nil, domain.CancelResult{}, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, domain.CancelResult{}, domain.ErrInvalidState("event is cancelled")
	}
	p, ok := ev.FindPlayer(cmd.PlayerID)
	if !ok {
		return nil, domain.CancelResult{}, domain.ErrNotFound("player not found")
	}
	if !canManagePlayer(cmd.Actor, p, cmd.CancelToken) {
		return nil, domain.CancelResult{}, domain.ErrForbidden("not allowed")
	}

	now := s.clock.Now().UTC()
	res, err := ev.CancelPlayer(cmd.PlayerID, ev.IsEventDay(now, s.loc), now)
	if err != nil {
		return ev, res, err
	}
	if err := s.checkCapacity(ctx, ev); err != nil {
		return nil, domain.CancelResult{}, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SavePlayers(ctx, ev.ID, ev.Players); err != nil {
		return ev, res, domain.ErrPersistence("save players", err)
	}

	metrics.RecordCancellation(res.Cancelled.CancelledOnEventDay)
	s.audit.PlayerCancelled(ctx, ev.ID, res.Cancelled.ID, cmd.Actor.UserID, res.Cancelled.CancelledOnEventDay)
	publish(ctx, s.pub, now, RKPlayerCancelled, playerPayload(ev.ID, res.Cancelled))
	if res.Promoted != nil {
		s.announcePromotions(ctx, ev, []*domain.Player{res.Promoted})
	}
	return ev, res, nil
}

func (s *Service) announcePromotions(ctx context.Context, ev *domain.Event, promoted []*domain.Player) {
	now := s.clock.Now().UTC()
	for _, p := range promoted {
		metrics.RecordPromotion()
		s.audit.Promoted(ctx, ev.ID, p.ID)
		publish(ctx, s.pub, now, RKPlayerPromoted, playerPayload(ev.ID, p))
	}
}
