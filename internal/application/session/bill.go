package session

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/courtsplit/internal/billing"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/metrics"
)

// ComputeBill returns the bill for the event's current state. It works on upcoming events too,
// as an estimate.
func (s *Service) ComputeBill(ctx context.Context, eventID string) (billing.Bill, error) {
	key := cacheKeyBill(eventID)
	if s.cache != nil {
		var cached billing.Bill
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if found {
			metrics.RecordBillFromCache()
			return cached, nil
		}
	}

	// Mutations invalidate under the same lock, so a bill cached here never predates a write.
	unlock := s.locks.Lock(eventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, eventID)
	if err != nil {
		return billing.Bill{}, err
	}
	if ev.Status == domain.StatusCancelled {
		return billing.Bill{}, domain.ErrInvalidState("event is cancelled")
	}

	bill := s.calculate(ev)
	s.cacheBill(ctx, bill)
	return bill, nil
}

type SaveEditsCmd struct {
	Actor   Actor
	EventID string
	Edits   []billing.Edit
}

// SaveBillEdits writes edited player windows back and recomputes the bill from scratch.
func (s *Service) SaveBillEdits(ctx context.Context, cmd SaveEditsCmd) (*domain.Event, billing.Bill, error) {
	if err := requireAdmin(cmd.Actor); err != nil {
		return nil, billing.Bill{}, err
	}
	unlock := s.locks.Lock(cmd.EventID)
	defer unlock()

	ev, err := s.loadComplete(ctx, cmd.EventID)
	if err != nil {
		return nil, billing.Bill{}, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, billing.Bill{}, domain.ErrInvalidState("event is cancelled")
	}
	now := s.clock.Now().UTC()
	if err := billing.ApplyEdits(ev, cmd.Edits, now); err != nil {
		return nil, billing.Bill{}, err
	}

	bill := s.calculate(ev)
	s.invalidateBill(ctx, ev.ID)
	if err := s.store.SavePlayers(ctx, ev.ID, ev.Players); err != nil {
		return ev, bill, domain.ErrPersistence("save players", err)
	}
	s.cacheBill(ctx, bill)

	s.audit.BillFinalized(ctx, ev.ID, cmd.Actor.UserID, len(cmd.Edits), bill.GrandTotal)
	publish(ctx, s.pub, now, RKBillFinalized, BillPayload{
		EventID:    ev.ID,
		Players:    len(bill.Lines),
		GrandTotal: bill.GrandTotal,
		FinePool:   bill.FinePool,
	})
	return ev, bill, nil
}

func (s *Service) calculate(ev *domain.Event) billing.Bill {
	start := time.Now()
	bill := s.engine.Calculate(ev)
	metrics.RecordBillComputed(time.Since(start))
	return bill
}

func (s *Service) cacheBill(ctx context.Context, bill billing.Bill) {
	if s.cache == nil {
		return
	}
	key := cacheKeyBill(bill.EventID)
	if err := s.cache.Set(ctx, key, bill, s.ttlBill); err != nil {
		zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
