package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

type RecordUsageCmd struct {
	Actor   Actor
	EventID string
	// Courts holds one actual window per court, in court order.
	Courts           []timeslot.Window
	ShuttlecocksUsed int
}

// RecordUsage reconciles the courts after play and completes the event.
func (s *Service) RecordUsage(ctx context.Context, cmd RecordUsageCmd) (*domain.Event, error) {
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
	if err := ev.RecordUsage(cmd.Courts, cmd.ShuttlecocksUsed, now); err != nil {
		return nil, err
	}

	defer s.invalidateBill(ctx, ev.ID)
	if err := s.store.SaveCourts(ctx, ev.ID, ev.Courts); err != nil {
		return ev, domain.ErrPersistence("save courts", err)
	}
	status, used := ev.Status, ev.ShuttlecocksUsed
	if err := s.store.UpdateEventFields(ctx, ev.ID, EventFields{
		Status:           &status,
		ShuttlecocksUsed: &used,
		UpdatedAt:        ev.UpdatedAt,
	}); err != nil {
		return ev, domain.ErrPersistence("update event", err)
	}

	var hours float64
	for _, c := range ev.Courts {
		hours += c.Effective().Hours()
	}
	s.audit.UsageRecorded(ctx, ev.ID, cmd.Actor.UserID, used)
	publish(ctx, s.pub, now, RKUsageRecorded, UsagePayload{EventID: ev.ID, CourtHours: hours, ShuttlecocksUsed: used})
	return ev, nil
}
