package session

import (
	"context"
	"sort"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/courtsplit/internal/domain"
)

func (s *Service) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.loadComplete(ctx, id)
}

// ListUpcoming returns upcoming events, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]*domain.Event, error) {
	out, err := s.listByStatus(ctx, domain.StatusUpcoming)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListCompleted returns completed events, most recent first.
func (s *Service) ListCompleted(ctx context.Context) ([]*domain.Event, error) {
	out, err := s.listByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *Service) listByStatus(ctx context.Context, st domain.EventStatus) ([]*domain.Event, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(all))
	for _, ev := range all {
		if ev.Status == st {
			out = append(out, ev)
		}
	}
	return out, nil
}

// loadAll returns every complete event; incomplete ones are logged and skipped.
func (s *Service) loadAll(ctx context.Context) ([]*domain.Event, error) {
	all, err := s.store.LoadEvents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Event, 0, len(all))
	for _, ev := range all {
		if !ev.Complete() {
			zlog.Warn().Str("event_id", ev.ID).Msg("skipping incomplete event")
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type Dashboard struct {
	UpcomingEvents   int `json:"upcoming_events"`
	UpcomingPlayers  int `json:"upcoming_players"`
	UpcomingWaitlist int `json:"upcoming_waitlist"`
	UpcomingCourts   int `json:"upcoming_courts"`
	CompletedEvents  int `json:"completed_events"`
	CancelledEvents  int `json:"cancelled_events"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	var d Dashboard
	for _, ev := range all {
		switch ev.Status {
		case domain.StatusUpcoming:
			d.UpcomingEvents++
			d.UpcomingPlayers += ev.CountStatus(domain.PlayerRegistered)
			d.UpcomingWaitlist += ev.CountStatus(domain.PlayerWaitlist)
			d.UpcomingCourts += len(ev.Courts)
		case domain.StatusCompleted:
			d.CompletedEvents++
		case domain.StatusCancelled:
			d.CancelledEvents++
		}
	}
	return d, nil
}
