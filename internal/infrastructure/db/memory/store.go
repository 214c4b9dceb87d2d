// Package memory is a process-local EventStore used in dev and when no DATABASE_URL is set.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/domain"
)

type Store struct {
	mu   sync.RWMutex
	byID map[string]*domain.Event
}

func New() *Store {
	return &Store{byID: map[string]*domain.Event{}}
}

var _ session.EventStore = (*Store)(nil)

// LoadEvents returns copies ordered by creation time.
func (s *Store) LoadEvents(ctx context.Context) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Event, 0, len(s.byID))
	for _, e := range s.byID {
		out = append(out, e.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) LoadEvent(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("event not found")
	}
	return e.Clone(), nil
}

// SaveNewEvent stores the event row without courts or players.
func (s *Store) SaveNewEvent(ctx context.Context, e *domain.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := e.Clone()
	cp.Courts = nil
	cp.Players = []*domain.Player{}
	s.byID[cp.ID] = cp
	return cp.ID, nil
}

func (s *Store) SaveCourts(ctx context.Context, eventID string, courts []domain.Court) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	e.Courts = (&domain.Event{Courts: courts}).Clone().Courts
	return nil
}

func (s *Store) SavePlayers(ctx context.Context, eventID string, players []*domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	e.Players = (&domain.Event{Players: players}).Clone().Players
	return nil
}

func (s *Store) UpdateEventFields(ctx context.Context, eventID string, f session.EventFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[eventID]
	if !ok {
		return domain.ErrNotFound("event not found")
	}
	if f.Name != nil {
		e.Name = *f.Name
	}
	if f.Date != nil {
		e.Date = *f.Date
	}
	if f.Venue != nil {
		e.Venue = *f.Venue
	}
	if f.MaxPlayers != nil {
		e.MaxPlayers = *f.MaxPlayers
	}
	if f.ShuttlecockPrice != nil {
		e.ShuttlecockPrice = *f.ShuttlecockPrice
	}
	if f.CourtHourlyRate != nil {
		e.CourtHourlyRate = *f.CourtHourlyRate
	}
	if f.ShuttlecocksUsed != nil {
		e.ShuttlecocksUsed = *f.ShuttlecocksUsed
	}
	if f.Status != nil {
		e.Status = *f.Status
	}
	e.UpdatedAt = f.UpdatedAt
	return nil
}
