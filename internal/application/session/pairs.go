package session

import (
	"context"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/matching"
)

// SuggestPairs shuffles the registered players into doubles pairs. Every call differs.
func (s *Service) SuggestPairs(ctx context.Context, eventID string) ([]matching.Group, error) {
	ev, err := s.loadComplete(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Status == domain.StatusCancelled {
		return nil, domain.ErrInvalidState("event is cancelled")
	}
	return s.matcher.Pairs(ev.Registered()), nil
}
