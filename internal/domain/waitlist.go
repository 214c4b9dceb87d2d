package domain

import (
	"sort"
	"strings"
	"time"
)

// CancelResult describes what a cancellation changed.
type CancelResult struct {
	Cancelled *Player
	// Promoted is the waitlisted player moved into the freed slot, if any.
	Promoted *Player
}

// Register appends the draft as a new player. It never fails: the player is registered while
// seats remain and waitlisted otherwise.
func (e *Event) Register(d PlayerDraft, now time.Time) *Player {
	status := PlayerRegistered
	if e.CountStatus(PlayerRegistered) >= e.MaxPlayers {
		status = PlayerWaitlist
	}
	p := &Player{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
		RegisteredAt: now.UTC(),
		Seq:          e.nextSeq(),
		Status:       status,
		CancelToken:  d.CancelToken,
	}
	e.Players = append(e.Players, p)
	e.UpdatedAt = now.UTC()
	return p
}

// CancelPlayer marks the player cancelled and promotes at most one waitlisted player into the
// freed seat.
func (e *Event) CancelPlayer(playerID string, isEventDay bool, now time.Time) (CancelResult, error) {
	p, ok := e.FindPlayer(playerID)
	if !ok {
		return CancelResult{}, ErrNotFound("player not found")
	}
	if p.Status == PlayerCancelled {
		return CancelResult{Cancelled: p}, ErrAlreadyCancelled(playerID)
	}

	p.Status = PlayerCancelled
	p.CancelledOnEventDay = isEventDay
	e.UpdatedAt = now.UTC()

	res := CancelResult{Cancelled: p}
	if e.CountStatus(PlayerRegistered) < e.MaxPlayers {
		if q := e.Waitlist(); len(q) > 0 {
			q[0].Status = PlayerRegistered
			res.Promoted = q[0]
		}
	}
	return res, nil
}

// MarkAbsent records a registered player who did not show up. The session has already been
// played, so the seat is not offered to the waitlist.
func (e *Event) MarkAbsent(playerID string, now time.Time) (*Player, error) {
	p, ok := e.FindPlayer(playerID)
	if !ok {
		return nil, ErrNotFound("player not found")
	}
	if p.Status != PlayerRegistered {
		return nil, ErrInvalidState("only registered players can be marked absent")
	}
	p.Status = PlayerCancelled
	p.Absent = true
	e.UpdatedAt = now.UTC()
	return p, nil
}

// CheckCapacity returns a capacity_invariant error when more players are registered than
// MaxPlayers allows. It should never fire.
func (e *Event) CheckCapacity() error {
	if n := e.CountStatus(PlayerRegistered); n > e.MaxPlayers {
		return ErrCapacityInvariant(n, e.MaxPlayers)
	}
	return nil
}

// backfill promotes waitlisted players while seats are open, in queue order.
func (e *Event) backfill() []*Player {
	var promoted []*Player
	open := e.MaxPlayers - e.CountStatus(PlayerRegistered)
	for _, p := range e.Waitlist() {
		if open <= 0 {
			break
		}
		p.Status = PlayerRegistered
		promoted = append(promoted, p)
		open--
	}
	return promoted
}

func sortQueue(ps []*Player) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].queuedBefore(ps[j]) })
}
