package billing

import (
	"fmt"
	"time"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

// Edit replaces a registered player's window with grid-aligned bounds.
type Edit struct {
	PlayerID  string         `json:"player_id"`
	StartTime timeslot.Clock `json:"start_time"`
	EndTime   timeslot.Clock `json:"end_time"`
}

// Side names the bound the admin moved.
type Side int

const (
	MovedStart Side = iota
	MovedEnd
)

// EditBounds lists the instants the edit form may offer for ev: starts and ends of the hour
// grid over the play window.
func EditBounds(ev *domain.Event) (timeslot.Bounds, bool) {
	play, ok := ev.PlayWindow()
	if !ok {
		return timeslot.Bounds{}, false
	}
	return timeslot.GridBounds(timeslot.HourGrid(play.Start, play.End)), true
}

// NormalizeEdit keeps start < end after one bound moved by pushing the other bound to the
// nearest grid value. ok is false when no such value exists.
func NormalizeEdit(b timeslot.Bounds, w timeslot.Window, moved Side) (timeslot.Window, bool) {
	if w.Valid() {
		return w, true
	}
	switch moved {
	case MovedStart:
		end, ok := b.NextEndAfter(w.Start)
		if !ok {
			return w, false
		}
		w.End = end
	case MovedEnd:
		start, ok := b.PrevStartBefore(w.End)
		if !ok {
			return w, false
		}
		w.Start = start
	}
	return w, w.Valid()
}

// ApplyEdits writes the edited windows back into the players. All edits are checked before any
// is applied; the caller recomputes the bill from scratch afterwards.
func ApplyEdits(ev *domain.Event, edits []Edit, now time.Time) error {
	if len(edits) == 0 {
		return domain.ErrValidation("no edits")
	}
	b, ok := EditBounds(ev)
	if !ok {
		return domain.ErrInvalidState("event has no play window")
	}

	targets := make([]*domain.Player, len(edits))
	seen := make(map[string]bool, len(edits))
	for i, ed := range edits {
		key := fmt.Sprintf("edits[%d]", i)
		p, ok := ev.FindPlayer(ed.PlayerID)
		if !ok {
			return domain.ErrNotFound("player not found: " + ed.PlayerID)
		}
		if p.Status != domain.PlayerRegistered {
			return domain.ErrInvalidState("only registered players are billed")
		}
		if seen[ed.PlayerID] {
			return domain.ErrValidationMeta("invalid edit", map[string]string{key: "duplicate player"})
		}
		seen[ed.PlayerID] = true

		if !b.IsStart(ed.StartTime) {
			return domain.ErrValidationMeta("invalid edit", map[string]string{key: "start_time must be an hour boundary of the play window"})
		}
		if !b.IsEnd(ed.EndTime) {
			return domain.ErrValidationMeta("invalid edit", map[string]string{key: "end_time must be an hour boundary of the play window"})
		}
		if ed.EndTime <= ed.StartTime {
			return domain.ErrValidationMeta("invalid edit", map[string]string{key: "end_time must be after start_time"})
		}
		targets[i] = p
	}

	for i, ed := range edits {
		start := ed.StartTime
		targets[i].StartTime = &start
		targets[i].EndTime = ed.EndTime
	}
	ev.UpdatedAt = now.UTC()
	return nil
}
