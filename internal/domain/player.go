package domain

import (
	"strings"
	"time"

	"github.com/baechuer/courtsplit/internal/timeslot"
)

type Player struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`

	// nil means "from the start of play"
	StartTime *timeslot.Clock `json:"start_time,omitempty"`
	EndTime   timeslot.Clock  `json:"end_time"`

	RegisteredAt time.Time `json:"registered_at"`
	// Seq is the insertion order inside the event; it breaks RegisteredAt ties.
	Seq int `json:"seq"`

	Status              PlayerStatus `json:"status"`
	CancelledOnEventDay bool         `json:"cancelled_on_event_day,omitempty"`
	Absent              bool         `json:"absent,omitempty"`

	// CancelToken authorizes cancelling an anonymous entry; it is handed out once, at registration.
	CancelToken string `json:"-"`
}

// PlayerDraft is what a caller supplies on registration.
type PlayerDraft struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	StartTime *timeslot.Clock
	EndTime   timeslot.Clock

	CancelToken string
}

// Validate checks a draft against the session's bounds. The waitlist manager itself never
// rejects a draft.
func (d PlayerDraft) Validate(play timeslot.Window) error {
	meta := map[string]string{}
	if strings.TrimSpace(d.Name) == "" || len(d.Name) > 80 {
		meta["name"] = "required, <= 80 chars"
	}
	start := play.Start
	if d.StartTime != nil {
		start = *d.StartTime
	}
	if d.EndTime <= start {
		meta["end_time"] = "must be after start_time"
	}
	if d.EndTime > timeslot.MinutesPerDay {
		meta["end_time"] = "must be within the session day"
	}
	if len(meta) > 0 {
		return ErrValidationMeta("invalid player", meta)
	}
	return nil
}

// Window resolves the player's participation interval; a nil StartTime means defaultStart.
func (p *Player) Window(defaultStart timeslot.Clock) timeslot.Window {
	start := defaultStart
	if p.StartTime != nil {
		start = *p.StartTime
	}
	return timeslot.NewWindow(start, p.EndTime)
}

// IsFineIncident reports whether the player contributes to the fine pool.
func (p *Player) IsFineIncident() bool {
	return p.Status == PlayerCancelled && (p.CancelledOnEventDay || p.Absent)
}

// queuedBefore is the waitlist order: registration time, then insertion order.
func (p *Player) queuedBefore(o *Player) bool {
	if !p.RegisteredAt.Equal(o.RegisteredAt) {
		return p.RegisteredAt.Before(o.RegisteredAt)
	}
	return p.Seq < o.Seq
}
