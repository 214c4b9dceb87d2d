package domain

import (
	"strings"
	"time"

	"github.com/baechuer/courtsplit/internal/timeslot"
)

const DateLayout = "2006-01-02"

type Event struct {
	ID    string
	Name  string
	Date  time.Time // civil date at 00:00 UTC
	Venue string

	MaxPlayers       int
	ShuttlecockPrice float64
	CourtHourlyRate  float64

	Courts  []Court
	Players []*Player

	ShuttlecocksUsed int
	Status           EventStatus

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventDraft carries the admin's create form.
type EventDraft struct {
	Name             string
	Date             time.Time
	Venue            string
	MaxPlayers       int
	ShuttlecockPrice float64
	CourtHourlyRate  float64
	Courts           []Court
}

func NewEvent(id, createdBy string, d EventDraft, now time.Time) (*Event, error) {
	e := &Event{
		ID:               strings.TrimSpace(id),
		Name:             strings.TrimSpace(d.Name),
		Date:             civilDate(d.Date),
		Venue:            strings.TrimSpace(d.Venue),
		MaxPlayers:       d.MaxPlayers,
		ShuttlecockPrice: d.ShuttlecockPrice,
		CourtHourlyRate:  d.CourtHourlyRate,
		Courts:           append([]Court(nil), d.Courts...),
		Players:          []*Player{},
		Status:           StatusUpcoming,
		CreatedBy:        createdBy,
		CreatedAt:        now.UTC(),
		UpdatedAt:        now.UTC(),
	}
	if e.ID == "" {
		return nil, ErrValidation("id is required")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the aggregate's static invariants.
func (e *Event) Validate() error {
	meta := map[string]string{}
	if e.Name == "" || len(e.Name) > 120 {
		meta["name"] = "required, <= 120 chars"
	}
	if e.Venue == "" || len(e.Venue) > 200 {
		meta["venue"] = "required, <= 200 chars"
	}
	if e.Date.IsZero() {
		meta["date"] = "required"
	}
	if e.MaxPlayers < 2 {
		meta["max_players"] = "must be >= 2"
	}
	if e.ShuttlecockPrice < 0 {
		meta["shuttlecock_price"] = "must be >= 0"
	}
	if e.CourtHourlyRate < 0 {
		meta["court_hourly_rate"] = "must be >= 0"
	}
	if e.ShuttlecocksUsed < 0 {
		meta["shuttlecocks_used"] = "must be >= 0"
	}
	if len(e.Courts) == 0 {
		meta["courts"] = "at least one court is required"
	}
	if len(meta) > 0 {
		return ErrValidationMeta("invalid event", meta)
	}

	seen := map[int]bool{}
	for _, c := range e.Courts {
		if err := c.validate(); err != nil {
			return err
		}
		if seen[c.Number] {
			return ErrValidationMeta("invalid event", map[string]string{"courts": "court numbers must be unique"})
		}
		seen[c.Number] = true
	}
	return nil
}

// Complete reports whether the aggregate was fully persisted. A stored event without courts is
// the trace of a partial save and must not be used.
func (e *Event) Complete() bool { return len(e.Courts) > 0 }

// EventPatch is a partial update; nil fields are left alone.
type EventPatch struct {
	Name             *string
	Date             *time.Time
	Venue            *string
	MaxPlayers       *int
	ShuttlecockPrice *float64
	CourtHourlyRate  *float64
}

// ApplyUpdate applies p and returns any waitlisted players promoted by a capacity increase.
func (e *Event) ApplyUpdate(p EventPatch, now time.Time) ([]*Player, error) {
	if e.Status == StatusCancelled {
		return nil, ErrInvalidState("cancelled event cannot be updated")
	}
	next := *e
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Date != nil {
		next.Date = civilDate(*p.Date)
	}
	if p.Venue != nil {
		next.Venue = strings.TrimSpace(*p.Venue)
	}
	if p.MaxPlayers != nil {
		if *p.MaxPlayers < e.CountStatus(PlayerRegistered) {
			return nil, ErrInvalidState("max_players cannot drop below the registered count")
		}
		next.MaxPlayers = *p.MaxPlayers
	}
	if p.ShuttlecockPrice != nil {
		next.ShuttlecockPrice = *p.ShuttlecockPrice
	}
	if p.CourtHourlyRate != nil {
		next.CourtHourlyRate = *p.CourtHourlyRate
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	*e = next
	e.UpdatedAt = now.UTC()
	return e.backfill(), nil
}

func (e *Event) CancelEvent(now time.Time) error {
	switch e.Status {
	case StatusCancelled:
		return ErrInvalidState("event already cancelled")
	case StatusCompleted:
		return ErrInvalidState("completed event cannot be cancelled")
	}
	e.Status = StatusCancelled
	e.UpdatedAt = now.UTC()
	return nil
}

// IsEventDay reports whether now falls on the event's date in loc.
func (e *Event) IsEventDay(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	ey, em, ed := e.Date.Date()
	return y == ey && m == em && d == ed
}

// PlayWindow is the union of the courts' effective windows.
func (e *Event) PlayWindow() (timeslot.Window, bool) {
	ws := make([]timeslot.Window, 0, len(e.Courts))
	for _, c := range e.Courts {
		ws = append(ws, c.Effective())
	}
	return timeslot.Union(ws...)
}

// ReservedWindow is the union of the reservations; used to validate registration drafts.
func (e *Event) ReservedWindow() (timeslot.Window, bool) {
	ws := make([]timeslot.Window, 0, len(e.Courts))
	for _, c := range e.Courts {
		ws = append(ws, c.Reserved())
	}
	return timeslot.Union(ws...)
}

func (e *Event) FindPlayer(id string) (*Player, bool) {
	for _, p := range e.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (e *Event) CountStatus(s PlayerStatus) int {
	n := 0
	for _, p := range e.Players {
		if p.Status == s {
			n++
		}
	}
	return n
}

// Registered returns registered players in queue order.
func (e *Event) Registered() []*Player {
	return e.withStatus(PlayerRegistered)
}

// Waitlist returns waitlisted players in queue order.
func (e *Event) Waitlist() []*Player {
	return e.withStatus(PlayerWaitlist)
}

func (e *Event) withStatus(s PlayerStatus) []*Player {
	out := make([]*Player, 0, len(e.Players))
	for _, p := range e.Players {
		if p.Status == s {
			out = append(out, p)
		}
	}
	sortQueue(out)
	return out
}

func (e *Event) nextSeq() int {
	max := 0
	for _, p := range e.Players {
		if p.Seq > max {
			max = p.Seq
		}
	}
	return max + 1
}

func civilDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrValidationMeta("invalid date", map[string]string{"date": "must be YYYY-MM-DD"})
	}
	return t, nil
}

// Clone deep-copies the aggregate so stores and callers never share players or courts.
func (e *Event) Clone() *Event {
	out := *e
	out.Courts = make([]Court, len(e.Courts))
	for i, c := range e.Courts {
		out.Courts[i] = c.clone()
	}
	out.Players = make([]*Player, len(e.Players))
	for i, p := range e.Players {
		cp := *p
		if p.StartTime != nil {
			s := *p.StartTime
			cp.StartTime = &s
		}
		out.Players[i] = &cp
	}
	return &out
}
