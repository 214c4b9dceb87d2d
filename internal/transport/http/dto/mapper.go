package dto

import (
	"strings"

	"github.com/baechuer/courtsplit/internal/application/session"
	"github.com/baechuer/courtsplit/internal/billing"
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

// View controls what a response reveals to the caller.
type View struct {
	IncludeEmail bool
}

func ToEventResp(e *domain.Event, v View) EventResp {
	registered := e.CountStatus(domain.PlayerRegistered)
	resp := EventResp{
		ID:               e.ID,
		Name:             e.Name,
		Date:             e.Date.Format(domain.DateLayout),
		Venue:            e.Venue,
		MaxPlayers:       e.MaxPlayers,
		ShuttlecockPrice: e.ShuttlecockPrice,
		CourtHourlyRate:  e.CourtHourlyRate,
		ShuttlecocksUsed: e.ShuttlecocksUsed,
		Status:           string(e.Status),
		RegisteredCount:  registered,
		WaitlistCount:    e.CountStatus(domain.PlayerWaitlist),
		SeatsLeft:        max(e.MaxPlayers-registered, 0),
		Courts:           e.Clone().Courts,
		Players:          make([]PlayerResp, 0, len(e.Players)),
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if w, ok := e.PlayWindow(); ok {
		resp.PlayWindow = &w
	}
	for _, p := range e.Players {
		resp.Players = append(resp.Players, ToPlayerResp(p, v))
	}
	return resp
}

func ToPlayerResp(p *domain.Player, v View) PlayerResp {
	out := PlayerResp{
		ID:                  p.ID,
		Name:                p.Name,
		StartTime:           p.StartTime,
		EndTime:             p.EndTime,
		Status:              string(p.Status),
		RegisteredAt:        p.RegisteredAt,
		CancelledOnEventDay: p.CancelledOnEventDay,
		Absent:              p.Absent,
	}
	if v.IncludeEmail {
		out.Email = p.Email
	}
	return out
}

func ToListResp(events []*domain.Event, v View) ListResp {
	out := ListResp{Items: make([]EventResp, 0, len(events)), Total: len(events)}
	for _, e := range events {
		out.Items = append(out.Items, ToEventResp(e, v))
	}
	return out
}

// Requests are validated with validate.Struct before mapping, so clocks parse here.

func (r CreateEventReq) ToCmd(actor session.Actor) (session.CreateCmd, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return session.CreateCmd{}, err
	}
	cmd := session.CreateCmd{
		Actor:            actor,
		Name:             r.Name,
		Date:             date,
		Venue:            r.Venue,
		MaxPlayers:       r.MaxPlayers,
		ShuttlecockPrice: r.ShuttlecockPrice,
		CourtHourlyRate:  r.CourtHourlyRate,
		Courts:           make([]session.CourtSpec, 0, len(r.Courts)),
	}
	for _, c := range r.Courts {
		cmd.Courts = append(cmd.Courts, session.CourtSpec{
			Number:        c.Number,
			ReservedStart: clockOr(c.ReservedStart, session.DefaultReservedStart),
			ReservedEnd:   clockOr(c.ReservedEnd, session.DefaultReservedEnd),
		})
	}
	return cmd, nil
}

func (r UpdateEventReq) ToPatch() (domain.EventPatch, error) {
	p := domain.EventPatch{
		Name:             r.Name,
		Venue:            r.Venue,
		MaxPlayers:       r.MaxPlayers,
		ShuttlecockPrice: r.ShuttlecockPrice,
		CourtHourlyRate:  r.CourtHourlyRate,
	}
	if r.Date != nil {
		d, err := domain.ParseDate(*r.Date)
		if err != nil {
			return domain.EventPatch{}, err
		}
		p.Date = &d
	}
	return p, nil
}

func (r RegisterReq) ToCmd(actor session.Actor, eventID string) session.RegisterCmd {
	cmd := session.RegisterCmd{
		Actor:   actor,
		EventID: eventID,
		Name:    r.Name,
		Email:   strings.ToLower(strings.TrimSpace(r.Email)),
		EndTime: timeslot.MustParseClock(r.EndTime),
	}
	if r.StartTime != nil && strings.TrimSpace(*r.StartTime) != "" {
		s := timeslot.MustParseClock(*r.StartTime)
		cmd.StartTime = &s
	}
	return cmd
}

func (r UsageReq) Windows() []timeslot.Window {
	out := make([]timeslot.Window, 0, len(r.Courts))
	for _, c := range r.Courts {
		out = append(out, timeslot.NewWindow(timeslot.MustParseClock(c.Start), timeslot.MustParseClock(c.End)))
	}
	return out
}

func (r BillEditsReq) ToEdits() []billing.Edit {
	out := make([]billing.Edit, 0, len(r.Edits))
	for _, e := range r.Edits {
		out = append(out, billing.Edit{
			PlayerID:  e.PlayerID,
			StartTime: timeslot.MustParseClock(e.StartTime),
			EndTime:   timeslot.MustParseClock(e.EndTime),
		})
	}
	return out
}

func clockOr(s string, def timeslot.Clock) timeslot.Clock {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return timeslot.MustParseClock(s)
}
