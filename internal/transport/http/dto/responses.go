package dto

import (
	"time"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

type EventResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue"`

	MaxPlayers       int     `json:"max_players"`
	ShuttlecockPrice float64 `json:"shuttlecock_price"`
	CourtHourlyRate  float64 `json:"court_hourly_rate"`
	ShuttlecocksUsed int     `json:"shuttlecocks_used"`
	Status           string  `json:"status"`

	// Derived
	PlayWindow      *timeslot.Window `json:"play_window,omitempty"`
	RegisteredCount int              `json:"registered_count"`
	WaitlistCount   int              `json:"waitlist_count"`
	SeatsLeft       int              `json:"seats_left"`

	Courts  []domain.Court `json:"courts"`
	Players []PlayerResp   `json:"players"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerResp leaves out email; only admins see it (IncludeEmail).
type PlayerResp struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email,omitempty"`
	StartTime           *timeslot.Clock `json:"start_time,omitempty"`
	EndTime             timeslot.Clock  `json:"end_time"`
	Status              string          `json:"status"`
	RegisteredAt        time.Time       `json:"registered_at"`
	CancelledOnEventDay bool            `json:"cancelled_on_event_day,omitempty"`
	Absent              bool            `json:"absent,omitempty"`
}

type RegistrationResp struct {
	Player PlayerResp `json:"player"`
	Event  EventResp  `json:"event"`
	// CancelToken is only set for anonymous registrations and is never shown again.
	CancelToken string `json:"cancel_token,omitempty"`
}

type CancelResp struct {
	Cancelled PlayerResp  `json:"cancelled"`
	Promoted  *PlayerResp `json:"promoted,omitempty"`
	Event     EventResp   `json:"event"`
}

type CourtResp struct {
	Court domain.Court `json:"court"`
	Event EventResp    `json:"event"`
}

type ListResp struct {
	Items []EventResp `json:"items"`
	Total int         `json:"total"`
}
