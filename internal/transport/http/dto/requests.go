package dto

// Times are "HH:MM" strings; dates are "YYYY-MM-DD".

type CourtReq struct {
	Number        int    `json:"court_number"`
	ReservedStart string `json:"reserved_start" validate:"omitempty,clock"`
	ReservedEnd   string `json:"reserved_end" validate:"omitempty,clock"`
}

type CreateEventReq struct {
	Name             string     `json:"name" validate:"required"`
	Date             string     `json:"date" validate:"required,datetime=2006-01-02"`
	Venue            string     `json:"venue" validate:"required"`
	MaxPlayers       int        `json:"max_players"`
	ShuttlecockPrice float64    `json:"shuttlecock_price"`
	CourtHourlyRate  float64    `json:"court_hourly_rate"`
	Courts           []CourtReq `json:"courts" validate:"required,min=1,dive"`
}

type UpdateEventReq struct {
	Name             *string  `json:"name,omitempty"`
	Date             *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Venue            *string  `json:"venue,omitempty"`
	MaxPlayers       *int     `json:"max_players,omitempty"`
	ShuttlecockPrice *float64 `json:"shuttlecock_price,omitempty"`
	CourtHourlyRate  *float64 `json:"court_hourly_rate,omitempty"`
}

type RegisterReq struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"omitempty,email"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime   string  `json:"end_time" validate:"required,clock"`
}

type WindowReq struct {
	Start string `json:"start" validate:"required,clock"`
	End   string `json:"end" validate:"required,clock"`
}

// UsageReq carries one actual window per court, in court order.
type UsageReq struct {
	Courts           []WindowReq `json:"courts" validate:"required,min=1,dive"`
	ShuttlecocksUsed int         `json:"shuttlecocks_used" validate:"gte=0"`
}

type EditReq struct {
	PlayerID  string `json:"player_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
}

type BillEditsReq struct {
	Edits []EditReq `json:"edits" validate:"required,min=1,dive"`
}
