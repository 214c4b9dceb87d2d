package billing

import (
	"math"

	"github.com/baechuer/courtsplit/internal/timeslot"
)

// HourCharge is one bucket's court share for a player.
type HourCharge struct {
	Window timeslot.Window `json:"window"`
	Cost   float64         `json:"cost"`
}

type LineItem struct {
	PlayerID  string         `json:"player_id"`
	Name      string         `json:"name"`
	StartTime timeslot.Clock `json:"start_time"`
	EndTime   timeslot.Clock `json:"end_time"`

	CourtFee      float64 `json:"court_fee"`
	ConsumableFee float64 `json:"consumable_fee"`
	Fine          float64 `json:"fine"`
	Total         float64 `json:"total"`

	HourlyBreakdown []HourCharge `json:"hourly_breakdown"`
}

// Bill is derived from the event on every calculation and never stored as the source of truth.
type Bill struct {
	EventID string          `json:"event_id"`
	Window  timeslot.Window `json:"window"`
	Lines   []LineItem      `json:"lines"`

	// CourtCost is what the courts cost over the play window. Orphan hours show up in
	// UnallocatedCourtCost and are charged to nobody.
	CourtCost            float64 `json:"court_cost"`
	AllocatedCourtCost   float64 `json:"allocated_court_cost"`
	UnallocatedCourtCost float64 `json:"unallocated_court_cost"`

	ConsumableCost float64 `json:"consumable_cost"`
	FinePool       float64 `json:"fine_pool"`
	FineIncidents  int     `json:"fine_incidents"`
	GrandTotal     float64 `json:"grand_total"`
}

// Empty reports whether the bill has no payers.
func (b Bill) Empty() bool { return len(b.Lines) == 0 }

// Line returns the line for playerID.
func (b Bill) Line(playerID string) (LineItem, bool) {
	for _, l := range b.Lines {
		if l.PlayerID == playerID {
			return l, true
		}
	}
	return LineItem{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
