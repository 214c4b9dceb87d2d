package billing

import (
	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

// Engine turns a reconciled event into an itemized bill. It holds no state besides its policy,
// so the same event always yields the same bill.
type Engine struct {
	policy Policy
}

func NewEngine(p Policy) *Engine {
	return &Engine{policy: p}
}

func (e *Engine) Policy() Policy { return e.policy }

type occupant struct {
	player *domain.Player
	window timeslot.Window
	court  float64
	hours  []HourCharge
}

// Calculate splits court time by simultaneous occupancy per hour bucket, and splits consumables
// and the fine pool evenly across registered players.
func (e *Engine) Calculate(ev *domain.Event) Bill {
	bill := Bill{EventID: ev.ID, Lines: []LineItem{}}

	play, ok := ev.PlayWindow()
	if !ok {
		return bill
	}
	bill.Window = play

	registered := ev.Registered()
	if len(registered) == 0 {
		return bill
	}

	occ := make([]*occupant, len(registered))
	for i, p := range registered {
		occ[i] = &occupant{player: p, window: p.Window(play.Start)}
	}

	var courtCost, orphanCost float64
	for _, bucket := range timeslot.HourGrid(play.Start, play.End) {
		cost := e.bucketCost(ev, bucket)
		courtCost += cost

		present := make([]*occupant, 0, len(occ))
		for _, o := range occ {
			if coversStart(o.window, bucket) {
				present = append(present, o)
			}
		}
		if len(present) == 0 {
			orphanCost += cost
			continue
		}
		share := cost / float64(len(present))
		for _, o := range present {
			o.court += share
			o.hours = append(o.hours, HourCharge{Window: bucket, Cost: round2(share)})
		}
	}

	n := float64(len(registered))
	consumables := float64(ev.ShuttlecocksUsed) * ev.ShuttlecockPrice
	incidents := 0
	for _, p := range ev.Players {
		if p.IsFineIncident() {
			incidents++
		}
	}
	finePool := float64(incidents) * e.policy.LateCancellationFine

	consumableFee := round2(consumables / n)
	fine := round2(finePool / n)
	for _, o := range occ {
		line := LineItem{
			PlayerID:        o.player.ID,
			Name:            o.player.Name,
			StartTime:       o.window.Start,
			EndTime:         o.window.End,
			CourtFee:        round2(o.court),
			ConsumableFee:   consumableFee,
			Fine:            fine,
			HourlyBreakdown: o.hours,
		}
		if line.HourlyBreakdown == nil {
			line.HourlyBreakdown = []HourCharge{}
		}
		line.Total = round2(line.CourtFee + line.ConsumableFee + line.Fine)
		bill.Lines = append(bill.Lines, line)
		bill.AllocatedCourtCost += line.CourtFee
		bill.GrandTotal += line.Total
	}

	bill.CourtCost = round2(courtCost)
	bill.UnallocatedCourtCost = round2(orphanCost)
	bill.AllocatedCourtCost = round2(bill.AllocatedCourtCost)
	bill.ConsumableCost = round2(consumables)
	bill.FinePool = round2(finePool)
	bill.FineIncidents = incidents
	bill.GrandTotal = round2(bill.GrandTotal)
	return bill
}

// bucketCost is the rate times the court-hours played inside the bucket, so a bucket with one
// fully used court costs exactly one hourly rate.
func (e *Engine) bucketCost(ev *domain.Event, bucket timeslot.Window) float64 {
	var hours float64
	for _, c := range ev.Courts {
		if in, ok := c.Effective().Intersect(bucket); ok {
			hours += in.Hours()
		}
	}
	return hours * ev.CourtHourlyRate
}

// coversStart is the occupancy rule: a player is in a bucket when their window covers the
// bucket's start instant. A player joining mid-bucket starts paying from the next bucket.
func coversStart(w, bucket timeslot.Window) bool {
	return w.Start <= bucket.Start && w.End > bucket.Start
}
