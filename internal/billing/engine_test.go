package billing

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/courtsplit/internal/domain"
	"github.com/baechuer/courtsplit/internal/timeslot"
)

var now = time.Date(2025, 12, 26, 23, 0, 0, 0, time.UTC)

func clk(s string) timeslot.Clock { return timeslot.MustParseClock(s) }

func clkPtr(s string) *timeslot.Clock {
	c := clk(s)
	return &c
}

func win(start, end string) timeslot.Window { return timeslot.NewWindow(clk(start), clk(end)) }

type eventOpts struct {
	max          int
	rate         float64
	shuttlePrice float64
	courts       []timeslot.Window
}

func newEvent(t *testing.T, o eventOpts) *domain.Event {
	t.Helper()
	if o.max == 0 {
		o.max = 12
	}
	if o.rate == 0 {
		o.rate = 150
	}
	if len(o.courts) == 0 {
		o.courts = []timeslot.Window{win("20:00", "22:00")}
	}
	courts := make([]domain.Court, len(o.courts))
	for i, w := range o.courts {
		courts[i] = domain.Court{Number: i + 1, ReservedStart: w.Start, ReservedEnd: w.End}
	}
	ev, err := domain.NewEvent("evt_1", "admin", domain.EventDraft{
		Name:             "Friday Smash",
		Date:             time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
		Venue:            "Hall",
		MaxPlayers:       o.max,
		ShuttlecockPrice: o.shuttlePrice,
		CourtHourlyRate:  o.rate,
		Courts:           courts,
	}, now.Add(-72*time.Hour))
	require.NoError(t, err)
	return ev
}

func add(ev *domain.Event, id, start, end string) *domain.Player {
	d := domain.PlayerDraft{ID: id, Name: id, EndTime: clk(end)}
	if start != "" {
		d.StartTime = clkPtr(start)
	}
	return ev.Register(d, now)
}

func TestCalculate_Scenario(t *testing.T) {
	ev := newEvent(t, eventOpts{})
	add(ev, "p1", "20:00", "22:00")
	add(ev, "p2", "21:00", "22:00")
	require.NoError(t, ev.RecordUsage([]timeslot.Window{win("20:00", "22:00")}, 0, now))

	bill := NewEngine(DefaultPolicy()).Calculate(ev)

	require.Len(t, bill.Lines, 2)
	p1, _ := bill.Line("p1")
	p2, _ := bill.Line("p2")
	assert.Equal(t, 225.0, p1.CourtFee)
	assert.Equal(t, 75.0, p2.CourtFee)
	assert.Equal(t, []HourCharge{
		{Window: win("20:00", "21:00"), Cost: 150},
		{Window: win("21:00", "22:00"), Cost: 75},
	}, p1.HourlyBreakdown)
	assert.Equal(t, []HourCharge{{Window: win("21:00", "22:00"), Cost: 75}}, p2.HourlyBreakdown)

	assert.Equal(t, 300.0, bill.CourtCost)
	assert.Equal(t, 300.0, bill.AllocatedCourtCost)
	assert.Zero(t, bill.UnallocatedCourtCost)
	assert.Equal(t, 300.0, bill.GrandTotal)
	assert.Equal(t, win("20:00", "22:00"), bill.Window)
}

func TestCalculate_OrphanHour(t *testing.T) {
	ev := newEvent(t, eventOpts{courts: []timeslot.Window{win("20:00", "23:00")}})
	add(ev, "p1", "20:00", "21:00")
	add(ev, "p2", "22:00", "23:00")

	bill := NewEngine(DefaultPolicy()).Calculate(ev)

	for _, l := range bill.Lines {
		assert.Equal(t, 150.0, l.CourtFee, l.PlayerID)
		for _, h := range l.HourlyBreakdown {
			assert.NotEqual(t, win("21:00", "22:00"), h.Window, "nobody pays the empty hour")
		}
	}
	assert.Equal(t, 450.0, bill.CourtCost)
	assert.Equal(t, 150.0, bill.UnallocatedCourtCost)
	assert.Equal(t, 300.0, bill.AllocatedCourtCost)
}

func TestCalculate_ProportionalSplit(t *testing.T) {
	t.Run("two_players", func(t *testing.T) {
		ev := newEvent(t, eventOpts{courts: []timeslot.Window{win("20:00", "21:00")}})
		add(ev, "a", "", "21:00")
		add(ev, "b", "", "21:00")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		for _, l := range bill.Lines {
			assert.Equal(t, 75.0, l.CourtFee)
		}
	})

	t.Run("three_players", func(t *testing.T) {
		ev := newEvent(t, eventOpts{courts: []timeslot.Window{win("20:00", "21:00")}})
		add(ev, "a", "", "21:00")
		add(ev, "b", "", "21:00")
		add(ev, "c", "", "21:00")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		require.Len(t, bill.Lines, 3)
		for _, l := range bill.Lines {
			assert.Equal(t, 50.0, l.CourtFee)
		}
	})

	t.Run("mid_bucket_start_pays_from_next_bucket", func(t *testing.T) {
		ev := newEvent(t, eventOpts{})
		add(ev, "a", "20:00", "22:00")
		add(ev, "b", "20:30", "22:00")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		a, _ := bill.Line("a")
		b, _ := bill.Line("b")
		assert.Equal(t, 225.0, a.CourtFee)
		assert.Equal(t, 75.0, b.CourtFee)
	})

	t.Run("two_courts_double_the_bucket_cost", func(t *testing.T) {
		ev := newEvent(t, eventOpts{courts: []timeslot.Window{win("20:00", "22:00"), win("20:00", "21:00")}})
		add(ev, "a", "", "22:00")
		add(ev, "b", "", "22:00")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		a, _ := bill.Line("a")
		// 20-21: 2 courts => 300/2, 21-22: 1 court => 150/2
		assert.Equal(t, 225.0, a.CourtFee)
		assert.Equal(t, 450.0, bill.CourtCost)
	})

	t.Run("partial_final_bucket", func(t *testing.T) {
		ev := newEvent(t, eventOpts{courts: []timeslot.Window{win("20:00", "21:30")}})
		add(ev, "a", "", "21:30")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		a, _ := bill.Line("a")
		require.Len(t, a.HourlyBreakdown, 2)
		assert.Equal(t, win("21:00", "21:30"), a.HourlyBreakdown[1].Window)
		assert.Equal(t, 75.0, a.HourlyBreakdown[1].Cost)
		assert.Equal(t, 225.0, a.CourtFee)
	})

	t.Run("uneven_split_rounds_per_component", func(t *testing.T) {
		ev := newEvent(t, eventOpts{rate: 100, courts: []timeslot.Window{win("20:00", "21:00")}})
		add(ev, "a", "", "21:00")
		add(ev, "b", "", "21:00")
		add(ev, "c", "", "21:00")
		bill := NewEngine(DefaultPolicy()).Calculate(ev)
		for _, l := range bill.Lines {
			assert.Equal(t, 33.33, l.CourtFee)
		}
		assert.Equal(t, 100.0, bill.CourtCost)
		assert.Equal(t, 99.99, bill.GrandTotal)
	})
}

func TestCalculate_ConsumablesSplitEvenly(t *testing.T) {
	ev := newEvent(t, eventOpts{shuttlePrice: 20})
	add(ev, "a", "20:00", "22:00")
	add(ev, "b", "20:00", "21:00")
	add(ev, "c", "21:00", "22:00")
	add(ev, "d", "20:00", "22:00")
	require.NoError(t, ev.RecordUsage([]timeslot.Window{win("20:00", "22:00")}, 10, now))

	bill := NewEngine(DefaultPolicy()).Calculate(ev)

	assert.Equal(t, 200.0, bill.ConsumableCost)
	for _, l := range bill.Lines {
		assert.Equal(t, 50.0, l.ConsumableFee, l.PlayerID)
	}
}

func TestCalculate_FinePool(t *testing.T) {
	ev := newEvent(t, eventOpts{})
	for i := 1; i <= 8; i++ {
		add(ev, fmt.Sprintf("p%d", i), "", "22:00")
	}
	add(ev, "early", "", "22:00")
	_, err := ev.CancelPlayer("p1", true, now)
	require.NoError(t, err)
	_, err = ev.CancelPlayer("p2", true, now)
	require.NoError(t, err)
	_, err = ev.CancelPlayer("early", false, now)
	require.NoError(t, err)
	_, err = ev.MarkAbsent("p3", now)
	require.NoError(t, err)
	require.Equal(t, 5, ev.CountStatus(domain.PlayerRegistered))

	bill := NewEngine(DefaultPolicy()).Calculate(ev)

	assert.Equal(t, 3, bill.FineIncidents)
	assert.Equal(t, 300.0, bill.FinePool)
	require.Len(t, bill.Lines, 5)
	for _, l := range bill.Lines {
		assert.Equal(t, 60.0, l.Fine)
		assert.Equal(t, 60.0+l.CourtFee, l.Total)
	}

	t.Run("fine_amount_comes_from_policy", func(t *testing.T) {
		bill := NewEngine(Policy{LateCancellationFine: 50}).Calculate(ev)
		assert.Equal(t, 150.0, bill.FinePool)
		assert.Equal(t, 30.0, bill.Lines[0].Fine)
	})
}

func TestCalculate_NoRegisteredPlayers(t *testing.T) {
	ev := newEvent(t, eventOpts{max: 2})
	add(ev, "a", "", "22:00")
	_, err := ev.CancelPlayer("a", true, now)
	require.NoError(t, err)

	bill := NewEngine(DefaultPolicy()).Calculate(ev)

	assert.True(t, bill.Empty())
	assert.NotNil(t, bill.Lines)
	assert.Zero(t, bill.GrandTotal)
}

func TestCalculate_Idempotent(t *testing.T) {
	ev := newEvent(t, eventOpts{shuttlePrice: 17, rate: 133, courts: []timeslot.Window{win("19:30", "22:15"), win("20:00", "21:00")}})
	add(ev, "a", "", "22:15")
	add(ev, "b", "20:30", "21:30")
	add(ev, "c", "21:30", "22:15")
	ev.ShuttlecocksUsed = 7

	eng := NewEngine(DefaultPolicy())
	first, err := json.Marshal(eng.Calculate(ev))
	require.NoError(t, err)
	second, err := json.Marshal(eng.Calculate(ev))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCalculate_LinesInQueueOrder(t *testing.T) {
	ev := newEvent(t, eventOpts{})
	add(ev, "first", "", "22:00")
	add(ev, "second", "", "22:00")
	ev.Players[0], ev.Players[1] = ev.Players[1], ev.Players[0]

	bill := NewEngine(DefaultPolicy()).Calculate(ev)
	require.Len(t, bill.Lines, 2)
	assert.Equal(t, "first", bill.Lines[0].PlayerID)
}
