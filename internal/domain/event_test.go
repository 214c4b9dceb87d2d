package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/courtsplit/internal/timeslot"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func clk(s string) timeslot.Clock { return timeslot.MustParseClock(s) }

func clkPtr(s string) *timeslot.Clock {
	c := clk(s)
	return &c
}

func court(n int, start, end string) Court {
	return Court{Number: n, ReservedStart: clk(start), ReservedEnd: clk(end)}
}

func newTestEvent(t *testing.T, maxPlayers int) *Event {
	t.Helper()
	now := mustTime(t, "2025-12-20T10:00:00Z")
	e, err := NewEvent("evt_1", "admin_1", EventDraft{
		Name:             "Friday Smash",
		Date:             mustTime(t, "2025-12-26T00:00:00Z"),
		Venue:            "Court Hall 3",
		MaxPlayers:       maxPlayers,
		ShuttlecockPrice: 20,
		CourtHourlyRate:  150,
		Courts:           []Court{court(1, "20:00", "22:00")},
	}, now)
	require.NoError(t, err)
	return e
}

func TestNewEvent_Validation(t *testing.T) {
	now := mustTime(t, "2025-12-20T10:00:00Z")
	valid := EventDraft{
		Name:       "Friday Smash",
		Date:       mustTime(t, "2025-12-26T19:00:00Z"),
		Venue:      "Hall",
		MaxPlayers: 12,
		Courts:     []Court{court(1, "20:00", "22:00")},
	}

	t.Run("valid_event_is_upcoming", func(t *testing.T) {
		e, err := NewEvent("evt_1", "admin", valid, now)
		require.NoError(t, err)
		assert.Equal(t, StatusUpcoming, e.Status)
		assert.Equal(t, mustTime(t, "2025-12-26T00:00:00Z"), e.Date, "date is truncated to the civil day")
		assert.Empty(t, e.Players)
	})

	t.Run("fail_on_small_capacity", func(t *testing.T) {
		d := valid
		d.MaxPlayers = 1
		_, err := NewEvent("evt_1", "admin", d, now)
		require.Error(t, err)
		assert.Equal(t, CodeValidation, err.(*AppError).Code)
		assert.Contains(t, err.(*AppError).Meta, "max_players")
	})

	t.Run("fail_on_no_courts", func(t *testing.T) {
		d := valid
		d.Courts = nil
		_, err := NewEvent("evt_1", "admin", d, now)
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("fail_on_duplicate_court_numbers", func(t *testing.T) {
		d := valid
		d.Courts = []Court{court(1, "20:00", "22:00"), court(1, "20:00", "22:00")}
		_, err := NewEvent("evt_1", "admin", d, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unique")
	})

	t.Run("fail_on_inverted_reservation", func(t *testing.T) {
		d := valid
		d.Courts = []Court{court(1, "22:00", "20:00")}
		_, err := NewEvent("evt_1", "admin", d, now)
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("fail_on_negative_prices", func(t *testing.T) {
		d := valid
		d.CourtHourlyRate = -1
		_, err := NewEvent("evt_1", "admin", d, now)
		assert.True(t, HasCode(err, CodeValidation))
	})
}

func TestEvent_ApplyUpdate(t *testing.T) {
	now := mustTime(t, "2025-12-21T10:00:00Z")

	t.Run("partial_update", func(t *testing.T) {
		e := newTestEvent(t, 4)
		name := "Saturday Smash"
		rate := 180.0
		promoted, err := e.ApplyUpdate(EventPatch{Name: &name, CourtHourlyRate: &rate}, now)
		require.NoError(t, err)
		assert.Empty(t, promoted)
		assert.Equal(t, "Saturday Smash", e.Name)
		assert.Equal(t, 180.0, e.CourtHourlyRate)
		assert.Equal(t, "Court Hall 3", e.Venue)
		assert.Equal(t, now, e.UpdatedAt)
	})

	t.Run("invalid_patch_leaves_state_unchanged", func(t *testing.T) {
		e := newTestEvent(t, 4)
		empty := "  "
		_, err := e.ApplyUpdate(EventPatch{Name: &empty}, now)
		assert.True(t, HasCode(err, CodeValidation))
		assert.Equal(t, "Friday Smash", e.Name)
	})

	t.Run("capacity_increase_backfills_waitlist_in_order", func(t *testing.T) {
		e := newTestEvent(t, 2)
		for _, n := range []string{"a", "b", "c", "d", "e"} {
			e.Register(PlayerDraft{ID: n, Name: n, EndTime: clk("22:00")}, now)
		}
		max := 4
		promoted, err := e.ApplyUpdate(EventPatch{MaxPlayers: &max}, now)
		require.NoError(t, err)
		require.Len(t, promoted, 2)
		assert.Equal(t, "c", promoted[0].ID)
		assert.Equal(t, "d", promoted[1].ID)
		assert.Equal(t, 4, e.CountStatus(PlayerRegistered))
		assert.Equal(t, 1, e.CountStatus(PlayerWaitlist))
	})

	t.Run("capacity_cannot_drop_below_registered", func(t *testing.T) {
		e := newTestEvent(t, 3)
		for _, n := range []string{"a", "b", "c"} {
			e.Register(PlayerDraft{ID: n, Name: n, EndTime: clk("22:00")}, now)
		}
		max := 2
		_, err := e.ApplyUpdate(EventPatch{MaxPlayers: &max}, now)
		assert.True(t, HasCode(err, CodeInvalidState))
		assert.Equal(t, 3, e.MaxPlayers)
	})

	t.Run("cancelled_event_is_frozen", func(t *testing.T) {
		e := newTestEvent(t, 3)
		require.NoError(t, e.CancelEvent(now))
		name := "x"
		_, err := e.ApplyUpdate(EventPatch{Name: &name}, now)
		assert.True(t, HasCode(err, CodeInvalidState))
	})
}

func TestEvent_CancelEvent(t *testing.T) {
	now := mustTime(t, "2025-12-21T10:00:00Z")
	e := newTestEvent(t, 4)

	require.NoError(t, e.CancelEvent(now))
	assert.Equal(t, StatusCancelled, e.Status)
	assert.True(t, HasCode(e.CancelEvent(now), CodeInvalidState))

	done := newTestEvent(t, 4)
	require.NoError(t, done.RecordUsage([]timeslot.Window{timeslot.NewWindow(clk("20:00"), clk("22:00"))}, 0, now))
	assert.True(t, HasCode(done.CancelEvent(now), CodeInvalidState))
}

func TestEvent_IsEventDay(t *testing.T) {
	e := newTestEvent(t, 4) // 2025-12-26
	bkk := time.FixedZone("ICT", 7*60*60)

	assert.True(t, e.IsEventDay(mustTime(t, "2025-12-26T09:00:00Z"), time.UTC))
	assert.False(t, e.IsEventDay(mustTime(t, "2025-12-25T20:00:00Z"), time.UTC))
	// 20:00Z on the 25th is already the 26th in Bangkok (UTC+7)
	assert.True(t, e.IsEventDay(mustTime(t, "2025-12-25T20:00:00Z"), bkk))
}

func TestEvent_Clone_IsDeep(t *testing.T) {
	now := mustTime(t, "2025-12-21T10:00:00Z")
	e := newTestEvent(t, 4)
	e.Register(PlayerDraft{ID: "p1", Name: "P1", StartTime: clkPtr("20:00"), EndTime: clk("22:00")}, now)
	require.NoError(t, e.SetActualWindow(0, clk("20:00"), clk("21:30"), now))

	cp := e.Clone()
	cp.Players[0].Name = "changed"
	*cp.Players[0].StartTime = clk("21:00")
	*cp.Courts[0].ActualEnd = clk("23:00")

	assert.Equal(t, "P1", e.Players[0].Name)
	assert.Equal(t, clk("20:00"), *e.Players[0].StartTime)
	assert.Equal(t, clk("21:30"), *e.Courts[0].ActualEnd)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-26")
	require.NoError(t, err)
	assert.Equal(t, 26, d.Day())

	_, err = ParseDate("26/12/2025")
	assert.True(t, HasCode(err, CodeValidation))
}
