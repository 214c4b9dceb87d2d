package domain

import (
	"fmt"
	"time"

	"github.com/baechuer/courtsplit/internal/timeslot"
)

// SetActualWindow records what was actually played on a court. The reservation is kept and
// the actual window may extend past it or fall short.
func (e *Event) SetActualWindow(index int, start, end timeslot.Clock, now time.Time) error {
	if index < 0 || index >= len(e.Courts) {
		return ErrNotFound("court not found")
	}
	if end <= start {
		return ErrValidationMeta("invalid actual window", map[string]string{
			fmt.Sprintf("courts[%d]", index): "actual_end must be after actual_start",
		})
	}
	s, en := start, end
	e.Courts[index].ActualStart = &s
	e.Courts[index].ActualEnd = &en
	e.UpdatedAt = now.UTC()
	return nil
}

// AddCourt appends a court numbered after the highest existing one, reserving the same window
// as the first court.
func (e *Event) AddCourt(now time.Time) (Court, error) {
	if len(e.Courts) == 0 {
		return Court{}, ErrInvalidState("event has no courts to copy a reservation from")
	}
	max := 0
	for _, c := range e.Courts {
		if c.Number > max {
			max = c.Number
		}
	}
	first := e.Courts[0]
	c := Court{
		Number:        max + 1,
		ReservedStart: first.ReservedStart,
		ReservedEnd:   first.ReservedEnd,
	}
	e.Courts = append(e.Courts, c)
	e.UpdatedAt = now.UTC()
	return c, nil
}

// RemoveCourt drops the court at index; the last court cannot be removed.
func (e *Event) RemoveCourt(index int, now time.Time) error {
	if index < 0 || index >= len(e.Courts) {
		return ErrNotFound("court not found")
	}
	if len(e.Courts) <= 1 {
		return ErrValidationMeta("minimum court violation", map[string]string{"courts": "at least one court must remain"})
	}
	e.Courts = append(e.Courts[:index:index], e.Courts[index+1:]...)
	e.UpdatedAt = now.UTC()
	return nil
}

// RecordUsage stores the reconciled windows (one per court, by index) and shuttlecock count,
// and marks the event completed.
func (e *Event) RecordUsage(actual []timeslot.Window, shuttlecocks int, now time.Time) error {
	if e.Status == StatusCancelled {
		return ErrInvalidState("cancelled event cannot record usage")
	}
	if len(actual) != len(e.Courts) {
		return ErrValidationMeta("invalid usage", map[string]string{"courts": "one actual window per court is required"})
	}
	if shuttlecocks < 0 {
		return ErrValidationMeta("invalid usage", map[string]string{"shuttlecocks_used": "must be >= 0"})
	}
	next := append([]Court(nil), e.Courts...)
	for i, w := range actual {
		if !w.Valid() {
			return ErrValidationMeta("invalid actual window", map[string]string{
				fmt.Sprintf("courts[%d]", i): "actual_end must be after actual_start",
			})
		}
		s, en := w.Start, w.End
		next[i].ActualStart = &s
		next[i].ActualEnd = &en
	}
	e.Courts = next
	e.ShuttlecocksUsed = shuttlecocks
	e.Status = StatusCompleted
	e.UpdatedAt = now.UTC()
	return nil
}
