package domain

import (
	"github.com/baechuer/courtsplit/internal/timeslot"
)

// Court keeps its reservation for the life of the event; Actual* are filled in after play.
type Court struct {
	Number        int             `json:"court_number"`
	ReservedStart timeslot.Clock  `json:"reserved_start"`
	ReservedEnd   timeslot.Clock  `json:"reserved_end"`
	ActualStart   *timeslot.Clock `json:"actual_start,omitempty"`
	ActualEnd     *timeslot.Clock `json:"actual_end,omitempty"`
}

func (c Court) Reserved() timeslot.Window {
	return timeslot.NewWindow(c.ReservedStart, c.ReservedEnd)
}

// Effective is the reconciled window, falling back to the reservation per bound.
func (c Court) Effective() timeslot.Window {
	w := c.Reserved()
	if c.ActualStart != nil {
		w.Start = *c.ActualStart
	}
	if c.ActualEnd != nil {
		w.End = *c.ActualEnd
	}
	return w
}

func (c Court) Reconciled() bool { return c.ActualStart != nil && c.ActualEnd != nil }

func (c Court) validate() error {
	if c.Number < 1 {
		return ErrValidationMeta("invalid court", map[string]string{"court_number": "must be >= 1"})
	}
	if !c.Reserved().Valid() {
		return ErrValidationMeta("invalid court", map[string]string{"reserved": "end must be after start"})
	}
	if c.Reconciled() && *c.ActualEnd <= *c.ActualStart {
		return ErrValidationMeta("invalid court", map[string]string{"actual": "end must be after start"})
	}
	return nil
}

func (c Court) clone() Court {
	if c.ActualStart != nil {
		s := *c.ActualStart
		c.ActualStart = &s
	}
	if c.ActualEnd != nil {
		e := *c.ActualEnd
		c.ActualEnd = &e
	}
	return c
}
