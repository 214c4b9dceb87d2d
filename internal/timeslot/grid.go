package timeslot

// HourGrid enumerates consecutive one-hour slices of [start, end). The trailing slice may be
// shorter than an hour; it is never dropped or rounded up.
func HourGrid(start, end Clock) []Window {
	if end <= start {
		return nil
	}
	out := make([]Window, 0, int(end-start)/60+1)
	for s := start; s < end; s += 60 {
		out = append(out, Window{Start: s, End: minClock(s+60, end)})
	}
	return out
}

// Bounds lists the instants a player window may be edited to on a grid:
// starts are bucket starts, ends are bucket ends.
type Bounds struct {
	Starts []Clock
	Ends   []Clock
}

func GridBounds(grid []Window) Bounds {
	b := Bounds{
		Starts: make([]Clock, 0, len(grid)),
		Ends:   make([]Clock, 0, len(grid)),
	}
	for _, w := range grid {
		b.Starts = append(b.Starts, w.Start)
		b.Ends = append(b.Ends, w.End)
	}
	return b
}

func (b Bounds) IsStart(c Clock) bool { return indexOf(b.Starts, c) >= 0 }
func (b Bounds) IsEnd(c Clock) bool   { return indexOf(b.Ends, c) >= 0 }

// NextEndAfter returns the first grid end strictly after c.
func (b Bounds) NextEndAfter(c Clock) (Clock, bool) {
	for _, e := range b.Ends {
		if e > c {
			return e, true
		}
	}
	return 0, false
}

// PrevStartBefore returns the last grid start strictly before c.
func (b Bounds) PrevStartBefore(c Clock) (Clock, bool) {
	for i := len(b.Starts) - 1; i >= 0; i-- {
		if b.Starts[i] < c {
			return b.Starts[i], true
		}
	}
	return 0, false
}

func indexOf(cs []Clock, c Clock) int {
	for i, v := range cs {
		if v == c {
			return i
		}
	}
	return -1
}
