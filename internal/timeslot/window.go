package timeslot

// Window is the half-open interval [Start, End).
type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

func NewWindow(start, end Clock) Window { return Window{Start: start, End: end} }

// Valid reports End > Start.
func (w Window) Valid() bool { return w.End > w.Start }

// Hours is the window length in hours (0 for an empty or inverted window).
func (w Window) Hours() float64 { return Duration(w.Start, w.End) }

// Contains reports whether the instant c lies in [Start, End).
func (w Window) Contains(c Clock) bool { return w.Start <= c && c < w.End }

// Intersect returns the overlap of w and o; ok is false when they do not overlap.
func (w Window) Intersect(o Window) (Window, bool) {
	if !Overlaps(w, o) {
		return Window{}, false
	}
	return Window{Start: maxClock(w.Start, o.Start), End: minClock(w.End, o.End)}, true
}

func (w Window) String() string { return w.Start.String() + "-" + w.End.String() }

// Overlaps is the half-open interval test.
func Overlaps(a, b Window) bool {
	return a.Start < b.End && b.Start < a.End
}

// Union returns the smallest window spanning all inputs. Invalid windows are ignored.
func Union(ws ...Window) (Window, bool) {
	var out Window
	found := false
	for _, w := range ws {
		if !w.Valid() {
			continue
		}
		if !found {
			out = w
			found = true
			continue
		}
		out.Start = minClock(out.Start, w.Start)
		out.End = maxClock(out.End, w.End)
	}
	return out, found
}
