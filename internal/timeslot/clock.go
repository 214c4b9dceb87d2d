package timeslot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds a Clock. Sessions are same-day, so 24:00 is the last valid instant.
const MinutesPerDay = 24 * 60

// Clock is a wall-clock time expressed as minutes since midnight of the session day.
type Clock int

// ParseClock accepts "HH:MM" (and "H:MM"). "24:00" is allowed as an end-of-day bound.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("clock %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) == 0 || len(hh) > 2 || !digits(hh) {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || !digits(mm) {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q: out of range", s)
	}
	c := Clock(h*60 + m)
	if c > MinutesPerDay {
		return 0, fmt.Errorf("clock %q: out of range", s)
	}
	return c, nil
}

// digits reports whether s is plain ASCII digits; Atoi alone lets a sign through.
func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParseClock is ParseClock for literals; it panics on bad input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// Duration returns the hours between a and b, never negative.
func Duration(a, b Clock) float64 {
	if b <= a {
		return 0
	}
	return float64(b-a) / 60
}

func minClock(a, b Clock) Clock {
	if a < b {
		return a
	}
	return b
}

func maxClock(a, b Clock) Clock {
	if a > b {
		return a
	}
	return b
}
