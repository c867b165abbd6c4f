// Package timeconv converts between local wall-clock date/time strings and
// normalized UTC instants.
package timeconv

import (
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ToInstant interprets date+clock as wall-clock values in loc and returns the
// corresponding instant, normalized to UTC. ok is false when either part is
// empty or malformed.
//
// The conversion must go through time.Date rather than string concatenation:
// DST transitions and month/day boundaries only resolve correctly through a
// real calendar computation in loc.
func ToInstant(date, clock string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	c, err := parseClock(clock)
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, loc)
	return t.UTC(), true
}

// SplitLocal renders ts as wall-clock date and time strings in loc. This is
// the edit-prefill path: a stored instant becomes the strings the form shows.
func SplitLocal(ts time.Time, loc *time.Location) (date, clock string) {
	local := ts.In(loc)
	return local.Format(DateLayout), local.Format(TimeLayout)
}

// ListString renders a stored instant for list display as a fixed
// "YYYY-MM-DD HH:MM:SS" string, read in UTC.
//
// NOTE: the list path reads the instant in UTC while the edit-prefill path
// (SplitLocal) reads it in the viewer's zone, so the two disagree for any
// viewer not in UTC. That mismatch is inherited behavior; unifying it needs a
// product decision, not a code one.
func ListString(ts time.Time) string {
	return ts.UTC().Format(DateLayout + " " + TimeLayout)
}

// parseClock accepts both HH:MM:SS and HH:MM; time input controls emit either
// depending on platform.
func parseClock(clock string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err == nil {
		return t, nil
	}
	return time.Parse("15:04", clock)
}
