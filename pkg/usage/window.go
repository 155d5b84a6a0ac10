package usage

import "time"

// Window is a half-open time interval [From, To) over which a resource is
// counted. The zero Window means "all time" and is what non-windowed
// resources like active technicians use.
type Window struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the window is the all-time window.
func (w Window) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

// Contains reports whether the instant falls inside the window.
// The all-time window contains every instant.
func (w Window) Contains(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.From) && t.Before(w.To)
}

// MonthWindow returns [first instant of now's month, now) in UTC.
//
// Month boundaries are fixed to UTC rather than any tenant-local calendar:
// all stored timestamps are instants, so boundary comparisons stay instant
// comparisons and never depend on server or tenant timezone settings.
// Crossing into a new month resets the count implicitly because the window
// is computed from "now" on every call, never stored.
func MonthWindow(now time.Time) Window {
	now = now.UTC()
	return Window{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   now,
	}
}
