package domain

import "time"

// Clock provides the current time to services so time gates can be tested.
// Implementations must return UTC.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// WindowOpen reports whether now falls inside the half-open interval
// [start, end). An instant exactly at end is closed; exactly at start is
// open. All three instants are normalized to UTC before comparison so naive
// and zone-aware timestamps can never be mixed.
func WindowOpen(now, start, end time.Time) bool {
	now = now.UTC()
	start = start.UTC()
	end = end.UTC()
	return !now.Before(start) && now.Before(end)
}
