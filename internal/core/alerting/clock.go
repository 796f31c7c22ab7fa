package alerting

import "time"

// Clock supplies the reference date for alert computation. Injecting it keeps
// classification deterministic under test.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock, truncated to the local business day.
type SystemClock struct{}

func (SystemClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// FixedClock always reports the same day. Test helper.
type FixedClock struct {
	Day time.Time
}

func (c FixedClock) Today() time.Time { return c.Day }
