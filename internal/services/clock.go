package services

import (
	"time"
)

// DayClock decides which calendar day "today" is for rank dates
type DayClock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewDayClock returns a clock for loc backed by time.Now. A nil location
// means time.Local.
func NewDayClock(loc *time.Location) DayClock {
	if loc == nil {
		loc = time.Local
	}
	return DayClock{Location: loc, Now: time.Now}
}

func (c DayClock) now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	if c.Now == nil {
		return time.Now().In(loc)
	}
	return c.Now().In(loc)
}

// StartOfDay truncates t to midnight in the clock's location
func (c DayClock) StartOfDay(t time.Time) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Today returns the half-open range [start, end) covering the current day
func (c DayClock) Today() (time.Time, time.Time) {
	start := c.StartOfDay(c.now())
	return start, start.AddDate(0, 0, 1)
}
