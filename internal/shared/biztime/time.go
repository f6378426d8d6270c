// Package biztime centralizes time handling. All storage and transport use
// UTC; the business timezone is only used to compute date boundaries for
// statistics queries.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "UTC"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init sets the business timezone. Call once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, auto-initializing with the default
// when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to initialize default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns 00:00:00 of t's day in the business timezone,
// converted to UTC for querying.
func StartOfDayUTC(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), bt.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last nanosecond of t's day in the business
// timezone, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	bt := t.In(Location())
	return time.Date(bt.Year(), bt.Month(), bt.Day(), 23, 59, 59, 999999999, Location()).UTC()
}

// StartOfMonthUTC returns the start of the given month in the business
// timezone, converted to UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).UTC()
}
