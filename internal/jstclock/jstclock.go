package jstclock

// ============================================================================
// JST month boundaries
// Responsibility: map UTC instants onto Japan Standard Time calendar months
// ============================================================================
//
// JST is a fixed +09:00 offset without daylight saving, so a fixed zone is
// enough and no tzdata lookup is needed.
//
// Boundaries in UTC:
//   month start  JST 00:00:00.000 day 1     = UTC 15:00:00.000 the day before
//   month end    JST 23:59:59.999 last day  = UTC 14:59:59.999 the same day
//
// ============================================================================

import "time"

// Offset JST offset from UTC
const Offset = 9 * time.Hour

// Zone fixed Japan Standard Time location
var Zone = time.FixedZone("JST", int(Offset/time.Second))

// lastMoment offset of the final representable instant of a day, millisecond
// granularity
const lastMoment = 23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond

// MonthOf returns the JST calendar month of a UTC instant
func MonthOf(utc time.Time) time.Month {
	return utc.In(Zone).Month()
}

// YearMonthOf returns the JST calendar year and month of a UTC instant
func YearMonthOf(utc time.Time) (int, time.Month) {
	local := utc.In(Zone)
	return local.Year(), local.Month()
}

// MonthEndUTC returns JST 23:59:59.999 on the last day of utc's JST month,
// expressed in UTC
func MonthEndUTC(utc time.Time) time.Time {
	year, month := YearMonthOf(utc)
	// day 0 of the following month normalizes to the last day of this one,
	// December included
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, Zone)
	return lastDay.Add(lastMoment).UTC()
}

// MonthStartUTC returns JST 00:00:00.000 on day 1 of year/month, expressed in
// UTC. month must be within 1..12; use NextMonth to roll December over.
func MonthStartUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Zone).UTC()
}

// NextMonth returns the calendar month after year/month
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// SameMonth reports whether two UTC instants fall in the same JST month
func SameMonth(a, b time.Time) bool {
	ay, am := YearMonthOf(a)
	by, bm := YearMonthOf(b)
	return ay == by && am == bm
}
