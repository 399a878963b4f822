package domain

import "time"

// TillCount is the number of tills the operation runs. Till numbers are 1..TillCount.
const TillCount = 6

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ValidTill reports whether n identifies one of the operated tills.
func ValidTill(n int) bool {
	return n >= 1 && n <= TillCount
}

// ParseDate parses a YYYY-MM-DD wire date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// location is the timezone that decides which calendar day "today" is.
// Defaults to the server's local time; overridden from config at startup so
// the business day rolls over at the operation's midnight, not UTC's.
var location = time.Local

// SetLocation overrides the timezone used to resolve the current day.
// Called once during startup, before any requests are served.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Today returns the current calendar day in the configured timezone,
// normalized to UTC midnight like every other date in the system.
func Today() time.Time {
	now := time.Now().In(location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
