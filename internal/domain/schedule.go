package domain

import "time"

// Notifications go out at 10:30 local time, Monday through Friday.
const (
	notifyHour   = 10
	notifyMinute = 30
)

// NextNotify computes the next notification instant strictly after now,
// in now's location: the soonest weekday at 10:30:00. "Strictly after"
// matters on the boundary — at exactly Friday 10:30:00 the result is
// Monday 10:30:00, so a single occurrence can never fire twice.
func NextNotify(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), notifyHour, notifyMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
