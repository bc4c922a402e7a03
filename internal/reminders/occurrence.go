package reminders

import "time"

const monthDayLayout = "01-02"

// NextOccurrence returns the next time the anchor's month and day come around,
// relative to today. The anchor's own year is irrelevant: the result carries
// today's year, or next year if the month-day has already passed. The compare
// runs on zero-padded MM-DD strings, which is safe because both sides are
// fixed width. An anchor landing on today's month-day counts as today, not
// next year.
//
// No timezone conversion happens here; callers normalize anchor and today into
// the same location first.
func NextOccurrence(anchor, today time.Time) time.Time {
	eventMonthDay := anchor.Format(monthDayLayout)
	todayMonthDay := today.Format(monthDayLayout)

	next := time.Date(
		today.Year(), anchor.Month(), anchor.Day(),
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(),
		anchor.Location(),
	)
	if eventMonthDay < todayMonthDay {
		next = next.AddDate(1, 0, 0)
	}
	return next
}
