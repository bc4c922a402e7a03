package reminders

import (
	"fmt"
	"strings"
	"time"
)

const (
	displayDateLayout     = "January 2, 2006"
	displayMonthDayLayout = "January 2"
	displayDateTimeLayout = "January 2, 2006 3:04 PM"
)

// FormatAnchorDate renders the "date info" column for a subject in a category:
// nurturing shows how long ago the lead was added, birthday and anniversary
// show the month-day with the countdown to the next occurrence, renewal shows
// the full date with its countdown. A missing anchor renders as "N/A".
func FormatAnchorDate(s Subject, c Category, today time.Time) string {
	anchor, ok := s.Anchor(c)
	if !ok {
		return "N/A"
	}
	return formatAnchor(anchor, c, today)
}

// FormatRawDate is the defensive variant for dates that arrive as strings
// (CSV imports, custom fields). Unparseable input degrades to a visible
// sentinel instead of failing the whole render.
func FormatRawDate(raw string, c Category, today time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return "N/A"
	}
	t, err := ParseDate(raw)
	if err != nil {
		return "Invalid date"
	}
	return formatAnchor(t, c, today)
}

func formatAnchor(anchor time.Time, c Category, today time.Time) string {
	switch c {
	case CategoryNurturing:
		return "Added " + relativeSince(anchor, today)
	case CategoryBirthday, CategoryAnniversary:
		next := NextOccurrence(anchor, today)
		return fmt.Sprintf("on %s (%s)", anchor.Format(displayMonthDayLayout), untilPhrase(next, today))
	case CategoryRenewal:
		return fmt.Sprintf("on %s (%s)", anchor.Format(displayDateLayout), untilPhrase(NextOccurrence(anchor, today), today))
	}
	return anchor.Format(displayDateLayout)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate accepts the date shapes REST callers and CSV rows actually send.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// relativeSince renders "2 days ago" style text for how long ago t was.
func relativeSince(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	case d < 30*24*time.Hour:
		return plural(int(d.Hours()/24), "day") + " ago"
	case d < 365*24*time.Hour:
		return plural(int(d.Hours()/(24*30)), "month") + " ago"
	default:
		return plural(int(d.Hours()/(24*365)), "year") + " ago"
	}
}

// untilPhrase renders the countdown to an upcoming date, compared by calendar
// day rather than elapsed hours.
func untilPhrase(next, today time.Time) string {
	days := calendarDays(today, next)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f).Hours() / 24)
}

func plural(n int, unit string) string {
	if n <= 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
