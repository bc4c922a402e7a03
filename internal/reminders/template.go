package reminders

import (
	"strings"
	"time"
)

// RenderTemplate substitutes a subject's fields into a message template.
//
// Two behaviors are kept from years of production traffic, on purpose:
//   - each token is replaced at most once — a repeated token keeps its later
//     occurrences verbatim;
//   - a token whose field is absent on the subject stays in the message as
//     literal text, with no error and no blank substitution.
//
// Dates render in loc (the viewer's timezone); a nil loc falls back to the
// stored instant's own location. Appointment dates carry the time of day.
func RenderTemplate(message string, s Subject, loc *time.Location) string {
	msg := message
	if s.FullName != "" {
		msg = strings.Replace(msg, "{name}", s.FullName, 1)
	}
	if s.PolicyNumber != "" {
		msg = strings.Replace(msg, "{policy_number}", s.PolicyNumber, 1)
	}
	msg = replaceDate(msg, "{dob}", s.DateOfBirth, displayDateLayout, loc)
	msg = replaceDate(msg, "{renewal_date}", s.RenewalDate, displayDateLayout, loc)
	msg = replaceDate(msg, "{appointment_date}", s.AppointmentDate, displayDateTimeLayout, loc)
	msg = replaceDate(msg, "{anniversary}", s.Anniversary, displayDateLayout, loc)
	return msg
}

func replaceDate(msg, token string, t *time.Time, layout string, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return msg
	}
	v := *t
	if loc != nil {
		v = v.In(loc)
	}
	return strings.Replace(msg, token, v.Format(layout), 1)
}
