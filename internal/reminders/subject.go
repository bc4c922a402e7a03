package reminders

import "time"

// Subject is the projection of a lead or customer that the reminder resolver
// works on. Records are read-only here: they are fetched fresh per request and
// never mutated by this package.
type Subject struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	LeadStatus      string     `json:"lead_status,omitempty"`
	PolicyNumber    string     `json:"policy_number,omitempty"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	Anniversary     *time.Time `json:"anniversary,omitempty"`
	RenewalDate     *time.Time `json:"renewal_date,omitempty"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Anchor returns the raw calendar field that drives the given category, and
// whether it is present. A subject without the relevant anchor produces no
// reminder and must be filtered out before any occurrence math.
func (s Subject) Anchor(c Category) (time.Time, bool) {
	switch c {
	case CategoryNurturing:
		if s.CreatedAt.IsZero() {
			return time.Time{}, false
		}
		return s.CreatedAt, true
	case CategoryBirthday:
		return deref(s.DateOfBirth)
	case CategoryAnniversary:
		return deref(s.Anniversary)
	case CategoryRenewal:
		return deref(s.RenewalDate)
	}
	return time.Time{}, false
}

// UpcomingAnchor returns the date the subject should be sorted and displayed
// by: the next annual occurrence for recurring categories, the raw creation
// time for nurturing.
func (s Subject) UpcomingAnchor(c Category, today time.Time) (time.Time, bool) {
	anchor, ok := s.Anchor(c)
	if !ok {
		return time.Time{}, false
	}
	if c.Recurring() {
		return NextOccurrence(anchor, today), true
	}
	return anchor, true
}

func deref(t *time.Time) (time.Time, bool) {
	if t == nil || t.IsZero() {
		return time.Time{}, false
	}
	return *t, true
}
