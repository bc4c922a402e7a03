package reminders

import "fmt"

// Category selects which calendar anchor on a subject drives a reminder.
type Category string

const (
	CategoryNurturing   Category = "nurturing"
	CategoryBirthday    Category = "birthday"
	CategoryAnniversary Category = "anniversary"
	CategoryRenewal     Category = "renewal"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryNurturing,
	CategoryBirthday,
	CategoryAnniversary,
	CategoryRenewal,
}

// ParseCategory converts a wire string into a Category. Unknown strings are an
// error rather than a silently-ignored branch.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryNurturing, CategoryBirthday, CategoryAnniversary, CategoryRenewal:
		return c, nil
	}
	return "", fmt.Errorf("unknown reminder category %q", s)
}

// Recurring reports whether the category repeats annually. Nurturing is tied to
// when the lead was added and never recurs.
func (c Category) Recurring() bool {
	switch c {
	case CategoryBirthday, CategoryAnniversary, CategoryRenewal:
		return true
	}
	return false
}

// Label returns the human-readable tab label for the category.
func (c Category) Label() string {
	switch c {
	case CategoryNurturing:
		return "Nurturing Reminders"
	case CategoryBirthday:
		return "Birthday Reminders"
	case CategoryAnniversary:
		return "Anniversary Reminders"
	case CategoryRenewal:
		return "Renewal Reminders"
	}
	return string(c)
}
