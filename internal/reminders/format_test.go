package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAnchorDate(t *testing.T) {
	today := date(2024, time.June, 10)

	t.Run("nurturing shows time since added", func(t *testing.T) {
		s := Subject{CreatedAt: today.AddDate(0, 0, -3)}
		assert.Equal(t, "Added 3 days ago", FormatAnchorDate(s, CategoryNurturing, today))
	})

	t.Run("birthday shows month-day with countdown", func(t *testing.T) {
		s := Subject{DateOfBirth: timePtr(date(1990, time.June, 15))}
		assert.Equal(t, "on June 15 (in 5 days)", FormatAnchorDate(s, CategoryBirthday, today))
	})

	t.Run("birthday today", func(t *testing.T) {
		s := Subject{DateOfBirth: timePtr(date(1990, time.June, 10))}
		assert.Equal(t, "on June 10 (today)", FormatAnchorDate(s, CategoryBirthday, today))
	})

	t.Run("renewal shows full date", func(t *testing.T) {
		s := Subject{RenewalDate: timePtr(date(2023, time.June, 11))}
		assert.Equal(t, "on June 11, 2023 (tomorrow)", FormatAnchorDate(s, CategoryRenewal, today))
	})

	t.Run("missing anchor", func(t *testing.T) {
		assert.Equal(t, "N/A", FormatAnchorDate(Subject{CreatedAt: today}, CategoryBirthday, today))
	})
}

func TestFormatRawDate(t *testing.T) {
	today := date(2024, time.June, 10)

	assert.Equal(t, "N/A", FormatRawDate("", CategoryRenewal, today))
	assert.Equal(t, "N/A", FormatRawDate("   ", CategoryRenewal, today))
	assert.Equal(t, "Invalid date", FormatRawDate("not-a-date", CategoryRenewal, today))
	assert.Equal(t, "on June 15 (in 5 days)", FormatRawDate("1990-06-15", CategoryBirthday, today))
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{
		"2024-06-15",
		"2024-06-15T10:30:00Z",
		"15/06/2024",
	} {
		got, err := ParseDate(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, time.June, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	_, err := ParseDate("June the fifteenth")
	assert.Error(t, err)
}

func TestRelativeSince(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5 minutes ago"},
		{90 * time.Minute, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
		{40 * 24 * time.Hour, "1 month ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, relativeSince(now.Add(-tc.ago), now))
	}
}
