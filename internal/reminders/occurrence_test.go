package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	anchor := date(1990, time.March, 5)

	t.Run("already passed this year", func(t *testing.T) {
		next := NextOccurrence(anchor, date(2024, time.March, 10))
		assert.Equal(t, 2025, next.Year())
		assert.Equal(t, time.March, next.Month())
		assert.Equal(t, 5, next.Day())
	})

	t.Run("still ahead this year", func(t *testing.T) {
		next := NextOccurrence(anchor, date(2024, time.March, 1))
		assert.Equal(t, 2024, next.Year())
		assert.Equal(t, time.March, next.Month())
		assert.Equal(t, 5, next.Day())
	})

	t.Run("falls on today", func(t *testing.T) {
		// Tie goes to the current year: today counts as occurring today.
		next := NextOccurrence(anchor, date(2024, time.March, 5))
		assert.Equal(t, 2024, next.Year())
	})

	t.Run("year boundary", func(t *testing.T) {
		jan := date(1985, time.January, 2)
		next := NextOccurrence(jan, date(2024, time.December, 30))
		assert.Equal(t, 2025, next.Year())
		assert.Equal(t, time.January, next.Month())
	})

	t.Run("month-day compare ignores time of day", func(t *testing.T) {
		late := time.Date(1990, time.March, 5, 23, 59, 0, 0, time.UTC)
		earlyToday := time.Date(2024, time.March, 5, 0, 1, 0, 0, time.UTC)
		next := NextOccurrence(late, earlyToday)
		assert.Equal(t, 2024, next.Year())
	})
}
