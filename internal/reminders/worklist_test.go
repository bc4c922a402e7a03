package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func sampleSnapshot(today time.Time) Snapshot {
	return Snapshot{
		Subjects: []Subject{
			{
				ID:          "c1",
				FullName:    "Asha Verma",
				DateOfBirth: timePtr(date(1990, today.Month(), today.Day()+5)),
				CreatedAt:   today.AddDate(0, 0, -3),
			},
			{
				ID:          "c2",
				FullName:    "Jôhn Doe",
				DateOfBirth: timePtr(date(1984, today.Month(), today.Day()+1)),
				CreatedAt:   today.AddDate(0, 0, -1),
			},
			{
				ID:          "c3",
				FullName:    "Ravi Kumar",
				DateOfBirth: timePtr(date(1975, today.Month(), today.Day()-2)), // wrapped to next year
				CreatedAt:   today.AddDate(0, 0, -10),
			},
		},
		Logs: []SentLog{},
	}
}

func TestBuildWorklistExcludesLoggedSubjects(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := sampleSnapshot(today)
	snap.Logs = []SentLog{{SourceID: "c2", Category: CategoryBirthday}}

	out := BuildWorklist(snap, CategoryBirthday, "", today)
	require.Len(t, out, 2)
	for _, s := range out {
		assert.NotEqual(t, "c2", s.ID)
	}
}

func TestBuildWorklistSearchIsCaseInsensitiveSubstring(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := sampleSnapshot(today)

	out := BuildWorklist(snap, CategoryBirthday, "doe", today)
	require.Len(t, out, 1)
	assert.Equal(t, "Jôhn Doe", out[0].FullName)

	// Empty search keeps everything.
	assert.Len(t, BuildWorklist(snap, CategoryBirthday, "", today), 3)
}

func TestBuildWorklistRecurringSortAscendingByNextOccurrence(t *testing.T) {
	today := date(2024, time.June, 10)
	out := BuildWorklist(sampleSnapshot(today), CategoryBirthday, "", today)
	require.Len(t, out, 3)

	// c2 is tomorrow, c1 in five days, c3 already passed so next year.
	assert.Equal(t, []string{out[0].ID, out[1].ID, out[2].ID}, []string{"c2", "c1", "c3"})

	prev, _ := out[0].UpcomingAnchor(CategoryBirthday, today)
	for _, s := range out[1:] {
		next, ok := s.UpcomingAnchor(CategoryBirthday, today)
		require.True(t, ok)
		assert.False(t, next.Before(prev), "next occurrences must be non-decreasing")
		prev = next
	}
}

func TestBuildWorklistNurturingSortDescendingByCreatedAt(t *testing.T) {
	today := date(2024, time.June, 10)
	out := BuildWorklist(sampleSnapshot(today), CategoryNurturing, "", today)
	require.Len(t, out, 3)

	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedAt.After(out[i-1].CreatedAt),
			"created_at must be non-increasing")
	}
	assert.Equal(t, "c2", out[0].ID)
}

func TestBuildWorklistIdempotent(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := sampleSnapshot(today)
	snap.Logs = []SentLog{{SourceID: "c1", Category: CategoryBirthday}}

	first := BuildWorklist(snap, CategoryBirthday, "a", today)
	second := BuildWorklist(snap, CategoryBirthday, "a", today)
	assert.Equal(t, first, second)

	// Inputs survive untouched.
	assert.Equal(t, "c1", snap.Subjects[0].ID)
	assert.Len(t, snap.Subjects, 3)
}

func TestBuildWorklistMissingAnchorsSinkToEnd(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := sampleSnapshot(today)
	snap.Subjects = append(snap.Subjects, Subject{ID: "c4", FullName: "No Birthday", CreatedAt: today})

	out := BuildWorklist(snap, CategoryBirthday, "", today)
	require.Len(t, out, 4)
	assert.Equal(t, "c4", out[3].ID)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("renewal")
	require.NoError(t, err)
	assert.Equal(t, CategoryRenewal, c)
	assert.True(t, c.Recurring())

	c, err = ParseCategory("nurturing")
	require.NoError(t, err)
	assert.False(t, c.Recurring())

	_, err = ParseCategory("birthdays")
	assert.Error(t, err)
}
