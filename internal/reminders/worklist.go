package reminders

import (
	"sort"
	"strings"
	"time"
)

// SentLog records that a reminder for a subject was already dispatched today.
// The fetch that produces these is scoped server-side to the current day and
// the active category.
type SentLog struct {
	SourceID string   `json:"source_id"`
	Category Category `json:"category"`
}

// Snapshot pairs the subjects and today's dispatch logs. The two are fetched
// together and passed around as one value so the exclusion step never runs
// against logs from a different moment than the subjects.
type Snapshot struct {
	Subjects []Subject
	Logs     []SentLog
}

// BuildWorklist produces the ordered list of subjects still due for a reminder
// in the given category. Steps, in order: drop subjects whose id appears in
// the sent logs (at most one reminder per subject per category per day), apply
// the case-insensitive substring search on full_name, then sort — nurturing by
// created_at descending, recurring categories by next occurrence ascending.
//
// Inputs are never mutated; identical inputs produce an identical list.
func BuildWorklist(snap Snapshot, category Category, search string, today time.Time) []Subject {
	sent := make(map[string]struct{}, len(snap.Logs))
	for _, l := range snap.Logs {
		sent[l.SourceID] = struct{}{}
	}

	needle := strings.ToLower(search)
	out := make([]Subject, 0, len(snap.Subjects))
	for _, s := range snap.Subjects {
		if _, dispatched := sent[s.ID]; dispatched {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(s.FullName), needle) {
			continue
		}
		out = append(out, s)
	}

	if category == CategoryNurturing {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i].UpcomingAnchor(category, today)
		b, bok := out[j].UpcomingAnchor(category, today)
		if aok != bok {
			return aok // subjects without an anchor sink to the end
		}
		return a.Before(b)
	})
	return out
}
