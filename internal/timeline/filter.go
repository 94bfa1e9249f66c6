package timeline

import (
	"sort"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

// Query selects and paginates timeline events. Zero values mean "don't
// filter on this".
type Query struct {
	// Status filters on the event status string ("active", "done").
	Status string
	// Starred, when non-nil, keeps only events whose starred flag matches.
	Starred *bool
	// Types keeps only events with one of these raw type values. Unknown
	// values are accepted literally and simply match nothing.
	Types []string
	// Category is a human-friendly label expanded to raw types. Mutually
	// exclusive with Types.
	Category string
	// IncludeSystem keeps backend housekeeping events that are otherwise
	// dropped when no type filter is in play.
	IncludeSystem bool
	// From and To bound the event date, inclusive, comparing dates only.
	From time.Time
	To   time.Time
	// Limit caps the result after Offset is applied. Zero means unlimited.
	Limit  int
	Offset int
}

// Annotated is a timeline event carrying its resolved category labels.
type Annotated struct {
	schema.TimelineEvent
	Categories []string `json:"categories,omitempty"`
}

// Filter applies a query to a batch of events: type selection, status,
// starred and date-range predicates, then a stable newest-first sort,
// then offset/limit pagination. Removed events never survive. The input
// slice is not modified.
func Filter(events []schema.TimelineEvent, q Query) ([]Annotated, error) {
	if q.Limit < 0 || q.Offset < 0 {
		return nil, result.Errorf(result.KindInvalidQuery,
			"limit and offset must not be negative (limit=%d, offset=%d)", q.Limit, q.Offset)
	}
	if q.Category != "" && len(q.Types) > 0 {
		return nil, result.Errorf(result.KindInvalidQuery,
			"category and raw event types are mutually exclusive")
	}

	// Effective type policy: an explicit category or type list is the
	// whole filter; otherwise everything passes except housekeeping
	// types, unless those were asked for.
	var allowed map[string]bool
	switch {
	case q.Category != "":
		types, err := Expand(q.Category)
		if err != nil {
			return nil, err
		}
		allowed = toSet(types)
	case len(q.Types) > 0:
		allowed = toSet(q.Types)
	}

	kept := make([]Annotated, 0, len(events))
	for _, e := range events {
		if e.Removed {
			continue
		}
		if allowed != nil {
			if !allowed[e.Type] {
				continue
			}
		} else if !q.IncludeSystem && IsSystem(e.Type) {
			continue
		}
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		if q.Starred != nil && e.Starred != *q.Starred {
			continue
		}
		if !inRange(e.Timestamp, q.From, q.To) {
			continue
		}
		kept = append(kept, Annotated{TimelineEvent: e, Categories: CategoriesFor(e.Type)})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.After(kept[j].Timestamp)
	})

	if q.Offset >= len(kept) {
		return []Annotated{}, nil
	}
	kept = kept[q.Offset:]
	if q.Limit > 0 && len(kept) > q.Limit {
		kept = kept[:q.Limit]
	}
	return kept, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// inRange compares dates only, both bounds inclusive. Events with no
// timestamp pass any range, matching how the backend leaves some
// housekeeping rows undated.
func inRange(ts, from, to time.Time) bool {
	if ts.IsZero() {
		return true
	}
	day := dateOf(ts)
	if !from.IsZero() && day.Before(dateOf(from)) {
		return false
	}
	if !to.IsZero() && day.After(dateOf(to)) {
		return false
	}
	return true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
