package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/timeline"
)

// UpcomingEventsTool lists exams and school events in the near future.
type UpcomingEventsTool struct {
	*base
}

func (t *UpcomingEventsTool) Name() string { return "get_upcoming_events" }
func (t *UpcomingEventsTool) Description() string {
	return "Get upcoming exams and school events within the next N days, soonest first."
}

func (t *UpcomingEventsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"days_ahead": {
				"type": "integer",
				"description": "How many days ahead to look (default 30)"
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to search every logged-in school."
			}
		}
	}`)
}

func (t *UpcomingEventsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_upcoming_events", func() (any, error) {
		daysAhead := intArg(params, "days_ahead", 30)
		now := time.Now()

		// The backend files upcoming exams under past creation dates, so
		// reach a week back and let the date filter pick the future ones.
		events, failures, err := t.fanOutEvents(ctx, strArg(params, "school", ""), historyFetch(7))
		if err != nil {
			return nil, err
		}

		exams, _ := timeline.Expand("exams")
		school, _ := timeline.Expand("events")
		filtered, err := timeline.Filter(events, timeline.Query{
			Types: append(exams, school...),
			From:  now,
			To:    now.AddDate(0, 0, daysAhead),
		})
		if err != nil {
			return nil, err
		}

		// Filter sorts newest first; upcoming reads better soonest first.
		items := make([]map[string]any, len(filtered))
		for i := range filtered {
			items[i] = timeline.Lean(filtered[len(filtered)-1-i])
		}
		return result.Items(items, len(items), failures), nil
	})
}
