package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/timeline"
)

// timelineParams is the shared filter surface of the timeline tools.
const timelineParams = `{
	"type": "object",
	"properties": {
		"status": {
			"type": "string",
			"enum": ["active", "done", "all"],
			"description": "Filter by status"
		},
		"starred": {
			"type": "string",
			"enum": ["yes", "no", ""],
			"description": "Filter by starred flag"
		},
		"event_type": {
			"type": "string",
			"description": "Comma-separated raw types, e.g. \"sprava,znamka\". Mutually exclusive with category."
		},
		"category": {
			"type": "string",
			"enum": ["homework", "grades", "exams", "messages", "absences", "events", "news"],
			"description": "Human-friendly category filter"
		},
		"date_from": {
			"type": "string",
			"description": "Start of date range (YYYY-MM-DD, inclusive)"
		},
		"date_to": {
			"type": "string",
			"description": "End of date range (YYYY-MM-DD, inclusive)"
		},
		"limit": {
			"type": "integer",
			"description": "Max items to return (0 = unlimited)"
		},
		"offset": {
			"type": "integer",
			"description": "Items to skip, for pagination"
		},
		"include_system": {
			"type": "boolean",
			"description": "Include backend housekeeping events (hidden by default)"
		},
		"school": {
			"type": "string",
			"description": "School subdomain. Omit to query every logged-in school."
		}
	}
}`

// runTimeline executes the shared fetch-merge-filter-project pipeline.
func (b *base) runTimeline(ctx context.Context, action string, params map[string]any,
	defaultStatus string, fetch func(context.Context, schema.Session) ([]schema.TimelineEvent, error)) (string, error) {
	return b.classify.Run(action, func() (any, error) {
		q, err := b.queryFromParams(params, defaultStatus)
		if err != nil {
			return nil, err
		}
		events, failures, err := b.fanOutEvents(ctx, strArg(params, "school", ""), fetch)
		if err != nil {
			return nil, err
		}
		filtered, err := timeline.Filter(events, q)
		if err != nil {
			return nil, err
		}
		items := leanAll(filtered, timeline.Lean)
		return result.Items(items, len(items), failures), nil
	})
}

// TimelineTool shows the visible timeline, defaulting to not-done items.
type TimelineTool struct {
	*base
}

func (t *TimelineTool) Name() string { return "get_timeline" }
func (t *TimelineTool) Description() string {
	return "Get the visible timeline (messages, assignments, grades). Shows not-done items by default; pass status \"all\" for everything."
}
func (t *TimelineTool) Parameters() json.RawMessage { return json.RawMessage(timelineParams) }

func (t *TimelineTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.runTimeline(ctx, "get_timeline", params, schema.StatusActive,
		func(ctx context.Context, s schema.Session) ([]schema.TimelineEvent, error) {
			return s.Notifications(ctx)
		})
}

// NotificationsTool shows recent notifications without a status default.
type NotificationsTool struct {
	*base
}

func (t *NotificationsTool) Name() string { return "get_notifications" }
func (t *NotificationsTool) Description() string {
	return "Get recent notifications. Housekeeping events are hidden unless include_system is set."
}
func (t *NotificationsTool) Parameters() json.RawMessage { return json.RawMessage(timelineParams) }

func (t *NotificationsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.runTimeline(ctx, "get_notifications", params, "",
		func(ctx context.Context, s schema.Session) ([]schema.TimelineEvent, error) {
			return s.Notifications(ctx)
		})
}

// NotificationHistoryTool reaches further back than the visible timeline.
type NotificationHistoryTool struct {
	*base
}

func (t *NotificationHistoryTool) Name() string { return "get_notification_history" }
func (t *NotificationHistoryTool) Description() string {
	return "Get older notifications from the timeline archive, reaching back since_days days (default 30)."
}

func (t *NotificationHistoryTool) Parameters() json.RawMessage {
	// Same filters as the other timeline tools plus the range control.
	var doc map[string]any
	_ = json.Unmarshal([]byte(timelineParams), &doc)
	props := doc["properties"].(map[string]any)
	props["since_days"] = map[string]any{
		"type":        "integer",
		"description": "How many days back to search (default 30)",
	}
	out, _ := json.Marshal(doc)
	return out
}

func (t *NotificationHistoryTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.runTimeline(ctx, "get_notification_history", params, "",
		historyFetch(intArg(params, "since_days", 30)))
}
