package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
	"github.com/edubridge/edubridge/internal/timeline"
)

// assignmentTypes is every raw event type that carries graded work.
var assignmentTypes = []string{"homework", "etesthw", "bexam", "sexam", "oexam", "rexam", "pexam", "testing"}

const homeworkParams = `{
	"type": "object",
	"properties": {
		"since_days": {
			"type": "integer",
			"description": "How many days back to search (default 30)"
		},
		"status": {
			"type": "string",
			"enum": ["active", "done", ""],
			"description": "Only not-done (\"active\"), only done, or everything (default)"
		},
		"school": {
			"type": "string",
			"description": "School subdomain. Omit to search every logged-in school."
		}
	}
}`

// HomeworkTool extracts homework from the notification history.
type HomeworkTool struct {
	*base
}

func (t *HomeworkTool) Name() string { return "get_homework" }
func (t *HomeworkTool) Description() string {
	return "Get homework from the last N days with title, subject and due date."
}
func (t *HomeworkTool) Parameters() json.RawMessage { return json.RawMessage(homeworkParams) }

func (t *HomeworkTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_homework", func() (any, error) {
		events, failures, err := t.fanOutEvents(ctx, strArg(params, "school", ""),
			historyFetch(intArg(params, "since_days", 30)))
		if err != nil {
			return nil, err
		}
		filtered, err := timeline.Filter(events, timeline.Query{
			Types:  []string{"homework", "etesthw"},
			Status: strArg(params, "status", ""),
			Limit:  200,
		})
		if err != nil {
			return nil, err
		}
		items := leanAll(filtered, timeline.HomeworkFields)
		return result.Items(items, len(items), failures), nil
	})
}

// AssignmentsTool is the broader sibling of HomeworkTool: homework plus
// every kind of exam and test.
type AssignmentsTool struct {
	*base
}

func (t *AssignmentsTool) Name() string { return "get_assignments" }
func (t *AssignmentsTool) Description() string {
	return "Get all assignments (homework, tests, exams, projects) from the last N days. event_type narrows to specific raw types: homework, etesthw, bexam, sexam, oexam, rexam, pexam, testing."
}

func (t *AssignmentsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"since_days": {
				"type": "integer",
				"description": "How many days back to search (default 30)"
			},
			"status": {
				"type": "string",
				"enum": ["active", "done", ""],
				"description": "Only not-done (\"active\"), only done, or everything (default)"
			},
			"event_type": {
				"type": "string",
				"description": "Comma-separated raw types to keep, e.g. \"bexam,testing\""
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to search every logged-in school."
			}
		}
	}`)
}

func (t *AssignmentsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_assignments", func() (any, error) {
		events, failures, err := t.fanOutEvents(ctx, strArg(params, "school", ""),
			historyFetch(intArg(params, "since_days", 30)))
		if err != nil {
			return nil, err
		}

		types := stringutils.SplitCSV(strArg(params, "event_type", ""))
		if len(types) == 0 {
			types = assignmentTypes
		}
		filtered, err := timeline.Filter(events, timeline.Query{
			Types:  types,
			Status: strArg(params, "status", ""),
			Limit:  200,
		})
		if err != nil {
			return nil, err
		}
		items := leanAll(filtered, timeline.AssignmentFields)
		return result.Items(items, len(items), failures), nil
	})
}
