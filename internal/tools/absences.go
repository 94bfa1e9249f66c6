package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/resolve"
	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/timeline"
)

// AbsencesTool extracts absence records from the notification history.
type AbsencesTool struct {
	*base
}

func (t *AbsencesTool) Name() string { return "get_absences" }
func (t *AbsencesTool) Description() string {
	return "Get absence records (absences and excuse notes) from the last N days."
}

func (t *AbsencesTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"since_days": {
				"type": "integer",
				"description": "How many days back to search (default 30)"
			},
			"student_name": {
				"type": "string",
				"description": "Student name to validate context, e.g. \"Jan Novak\""
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to search every logged-in school."
			}
		}
	}`)
}

func (t *AbsencesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_absences", func() (any, error) {
		school := strArg(params, "school", "")

		// The timeline is account-wide; the name only confirms the
		// student exists so a typo fails loudly instead of returning
		// someone else's data.
		if name := strArg(params, "student_name", ""); name != "" {
			if school != "" {
				sess, err := t.sessions.Get(school)
				if err != nil {
					return nil, err
				}
				if _, err := resolve.Student(ctx, sess, name); err != nil {
					return nil, err
				}
			} else if _, owner, err := resolve.StudentAcross(ctx, t.sessions, name); err != nil {
				return nil, err
			} else {
				school = owner
			}
		}

		events, failures, err := t.fanOutEvents(ctx, school,
			historyFetch(intArg(params, "since_days", 30)))
		if err != nil {
			return nil, err
		}
		filtered, err := timeline.Filter(events, timeline.Query{
			Types: []string{"student_absent", "ospravedlnenka"},
			Limit: 200,
		})
		if err != nil {
			return nil, err
		}
		items := leanAll(filtered, timeline.AbsenceRecord)
		return result.Items(items, len(items), failures), nil
	})
}
