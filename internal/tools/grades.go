package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
)

// GradesTool fetches the grade book.
type GradesTool struct {
	*base
}

func (t *GradesTool) Name() string { return "get_grades" }
func (t *GradesTool) Description() string {
	return "Get grades, optionally narrowed to a term, school year or subject."
}

func (t *GradesTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"term": {
				"type": "string",
				"description": "Term: \"P1\" (first half), \"P2\" (second half), or empty for the whole year"
			},
			"year": {
				"type": "integer",
				"description": "Starting calendar year of the school year, e.g. 2025. Omit for the current one."
			},
			"subject": {
				"type": "string",
				"description": "Keep only grades whose subject name contains this text"
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to query every logged-in school."
			}
		}
	}`)
}

func (t *GradesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_grades", func() (any, error) {
		term := strArg(params, "term", "")
		year := intArg(params, "year", 0)

		items, terrs, err := session.FanOut(ctx, t.sessions, strArg(params, "school", ""),
			func(ctx context.Context, s schema.Session) ([]schema.Grade, error) {
				return s.Grades(ctx, term, year)
			})
		if err != nil {
			return nil, err
		}
		grades := session.Values(items, tagGrade)

		if subject := strArg(params, "subject", ""); subject != "" {
			needle := strings.ToLower(subject)
			kept := grades[:0]
			for _, g := range grades {
				if strings.Contains(strings.ToLower(g.Subject), needle) {
					kept = append(kept, g)
				}
			}
			grades = kept
		}
		return result.Items(grades, len(grades), perTenant(terrs)), nil
	})
}
