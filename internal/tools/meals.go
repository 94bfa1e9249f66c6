package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edubridge/edubridge/internal/result"
)

// MealsTool fetches the canteen menu.
type MealsTool struct {
	*base
}

func (t *MealsTool) Name() string { return "get_meals" }
func (t *MealsTool) Description() string {
	return "Get the canteen menu for a day: snack, lunch and afternoon snack."
}

func (t *MealsTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"date": {
				"type": "string",
				"description": "Day to fetch (YYYY-MM-DD, default today)"
			},
			"school": {
				"type": "string",
				"description": "School subdomain when logged in to several"
			}
		}
	}`)
}

func (t *MealsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_meals", func() (any, error) {
		sess, err := t.sessions.Get(strArg(params, "school", ""))
		if err != nil {
			return nil, err
		}
		day, err := dateArg(params, "date")
		if err != nil {
			return nil, err
		}
		if day.IsZero() {
			day = time.Now()
		}

		meals, err := sess.Meals(ctx, day)
		if err != nil {
			return nil, err
		}
		return result.Object(map[string]any{
			"date":  day.Format("2006-01-02"),
			"meals": meals,
		}), nil
	})
}
