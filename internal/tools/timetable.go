package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/edubridge/edubridge/internal/resolve"
	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
)

const timetableParams = `{
	"type": "object",
	"properties": {
		"student_name": {
			"type": "string",
			"description": "Student whose class timetable to fetch, e.g. \"Jan Novak\""
		},
		"class_name": {
			"type": "string",
			"description": "Class name, e.g. \"4.A\". Overrides student_name."
		},
		"date": {
			"type": "string",
			"description": "Day to fetch (YYYY-MM-DD, default today)"
		},
		"school": {
			"type": "string",
			"description": "School subdomain when logged in to several"
		}
	}
}`

// fetchTimetableDay fetches one day of the timetable selected by the
// class_name / student_name arguments, falling back to the account's own
// timetable when neither is given.
func fetchTimetableDay(ctx context.Context, sess schema.Session, params map[string]any, day time.Time) ([]schema.Lesson, string, error) {
	if className := strArg(params, "class_name", ""); className != "" {
		cls, err := resolve.Class(ctx, sess, className)
		if err != nil {
			return nil, "", err
		}
		lessons, err := sess.Timetable(ctx, cls, day)
		return lessons, cls.Name, err
	}
	if studentName := strArg(params, "student_name", ""); studentName != "" {
		_, cls, err := resolve.ClassForStudent(ctx, sess, studentName)
		if err != nil {
			return nil, "", err
		}
		lessons, err := sess.Timetable(ctx, cls, day)
		return lessons, cls.Name, err
	}
	lessons, err := sess.MyTimetable(ctx, day)
	return lessons, "", err
}

// TimetableTool fetches one day of a class timetable.
type TimetableTool struct {
	*base
}

func (t *TimetableTool) Name() string { return "get_timetable" }
func (t *TimetableTool) Description() string {
	return "Get the timetable for a day. Pass student_name or class_name to pick whose; omit both for the account's own timetable."
}
func (t *TimetableTool) Parameters() json.RawMessage { return json.RawMessage(timetableParams) }

func (t *TimetableTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_timetable", func() (any, error) {
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

		lessons, class, err := fetchTimetableDay(ctx, sess, params, day)
		if err != nil {
			return nil, err
		}
		return result.Object(map[string]any{
			"date":    day.Format("2006-01-02"),
			"class":   class,
			"count":   len(lessons),
			"lessons": lessons,
		}), nil
	})
}

// NextWeekTimetableTool fetches Monday through Friday of the coming week.
type NextWeekTimetableTool struct {
	*base
}

func (t *NextWeekTimetableTool) Name() string { return "get_next_week_timetable" }
func (t *NextWeekTimetableTool) Description() string {
	return "Get the full timetable for next week (Monday to Friday), one entry per school day."
}
func (t *NextWeekTimetableTool) Parameters() json.RawMessage { return json.RawMessage(timetableParams) }

func (t *NextWeekTimetableTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_next_week_timetable", func() (any, error) {
		sess, err := t.sessions.Get(strArg(params, "school", ""))
		if err != nil {
			return nil, err
		}

		monday := nextMonday(time.Now())
		var days []map[string]any
		var class string
		for i := 0; i < 5; i++ {
			day := monday.AddDate(0, 0, i)
			lessons, cls, err := fetchTimetableDay(ctx, sess, params, day)
			if err != nil {
				return nil, err
			}
			class = cls
			days = append(days, map[string]any{
				"date":    day.Format("2006-01-02"),
				"weekday": day.Weekday().String(),
				"lessons": lessons,
			})
		}
		return result.Object(map[string]any{
			"week_of": monday.Format("2006-01-02"),
			"class":   class,
			"days":    days,
		}), nil
	})
}

// nextMonday returns the Monday after the given day's week.
func nextMonday(now time.Time) time.Time {
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return now.AddDate(0, 0, daysAhead)
}

// TimetableChangesTool fetches the substitution board.
type TimetableChangesTool struct {
	*base
}

func (t *TimetableChangesTool) Name() string { return "get_timetable_changes" }
func (t *TimetableChangesTool) Description() string {
	return "Get timetable changes (substitutions, cancellations) for a day."
}

func (t *TimetableChangesTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"date": {
				"type": "string",
				"description": "Day to check (YYYY-MM-DD, default today)"
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to check every logged-in school."
			}
		}
	}`)
}

func (t *TimetableChangesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_timetable_changes", func() (any, error) {
		day, err := dateArg(params, "date")
		if err != nil {
			return nil, err
		}
		if day.IsZero() {
			day = time.Now()
		}

		items, terrs, err := session.FanOut(ctx, t.sessions, strArg(params, "school", ""),
			func(ctx context.Context, s schema.Session) ([]schema.TimetableChange, error) {
				return s.TimetableChanges(ctx, day)
			})
		if err != nil {
			return nil, err
		}
		changes := session.Values(items, func(c *schema.TimetableChange, school string) { c.School = school })
		return result.Items(changes, len(changes), perTenant(terrs)), nil
	})
}
