package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edubridge/edubridge/internal/resolve"
	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/timeline"
)

// StudentSummaryTool gathers grades, homework, exams, absences and
// messages for one student in a single call.
type StudentSummaryTool struct {
	*base
}

func (t *StudentSummaryTool) Name() string { return "get_student_summary" }
func (t *StudentSummaryTool) Description() string {
	return "Get a comprehensive summary for a student: recent grades, homework, exams, absences and messages in one call."
}

func (t *StudentSummaryTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"student_name": {
				"type": "string",
				"description": "Student name, e.g. \"Jan Novak\". Use get_my_children to find names."
			},
			"since_days": {
				"type": "integer",
				"description": "How many days back to include (default 14)"
			},
			"school": {
				"type": "string",
				"description": "School subdomain. Omit to locate the student across every logged-in school."
			}
		}
	}`)
}

func (t *StudentSummaryTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.classify.Run("get_student_summary", func() (any, error) {
		sinceDays := intArg(params, "since_days", 14)
		since := time.Now().AddDate(0, 0, -sinceDays)
		school := strArg(params, "school", "")

		var student *schema.Student
		var class *schema.Class
		if name := strArg(params, "student_name", ""); name != "" {
			if school == "" {
				_, owner, err := resolve.StudentAcross(ctx, t.sessions, name)
				if err != nil {
					return nil, err
				}
				school = owner
			}
			sess, err := t.sessions.Get(school)
			if err != nil {
				return nil, err
			}
			s, cls, err := resolve.ClassForStudent(ctx, sess, name)
			if err != nil {
				return nil, err
			}
			student, class = &s, &cls
		}

		sess, err := t.sessions.Get(school)
		if err != nil {
			return nil, err
		}

		events, err := sess.NotificationHistory(ctx, since)
		if err != nil {
			return nil, err
		}
		homework := filterSection(events, []string{"homework", "etesthw"}, 100)
		exams := filterSection(events, []string{"bexam", "sexam", "oexam", "rexam", "pexam", "testing"}, 100)
		absences := filterSection(events, []string{"student_absent", "ospravedlnenka"}, 100)
		messages := filterSection(events, []string{"sprava"}, 50)

		// Grades come from the grade book, which is richer than the
		// timeline. A failure here loses one section, not the summary.
		var grades []schema.Grade
		if all, err := sess.Grades(ctx, "", 0); err == nil {
			cutoff := since.Format("2006-01-02")
			for _, g := range all {
				if g.Date == "" || g.Date >= cutoff {
					grades = append(grades, g)
				}
			}
		}

		return result.Object(map[string]any{
			"student":  student,
			"class":    class,
			"school":   sess.School(),
			"period":   fmt.Sprintf("last %d days (since %s)", sinceDays, since.Format("2006-01-02")),
			"grades":   grades,
			"homework": leanAll(homework, timeline.HomeworkFields),
			"exams":    leanAll(exams, timeline.Lean),
			"absences": leanAll(absences, timeline.AbsenceRecord),
			"messages": leanAll(messages, timeline.Lean),
		}), nil
	})
}

// filterSection partitions the shared event fetch by raw type. The query
// cannot fail: types are literal and the bounds are constants.
func filterSection(events []schema.TimelineEvent, types []string, limit int) []timeline.Annotated {
	filtered, err := timeline.Filter(events, timeline.Query{Types: types, Limit: limit})
	if err != nil {
		return nil
	}
	return filtered
}
