package timeline

import (
	"time"

	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
)

// maxTextLen caps free-form event text in lean projections. Long messages
// stay readable in the full timeline view, not in list output.
const maxTextLen = 500

// Lean flattens a timeline event into the concise shape list tools return.
func Lean(e Annotated) map[string]any {
	out := map[string]any{
		"event_id":   e.EventID,
		"type":       e.Type,
		"timestamp":  isoOrNil(e.Timestamp),
		"text":       stringutils.Truncate(e.Text, maxTextLen),
		"author":     e.Author,
		"is_done":    e.Status == schema.StatusDone,
		"is_starred": e.Starred,
		"created_at": isoOrNil(e.CreatedAt),
	}
	if len(e.Categories) > 0 {
		out["categories"] = e.Categories
	}
	if e.School != "" {
		out["school"] = e.School
	}
	return out
}

// HomeworkFields extends the lean projection with the homework-specific
// fields buried in the event's payload. The backend is inconsistent about
// key names across school configurations, so each field tries every key
// observed in the wild.
func HomeworkFields(e Annotated) map[string]any {
	out := Lean(e)

	title := payloadString(e.Data, "nazov", "title", "name")
	if title == "" {
		title = stringutils.Truncate(e.Text, maxTextLen)
	}
	out["title"] = title
	out["subject"] = payloadString(e.Data, "predmetNazov", "nazov_predmetu", "subject_name", "predmet")
	out["due_date"] = payloadString(e.Data, "dateto", "date_to", "date")
	return out
}

// AssignmentFields is the broader variant of HomeworkFields used for exams
// and tests, adding grading metadata.
func AssignmentFields(e Annotated) map[string]any {
	out := HomeworkFields(e)
	out["max_points"] = payload(e.Data, "maxPoints", "max_points")
	out["description"] = payloadString(e.Data, "popis", "description")
	return out
}

// AbsenceRecord projects an absence event into a date/type/text/author row.
// The ospravedlnenka type is an excuse note; everything else in the
// absences category is a plain absence.
func AbsenceRecord(e Annotated) map[string]any {
	kind := "absent"
	if e.Type == "ospravedlnenka" {
		kind = "excused"
	}
	out := map[string]any{
		"date":   isoOrNil(e.Timestamp),
		"type":   kind,
		"text":   e.Text,
		"author": e.Author,
	}
	if e.School != "" {
		out["school"] = e.School
	}
	return out
}

func isoOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// payload returns the first non-nil value among the given payload keys.
func payload(data map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// payloadString is payload restricted to non-empty strings.
func payloadString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
