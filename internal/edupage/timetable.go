package edupage

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
)

const dateLayout = "2006-01-02"

// Timetable fetches one day of a class's timetable from the live
// timetable viewer.
func (c *Client) Timetable(ctx context.Context, class schema.Class, day time.Time) ([]schema.Lesson, error) {
	return c.fetchTimetable(ctx, "classes", fmt.Sprintf("%d", abs(class.ClassID)), day)
}

// MyTimetable fetches one day of the logged-in account's own timetable.
// Parent accounts have no timetable of their own; resolve a student and
// use Timetable with their class instead.
func (c *Client) MyTimetable(ctx context.Context, day time.Time) ([]schema.Lesson, error) {
	c.mu.RLock()
	classID := asInt(c.userRow["TriedaID"])
	c.mu.RUnlock()
	if classID == 0 {
		return nil, result.Errorf(result.KindEntityNotFound,
			"this account has no timetable of its own, pass a student or class name")
	}
	return c.fetchTimetable(ctx, "classes", fmt.Sprintf("%d", abs(classID)), day)
}

func (c *Client) fetchTimetable(ctx context.Context, table, id string, day time.Time) ([]schema.Lesson, error) {
	date := day.Format(dateLayout)
	args := []any{nil, map[string]any{
		"year":                 schoolYear(day),
		"datefrom":             date,
		"dateto":               date,
		"table":                table,
		"id":                   id,
		"showColors":           true,
		"showIgroupsInClasses": true,
		"showOrig":             true,
	}}
	body, err := c.postJSON(ctx, "/timetable/server/currenttt.js?__func=curentttGetData", args)
	if err != nil {
		return nil, fmt.Errorf("fetch timetable: %w", err)
	}

	var payload struct {
		R struct {
			Items []map[string]any `json:"ttitems"`
		} `json:"r"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, result.Errorf(result.KindNotAuthenticated,
			"%s returned a non-JSON timetable, the session may have expired", c.subdomain)
	}

	lessons := make([]schema.Lesson, 0, len(payload.R.Items))
	for _, row := range payload.R.Items {
		if asBool(row["removed"]) {
			continue
		}
		name, short := c.subjectByID(asString(row["subjectid"]))
		lesson := schema.Lesson{
			Period:      asInt(row["uniperiod"]),
			Start:       asString(row["starttime"]),
			End:         asString(row["endtime"]),
			Duration:    asInt(row["durationperiods"]),
			Subject:     short,
			SubjectName: name,
			Teachers:    c.teacherNamesByID(asStrings(row["teacherids"])),
			Classrooms:  c.classroomShortsByID(asStrings(row["classroomids"])),
			Groups:      nonEmpty(asStrings(row["groupnames"])),
			Cancelled:   asString(row["type"]) == "absent",
			IsEvent:     asString(row["type"]) == "event",
			Curriculum:  asString(row["curriculum"]),
			OnlineLink:  asString(row["ol_url"]),
		}
		if lesson.Duration == 0 {
			lesson.Duration = 1
		}
		if lesson.SubjectName == "" {
			lesson.SubjectName = asString(row["name"])
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

var reStripTags = regexp.MustCompile(`<[^>]*>`)

// TimetableChanges fetches the substitution board for a day. The endpoint
// only serves rendered HTML, so rows are scraped out of it.
func (c *Client) TimetableChanges(ctx context.Context, day time.Time) ([]schema.TimetableChange, error) {
	date := day.Format(dateLayout)
	args := []any{map[string]any{"date": date, "mode": "classes"}}
	body, err := c.postJSON(ctx, "/substitution/server/viewer.js?__func=getSubstViewerDayDataHtml", args)
	if err != nil {
		return nil, fmt.Errorf("fetch substitutions: %w", err)
	}

	var payload struct {
		R string `json:"r"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, result.Errorf(result.KindNotAuthenticated,
			"%s returned a non-JSON substitution board, the session may have expired", c.subdomain)
	}

	var changes []schema.TimetableChange
	for _, section := range strings.Split(payload.R, `<div class="section`) {
		header, rest, found := strings.Cut(section, `class="rows`)
		if !found {
			continue
		}
		class := stringutils.CollapseSpace(reStripTags.ReplaceAllString(firstTag(header, "header"), " "))
		for _, row := range strings.Split(rest, `<div class="row`)[1:] {
			period := stringutils.CollapseSpace(reStripTags.ReplaceAllString(firstTag(row, "period"), " "))
			info := stringutils.CollapseSpace(reStripTags.ReplaceAllString(firstTag(row, "info"), " "))
			if info == "" {
				continue
			}
			changes = append(changes, schema.TimetableChange{
				Date:   date,
				Period: period,
				Class:  class,
				Info:   info,
			})
		}
	}
	return changes, nil
}

// firstTag returns the inner HTML of the first div whose class contains
// the given marker, or "" when absent.
func firstTag(html, class string) string {
	marker := `class="` + class
	i := strings.Index(html, marker)
	if i < 0 {
		return ""
	}
	rest := html[i:]
	start := strings.Index(rest, ">")
	if start < 0 {
		return ""
	}
	rest = rest[start+1:]
	end := strings.Index(rest, "</div>")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// schoolYear returns the starting calendar year of the school year the
// given day falls in. School years roll over in August.
func schoolYear(day time.Time) int {
	if day.Month() >= time.August {
		return day.Year()
	}
	return day.Year() - 1
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
