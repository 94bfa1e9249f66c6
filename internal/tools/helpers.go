package tools

import (
	"context"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/shared/stringutils"
	"github.com/edubridge/edubridge/internal/timeline"
)

// tagEvent, tagStudent etc. copy a fan-out origin into the record so the
// caller can tell which school every merged item came from.
func tagEvent(e *schema.TimelineEvent, school string) { e.School = school }
func tagStudent(s *schema.Student, school string)     { s.School = school }
func tagTeacher(t *schema.Teacher, school string)     { t.School = school }
func tagClass(c *schema.Class, school string)         { c.School = school }
func tagClassroom(c *schema.Classroom, school string) { c.School = school }
func tagSubject(s *schema.Subject, school string)     { s.School = school }
func tagPeriod(p *schema.Period, school string)       { p.School = school }
func tagGrade(g *schema.Grade, school string)         { g.School = school }
func tagNews(n *schema.NewsItem, school string)       { n.School = school }

// perTenant converts fan-out failures into the JSON error rows that ride
// alongside successful items.
func perTenant(terrs []session.TenantError) []result.PerTenant {
	if len(terrs) == 0 {
		return nil
	}
	out := make([]result.PerTenant, len(terrs))
	for i, te := range terrs {
		out[i] = result.PerTenant{
			School:    te.School,
			ErrorKind: result.KindOf(te.Err),
			Message:   te.Err.Error(),
		}
	}
	return out
}

// queryFromParams builds a timeline query from the shared filter
// arguments. defaultStatus applies when the call passes none; the literal
// "all" clears it.
func (b *base) queryFromParams(params map[string]any, defaultStatus string) (timeline.Query, error) {
	starred, err := triBoolArg(params, "starred")
	if err != nil {
		return timeline.Query{}, err
	}
	from, err := dateArg(params, "date_from")
	if err != nil {
		return timeline.Query{}, err
	}
	to, err := dateArg(params, "date_to")
	if err != nil {
		return timeline.Query{}, err
	}

	status := strArg(params, "status", defaultStatus)
	if status == "all" {
		status = ""
	}

	return timeline.Query{
		Status:        status,
		Starred:       starred,
		Types:         stringutils.SplitCSV(strArg(params, "event_type", "")),
		Category:      strArg(params, "category", ""),
		IncludeSystem: boolArg(params, "include_system", false),
		From:          from,
		To:            to,
		Limit:         intArg(params, "limit", b.limit),
		Offset:        intArg(params, "offset", 0),
	}, nil
}

// fanOutEvents runs a timeline fetch across the selected school(s) and
// returns the merged, origin-tagged events.
func (b *base) fanOutEvents(ctx context.Context, school string, fetch func(context.Context, schema.Session) ([]schema.TimelineEvent, error)) ([]schema.TimelineEvent, []result.PerTenant, error) {
	items, terrs, err := session.FanOut(ctx, b.sessions, school, fetch)
	if err != nil {
		return nil, nil, err
	}
	return session.Values(items, tagEvent), perTenant(terrs), nil
}

// historyFetch returns a fetch closure reaching since_days back into the
// notification history.
func historyFetch(sinceDays int) func(context.Context, schema.Session) ([]schema.TimelineEvent, error) {
	since := time.Now().AddDate(0, 0, -sinceDays)
	return func(ctx context.Context, s schema.Session) ([]schema.TimelineEvent, error) {
		return s.NotificationHistory(ctx, since)
	}
}

// leanAll projects filtered events with the given projector.
func leanAll(events []timeline.Annotated, project func(timeline.Annotated) map[string]any) []map[string]any {
	out := make([]map[string]any, len(events))
	for i, e := range events {
		out[i] = project(e)
	}
	return out
}
