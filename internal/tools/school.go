package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/schema"
)

// ClassesTool lists the school's classes.
type ClassesTool struct {
	*base
}

func (t *ClassesTool) Name() string { return "get_classes" }
func (t *ClassesTool) Description() string {
	return "List all classes with their grade and homeroom teachers."
}
func (t *ClassesTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *ClassesTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_classes", params,
		func(ctx context.Context, s schema.Session) ([]schema.Class, error) {
			return s.Classes(ctx)
		}, tagClass)
}

// ClassroomsTool lists the school's physical rooms.
type ClassroomsTool struct {
	*base
}

func (t *ClassroomsTool) Name() string { return "get_classrooms" }
func (t *ClassroomsTool) Description() string {
	return "List all classrooms in the school."
}
func (t *ClassroomsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *ClassroomsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_classrooms", params,
		func(ctx context.Context, s schema.Session) ([]schema.Classroom, error) {
			return s.Classrooms(ctx)
		}, tagClassroom)
}

// SubjectsTool lists the taught subjects.
type SubjectsTool struct {
	*base
}

func (t *SubjectsTool) Name() string { return "get_subjects" }
func (t *SubjectsTool) Description() string {
	return "List all taught subjects with their short codes."
}
func (t *SubjectsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *SubjectsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_subjects", params,
		func(ctx context.Context, s schema.Session) ([]schema.Subject, error) {
			return s.Subjects(ctx)
		}, tagSubject)
}

// PeriodsTool lists the bell schedule.
type PeriodsTool struct {
	*base
}

func (t *PeriodsTool) Name() string { return "get_periods" }
func (t *PeriodsTool) Description() string {
	return "List the bell schedule: period numbers with start and end times."
}
func (t *PeriodsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *PeriodsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_periods", params,
		func(ctx context.Context, s schema.Session) ([]schema.Period, error) {
			return s.Periods(ctx)
		}, tagPeriod)
}
