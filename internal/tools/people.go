package tools

import (
	"context"
	"encoding/json"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
)

// schoolParam is the JSON schema every directory tool shares: an optional
// school selector, nothing else.
const schoolParam = `{
	"type": "object",
	"properties": {
		"school": {
			"type": "string",
			"description": "School subdomain to query. Omit to query every logged-in school."
		}
	}
}`

// runList fans a directory fetch out across the selected school(s) and
// renders the merged, origin-tagged items.
func runList[T any](ctx context.Context, b *base, action string, params map[string]any,
	op func(context.Context, schema.Session) ([]T, error), tag func(*T, string)) (string, error) {
	return b.classify.Run(action, func() (any, error) {
		items, terrs, err := session.FanOut(ctx, b.sessions, strArg(params, "school", ""), op)
		if err != nil {
			return nil, err
		}
		values := session.Values(items, tag)
		return result.Items(values, len(values), perTenant(terrs)), nil
	})
}

// MyChildrenTool lists the students linked to the logged-in accounts.
type MyChildrenTool struct {
	*base
}

func (t *MyChildrenTool) Name() string { return "get_my_children" }
func (t *MyChildrenTool) Description() string {
	return "List the students linked to the logged-in account (a parent's children, or the student themself). Use the returned names as student_name in other tools."
}
func (t *MyChildrenTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *MyChildrenTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_my_children", params,
		func(ctx context.Context, s schema.Session) ([]schema.Student, error) {
			return s.Students(ctx)
		}, tagStudent)
}

// StudentsTool lists the students visible to the account.
type StudentsTool struct {
	*base
}

func (t *StudentsTool) Name() string { return "get_students" }
func (t *StudentsTool) Description() string {
	return "List the students visible to this account."
}
func (t *StudentsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *StudentsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_students", params,
		func(ctx context.Context, s schema.Session) ([]schema.Student, error) {
			return s.Students(ctx)
		}, tagStudent)
}

// AllStudentsTool lists the whole student directory.
type AllStudentsTool struct {
	*base
}

func (t *AllStudentsTool) Name() string { return "get_all_students" }
func (t *AllStudentsTool) Description() string {
	return "List every student in the school directory, not just the ones linked to this account. Can be large."
}
func (t *AllStudentsTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *AllStudentsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_all_students", params,
		func(ctx context.Context, s schema.Session) ([]schema.Student, error) {
			return s.AllStudents(ctx)
		}, tagStudent)
}

// TeachersTool lists the school's teachers.
type TeachersTool struct {
	*base
}

func (t *TeachersTool) Name() string { return "get_teachers" }
func (t *TeachersTool) Description() string {
	return "List all teachers with their homeroom classrooms."
}
func (t *TeachersTool) Parameters() json.RawMessage { return json.RawMessage(schoolParam) }

func (t *TeachersTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return runList(ctx, t.base, "get_teachers", params,
		func(ctx context.Context, s schema.Session) ([]schema.Teacher, error) {
			return s.Teachers(ctx)
		}, tagTeacher)
}
