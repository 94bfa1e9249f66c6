// Package resolve turns loosely spelled human names into canonical backend
// records, locally or across every registered school.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
)

// match implements the two-phase policy over a list of display names:
// case-insensitive exact match first, then case-insensitive substring
// (query contained in the name, never the other way around). Each phase
// must produce exactly one winner; more than one at either phase is
// ambiguous and lists every candidate.
func match(query string, names []string) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, result.Errorf(result.KindInvalidQuery, "empty name")
	}
	q := strings.ToLower(query)

	var exact, partial []int
	for i, name := range names {
		lower := strings.ToLower(name)
		if lower == q {
			exact = append(exact, i)
		} else if strings.Contains(lower, q) {
			partial = append(partial, i)
		}
	}

	pick := func(idx []int) (int, error) {
		if len(idx) == 1 {
			return idx[0], nil
		}
		matched := make([]string, len(idx))
		for i, j := range idx {
			matched[i] = names[j]
		}
		return 0, &result.Error{
			Kind:    result.KindAmbiguousEntity,
			Message: fmt.Sprintf("ambiguous name %q, matches: %s", query, strings.Join(matched, ", ")),
			Names:   matched,
		}
	}

	switch {
	case len(exact) > 0:
		return pick(exact)
	case len(partial) > 0:
		return pick(partial)
	default:
		return 0, result.Errorf(result.KindEntityNotFound, "%q not found", query)
	}
}

// Student resolves a student by name within one school's session.
func Student(ctx context.Context, sess schema.Session, name string) (schema.Student, error) {
	students, err := sess.Students(ctx)
	if err != nil {
		return schema.Student{}, fmt.Errorf("list students: %w", err)
	}
	if len(students) == 0 {
		return schema.Student{}, result.Errorf(result.KindEntityNotFound,
			"no students visible on %q, are you logged in as a parent or student?", sess.School())
	}

	names := make([]string, len(students))
	for i, s := range students {
		names[i] = s.Name
	}
	i, err := match(name, names)
	if err != nil {
		return schema.Student{}, err
	}
	return students[i], nil
}

// Teacher resolves a teacher by name within one school's session, under
// the same two-phase policy as Student.
func Teacher(ctx context.Context, sess schema.Session, name string) (schema.Teacher, error) {
	teachers, err := sess.Teachers(ctx)
	if err != nil {
		return schema.Teacher{}, fmt.Errorf("list teachers: %w", err)
	}
	names := make([]string, len(teachers))
	for i, t := range teachers {
		names[i] = t.Name
	}
	i, err := match(name, names)
	if err != nil {
		return schema.Teacher{}, err
	}
	return teachers[i], nil
}

// StudentAcross resolves a student against every registered school in login
// order. The first school with a non-ambiguous match wins and its subdomain
// is returned alongside the student. Ambiguity anywhere, with no success
// elsewhere, propagates as-is; backend failures outrank plain not-found.
func StudentAcross(ctx context.Context, reg *session.Registry, name string) (schema.Student, string, error) {
	entries := reg.All()
	if len(entries) == 0 {
		return schema.Student{}, "", result.Errorf(result.KindNotAuthenticated, "not logged in to any school")
	}

	var ambiguous, failed error
	for _, e := range entries {
		student, err := Student(ctx, e.Session, name)
		if err == nil {
			return student, e.School, nil
		}
		switch result.KindOf(err) {
		case result.KindEntityNotFound:
			// keep looking
		case result.KindAmbiguousEntity:
			if ambiguous == nil {
				ambiguous = err
			}
		case result.KindInvalidQuery:
			return schema.Student{}, "", err
		default:
			if failed == nil {
				failed = err
			}
		}
	}

	if ambiguous != nil {
		return schema.Student{}, "", ambiguous
	}
	if failed != nil {
		return schema.Student{}, "", failed
	}
	return schema.Student{}, "", result.Errorf(result.KindEntityNotFound,
		"student %q not found in any of the %d schools", name, len(entries))
}

// ClassForStudent resolves a student and then the class they belong to.
// Resolution errors pass through with their kind unchanged. Class IDs are
// matched tolerantly of sign: the backend reports negative IDs for some
// archived views.
func ClassForStudent(ctx context.Context, sess schema.Session, name string) (schema.Student, schema.Class, error) {
	student, err := Student(ctx, sess, name)
	if err != nil {
		return schema.Student{}, schema.Class{}, err
	}
	if student.ClassID == 0 {
		return student, schema.Class{}, result.Errorf(result.KindEntityNotFound,
			"student %q has no class on record", student.Name)
	}

	classes, err := sess.Classes(ctx)
	if err != nil {
		return student, schema.Class{}, fmt.Errorf("list classes: %w", err)
	}
	byID := make(map[int]schema.Class, len(classes)*2)
	for _, c := range classes {
		byID[c.ClassID] = c
		byID[abs(c.ClassID)] = c
	}

	cls, ok := byID[student.ClassID]
	if !ok {
		cls, ok = byID[abs(student.ClassID)]
	}
	if !ok {
		return student, schema.Class{}, result.Errorf(result.KindEntityNotFound,
			"class %d not found for student %q", student.ClassID, student.Name)
	}
	return student, cls, nil
}

// Class resolves a class by its exact (case-insensitive) name, listing the
// available classes when nothing matches.
func Class(ctx context.Context, sess schema.Session, name string) (schema.Class, error) {
	classes, err := sess.Classes(ctx)
	if err != nil {
		return schema.Class{}, fmt.Errorf("list classes: %w", err)
	}
	for _, c := range classes {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	available := make([]string, len(classes))
	for i, c := range classes {
		available[i] = c.Name
	}
	return schema.Class{}, &result.Error{
		Kind:    result.KindEntityNotFound,
		Message: fmt.Sprintf("class %q not found", name),
		Names:   available,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
