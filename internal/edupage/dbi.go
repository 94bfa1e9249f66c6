package edupage

import (
	"context"
	"fmt"

	"github.com/edubridge/edubridge/internal/schema"
)

// The dbi blob is the school's directory: everybody and everything the
// logged-in account is allowed to see. It is refreshed together with the
// rest of the userhome payload.

func (c *Client) table(ctx context.Context, name string) ([]map[string]any, error) {
	dbi := c.directory()
	if dbi == nil {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		dbi = c.directory()
	}
	rows := tableRows(dbi[name])
	if rows == nil && dbi[name] == nil {
		return nil, fmt.Errorf("%s directory has no %q table", c.subdomain, name)
	}
	return rows, nil
}

// Students returns the pupils linked to this account. A parent sees their
// children; a student account sees itself. When the directory carries no
// parent links the whole visible list is returned unchanged.
func (c *Client) Students(ctx context.Context) ([]schema.Student, error) {
	rows, err := c.table(ctx, "students")
	if err != nil {
		return nil, err
	}

	uid := c.uid()
	var all, mine []schema.Student
	for _, row := range rows {
		student := schema.Student{
			PersonID: asInt(row["id"]),
			Name:     fullName(row),
			ClassID:  asInt(row["classid"]),
			Number:   asInt(row["numberinclass"]),
		}
		all = append(all, student)
		if uid == 0 {
			continue
		}
		if student.PersonID == uid ||
			asInt(row["parent1id"]) == uid ||
			asInt(row["parent2id"]) == uid ||
			asInt(row["parent3id"]) == uid {
			mine = append(mine, student)
		}
	}
	if len(mine) == 0 {
		return all, nil
	}
	return mine, nil
}

// AllStudents returns every student visible in the school directory.
func (c *Client) AllStudents(ctx context.Context) ([]schema.Student, error) {
	rows, err := c.table(ctx, "students")
	if err != nil {
		return nil, err
	}
	students := make([]schema.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, schema.Student{
			PersonID: asInt(row["id"]),
			Name:     fullName(row),
			ClassID:  asInt(row["classid"]),
			Number:   asInt(row["numberinclass"]),
		})
	}
	return students, nil
}

// Teachers returns the school's teachers.
func (c *Client) Teachers(ctx context.Context) ([]schema.Teacher, error) {
	rows, err := c.table(ctx, "teachers")
	if err != nil {
		return nil, err
	}
	classrooms := c.classroomShorts()

	teachers := make([]schema.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, schema.Teacher{
			PersonID:  asInt(row["id"]),
			Name:      fullName(row),
			Classroom: classrooms[asString(row["classroomid"])],
		})
	}
	return teachers, nil
}

// Classes returns the school's classes with their homeroom teachers.
func (c *Client) Classes(ctx context.Context) ([]schema.Class, error) {
	rows, err := c.table(ctx, "classes")
	if err != nil {
		return nil, err
	}
	teacherNames := make(map[string]string)
	for _, row := range tableRows(c.directory()["teachers"]) {
		teacherNames[asString(row["id"])] = fullName(row)
	}

	classes := make([]schema.Class, 0, len(rows))
	for _, row := range rows {
		var homeroom []string
		for _, key := range []string{"teacherid", "teacher2id"} {
			if name := teacherNames[asString(row[key])]; name != "" {
				homeroom = append(homeroom, name)
			}
		}
		classes = append(classes, schema.Class{
			ClassID:          asInt(row["id"]),
			Name:             asString(row["name"]),
			Short:            asString(row["short"]),
			Grade:            asInt(row["grade"]),
			HomeroomTeachers: homeroom,
		})
	}
	return classes, nil
}

// Classrooms returns the school's physical rooms.
func (c *Client) Classrooms(ctx context.Context) ([]schema.Classroom, error) {
	rows, err := c.table(ctx, "classrooms")
	if err != nil {
		return nil, err
	}
	classrooms := make([]schema.Classroom, 0, len(rows))
	for _, row := range rows {
		classrooms = append(classrooms, schema.Classroom{
			ClassroomID: asInt(row["id"]),
			Name:        asString(row["name"]),
			Short:       asString(row["short"]),
		})
	}
	return classrooms, nil
}

// Subjects returns the taught subjects.
func (c *Client) Subjects(ctx context.Context) ([]schema.Subject, error) {
	rows, err := c.table(ctx, "subjects")
	if err != nil {
		return nil, err
	}
	subjects := make([]schema.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, schema.Subject{
			SubjectID: asInt(row["id"]),
			Name:      asString(row["name"]),
			Short:     asString(row["short"]),
		})
	}
	return subjects, nil
}

// Periods returns the bell schedule.
func (c *Client) Periods(ctx context.Context) ([]schema.Period, error) {
	ringing := c.bells()
	if ringing == nil {
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		ringing = c.bells()
	}
	periods := make([]schema.Period, 0, len(ringing))
	for _, row := range ringing {
		periods = append(periods, schema.Period{
			Period: asInt(row["id"]),
			Start:  asString(row["starttime"]),
			End:    asString(row["endtime"]),
		})
	}
	return periods, nil
}

func (c *Client) classroomShorts() map[string]string {
	shorts := make(map[string]string)
	for _, row := range tableRows(c.directory()["classrooms"]) {
		shorts[asString(row["id"])] = asString(row["short"])
	}
	return shorts
}

func (c *Client) subjectByID(id string) (name, short string) {
	for _, row := range tableRows(c.directory()["subjects"]) {
		if asString(row["id"]) == id {
			return asString(row["name"]), asString(row["short"])
		}
	}
	return "", ""
}

func (c *Client) teacherNamesByID(ids []string) []string {
	names := make(map[string]string)
	for _, row := range tableRows(c.directory()["teachers"]) {
		names[asString(row["id"])] = fullName(row)
	}
	var out []string
	for _, id := range ids {
		if n := names[id]; n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (c *Client) classroomShortsByID(ids []string) []string {
	shorts := c.classroomShorts()
	var out []string
	for _, id := range ids {
		if s := shorts[id]; s != "" {
			out = append(out, s)
		}
	}
	return out
}
