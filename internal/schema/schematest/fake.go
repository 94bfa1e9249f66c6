// Package schematest provides a configurable fake schema.Session for tests.
package schematest

import (
	"context"
	"errors"
	"time"

	"github.com/edubridge/edubridge/internal/schema"
)

// ErrNotStubbed is returned by every FakeSession method whose func field is unset.
var ErrNotStubbed = errors.New("schematest: method not stubbed")

// FakeSession implements schema.Session with overridable function fields.
// Methods without a stub return ErrNotStubbed so tests fail loudly when a
// tool touches an endpoint the test did not expect.
type FakeSession struct {
	Name string

	StudentsFunc            func(ctx context.Context) ([]schema.Student, error)
	AllStudentsFunc         func(ctx context.Context) ([]schema.Student, error)
	TeachersFunc            func(ctx context.Context) ([]schema.Teacher, error)
	ClassesFunc             func(ctx context.Context) ([]schema.Class, error)
	ClassroomsFunc          func(ctx context.Context) ([]schema.Classroom, error)
	SubjectsFunc            func(ctx context.Context) ([]schema.Subject, error)
	PeriodsFunc             func(ctx context.Context) ([]schema.Period, error)
	GradesFunc              func(ctx context.Context, term string, year int) ([]schema.Grade, error)
	TimetableFunc           func(ctx context.Context, class schema.Class, day time.Time) ([]schema.Lesson, error)
	MyTimetableFunc         func(ctx context.Context, day time.Time) ([]schema.Lesson, error)
	TimetableChangesFunc    func(ctx context.Context, day time.Time) ([]schema.TimetableChange, error)
	NotificationsFunc       func(ctx context.Context) ([]schema.TimelineEvent, error)
	NotificationHistoryFunc func(ctx context.Context, since time.Time) ([]schema.TimelineEvent, error)
	NewsFunc                func(ctx context.Context) ([]schema.NewsItem, error)
	MealsFunc               func(ctx context.Context, day time.Time) (*schema.Meals, error)
	SendMessageFunc         func(ctx context.Context, recipients []schema.Person, body string) error
	PingFunc                func(ctx context.Context) error
}

var _ schema.Session = (*FakeSession)(nil)

func (f *FakeSession) School() string { return f.Name }

func (f *FakeSession) Students(ctx context.Context) ([]schema.Student, error) {
	if f.StudentsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.StudentsFunc(ctx)
}

func (f *FakeSession) AllStudents(ctx context.Context) ([]schema.Student, error) {
	if f.AllStudentsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.AllStudentsFunc(ctx)
}

func (f *FakeSession) Teachers(ctx context.Context) ([]schema.Teacher, error) {
	if f.TeachersFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.TeachersFunc(ctx)
}

func (f *FakeSession) Classes(ctx context.Context) ([]schema.Class, error) {
	if f.ClassesFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.ClassesFunc(ctx)
}

func (f *FakeSession) Classrooms(ctx context.Context) ([]schema.Classroom, error) {
	if f.ClassroomsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.ClassroomsFunc(ctx)
}

func (f *FakeSession) Subjects(ctx context.Context) ([]schema.Subject, error) {
	if f.SubjectsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.SubjectsFunc(ctx)
}

func (f *FakeSession) Periods(ctx context.Context) ([]schema.Period, error) {
	if f.PeriodsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.PeriodsFunc(ctx)
}

func (f *FakeSession) Grades(ctx context.Context, term string, year int) ([]schema.Grade, error) {
	if f.GradesFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.GradesFunc(ctx, term, year)
}

func (f *FakeSession) Timetable(ctx context.Context, class schema.Class, day time.Time) ([]schema.Lesson, error) {
	if f.TimetableFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.TimetableFunc(ctx, class, day)
}

func (f *FakeSession) MyTimetable(ctx context.Context, day time.Time) ([]schema.Lesson, error) {
	if f.MyTimetableFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.MyTimetableFunc(ctx, day)
}

func (f *FakeSession) TimetableChanges(ctx context.Context, day time.Time) ([]schema.TimetableChange, error) {
	if f.TimetableChangesFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.TimetableChangesFunc(ctx, day)
}

func (f *FakeSession) Notifications(ctx context.Context) ([]schema.TimelineEvent, error) {
	if f.NotificationsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.NotificationsFunc(ctx)
}

func (f *FakeSession) NotificationHistory(ctx context.Context, since time.Time) ([]schema.TimelineEvent, error) {
	if f.NotificationHistoryFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.NotificationHistoryFunc(ctx, since)
}

func (f *FakeSession) News(ctx context.Context) ([]schema.NewsItem, error) {
	if f.NewsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.NewsFunc(ctx)
}

func (f *FakeSession) Meals(ctx context.Context, day time.Time) (*schema.Meals, error) {
	if f.MealsFunc == nil {
		return nil, ErrNotStubbed
	}
	return f.MealsFunc(ctx, day)
}

func (f *FakeSession) SendMessage(ctx context.Context, recipients []schema.Person, body string) error {
	if f.SendMessageFunc == nil {
		return ErrNotStubbed
	}
	return f.SendMessageFunc(ctx, recipients, body)
}

func (f *FakeSession) Ping(ctx context.Context) error {
	if f.PingFunc == nil {
		return ErrNotStubbed
	}
	return f.PingFunc(ctx)
}

// WithStudents returns a FakeSession that serves the given student list.
func WithStudents(school string, students ...schema.Student) *FakeSession {
	return &FakeSession{
		Name: school,
		StudentsFunc: func(context.Context) ([]schema.Student, error) {
			return students, nil
		},
	}
}
