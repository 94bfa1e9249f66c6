package schema

import (
	"context"
	"time"
)

// Session is a live authenticated handle to one school's backend. One
// Session exists per registered school; the session registry owns it and
// every other component borrows it for the duration of a single call.
//
// All methods hit the backend live, nothing is cached across calls, and
// they may block on network I/O or fail with backend errors.
type Session interface {
	// School returns the subdomain this session is authenticated against.
	School() string

	Students(ctx context.Context) ([]Student, error)
	AllStudents(ctx context.Context) ([]Student, error)
	Teachers(ctx context.Context) ([]Teacher, error)
	Classes(ctx context.Context) ([]Class, error)
	Classrooms(ctx context.Context) ([]Classroom, error)
	Subjects(ctx context.Context) ([]Subject, error)
	Periods(ctx context.Context) ([]Period, error)

	Grades(ctx context.Context, term string, year int) ([]Grade, error)

	Timetable(ctx context.Context, class Class, day time.Time) ([]Lesson, error)
	MyTimetable(ctx context.Context, day time.Time) ([]Lesson, error)
	TimetableChanges(ctx context.Context, day time.Time) ([]TimetableChange, error)

	// Notifications returns the currently visible timeline.
	Notifications(ctx context.Context) ([]TimelineEvent, error)
	// NotificationHistory returns timeline events created since the given day.
	NotificationHistory(ctx context.Context, since time.Time) ([]TimelineEvent, error)

	News(ctx context.Context) ([]NewsItem, error)
	Meals(ctx context.Context, day time.Time) (*Meals, error)

	SendMessage(ctx context.Context, recipients []Person, body string) error

	// Ping performs a cheap authenticated request so the backend keeps the
	// session cookies alive.
	Ping(ctx context.Context) error
}
