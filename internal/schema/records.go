package schema

import "time"

// Student is the lean record for one pupil. School is set only when the
// record was merged from a multi-school fan-out.
type Student struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
	ClassID  int    `json:"class_id"`
	Number   int    `json:"number,omitempty"`
	School   string `json:"school,omitempty"`
}

// Teacher is the lean record for one teacher.
type Teacher struct {
	PersonID  int    `json:"person_id"`
	Name      string `json:"name"`
	Classroom string `json:"classroom,omitempty"`
	School    string `json:"school,omitempty"`
}

// Class is the lean record for one class (a group of students).
type Class struct {
	ClassID          int      `json:"class_id"`
	Name             string   `json:"name"`
	Short            string   `json:"short,omitempty"`
	Grade            int      `json:"grade,omitempty"`
	HomeroomTeachers []string `json:"homeroom_teachers,omitempty"`
	School           string   `json:"school,omitempty"`
}

// Classroom is the lean record for one physical room.
type Classroom struct {
	ClassroomID int    `json:"classroom_id"`
	Name        string `json:"name"`
	Short       string `json:"short,omitempty"`
	School      string `json:"school,omitempty"`
}

// Subject is the lean record for one taught subject.
type Subject struct {
	SubjectID int    `json:"subject_id"`
	Name      string `json:"name"`
	Short     string `json:"short,omitempty"`
	School    string `json:"school,omitempty"`
}

// Period is one slot of the bell schedule.
type Period struct {
	Period int    `json:"period"`
	Start  string `json:"start"`
	End    string `json:"end"`
	School string `json:"school,omitempty"`
}

// Grade is the lean record for one mark, including the statistics the
// backend publishes alongside it.
type Grade struct {
	EventID    string  `json:"event_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	Grade      string  `json:"grade,omitempty"`
	Comment    string  `json:"comment,omitempty"`
	Date       string  `json:"date,omitempty"`
	Subject    string  `json:"subject,omitempty"`
	SubjectID  int     `json:"subject_id,omitempty"`
	Teacher    string  `json:"teacher,omitempty"`
	MaxPoints  float64 `json:"max_points,omitempty"`
	Importance float64 `json:"importance,omitempty"`
	Verbal     bool    `json:"verbal,omitempty"`
	Percent    float64 `json:"percent,omitempty"`
	ClassAvg   float64 `json:"class_avg,omitempty"`
	School     string  `json:"school,omitempty"`
}

// Lesson is the lean record for one timetable slot.
type Lesson struct {
	Period      int      `json:"period,omitempty"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	SubjectName string   `json:"subject_name,omitempty"`
	Teachers    []string `json:"teachers,omitempty"`
	Classrooms  []string `json:"classrooms,omitempty"`
	Groups      []string `json:"groups,omitempty"`
	Cancelled   bool     `json:"cancelled,omitempty"`
	IsEvent     bool     `json:"is_event,omitempty"`
	Curriculum  string   `json:"curriculum,omitempty"`
	OnlineLink  string   `json:"online_lesson_link,omitempty"`
}

// TimetableChange is one substitution/cancellation entry for a day.
type TimetableChange struct {
	Date   string `json:"date"`
	Period string `json:"period,omitempty"`
	Class  string `json:"class,omitempty"`
	Info   string `json:"info"`
	School string `json:"school,omitempty"`
}

// Menu is one dish on a meal menu.
type Menu struct {
	Name      string `json:"name"`
	Allergens string `json:"allergens,omitempty"`
	Weight    string `json:"weight,omitempty"`
	Number    string `json:"number,omitempty"`
}

// Meal is one serving slot (snack, lunch, afternoon snack) of a day.
type Meal struct {
	Title       string `json:"title,omitempty"`
	Date        string `json:"date,omitempty"`
	ServedFrom  string `json:"served_from,omitempty"`
	ServedTo    string `json:"served_to,omitempty"`
	OrderedMeal string `json:"ordered_meal,omitempty"`
	Menus       []Menu `json:"menus,omitempty"`
}

// Meals groups the serving slots of one day.
type Meals struct {
	Snack          *Meal `json:"snack,omitempty"`
	Lunch          *Meal `json:"lunch,omitempty"`
	AfternoonSnack *Meal `json:"afternoon_snack,omitempty"`
}

// NewsItem is one entry extracted from the school's public news page.
type NewsItem struct {
	Title  string `json:"title,omitempty"`
	Text   string `json:"text"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
	School string `json:"school,omitempty"`
}

// Person identifies a message recipient. Role distinguishes the backend's
// teacher and student address formats.
type Person struct {
	PersonID int    `json:"person_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Person roles.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// TimelineEvent is one raw entry of the backend's heterogeneous notification
// stream (homework, grades, messages, absences, operational noise, …).
// Type holds the backend's raw event-type code; Data carries the untyped
// per-type payload.
type TimelineEvent struct {
	EventID   string         `json:"event_id,omitempty"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Text      string         `json:"text,omitempty"`
	Author    string         `json:"author,omitempty"`
	Status    string         `json:"status,omitempty"`
	Starred   bool           `json:"starred,omitempty"`
	Removed   bool           `json:"-"`
	CreatedAt time.Time      `json:"created_at,omitzero"`
	Data      map[string]any `json:"-"`
	School    string         `json:"school,omitempty"`
}

// Timeline event statuses as the Edupage client reports them. The filter
// engine treats status as an opaque string, so backends may extend this.
const (
	StatusActive = "active"
	StatusDone   = "done"
)
