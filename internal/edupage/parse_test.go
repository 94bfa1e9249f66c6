package edupage

import (
	"context"
	"testing"
	"time"

	"github.com/edubridge/edubridge/internal/schema"
)

const userhomePage = `<html><script>
$j(document).ready(function() { new edupage.userhome({"userrow":{"UserID":"777","p_meno":"Parent","TriedaID":""},
"dbi":{
  "teachers":{"11":{"id":"11","firstname":"Anna","lastname":"Vargova","classroomid":"5"}},
  "classes":{"22":{"id":"22","name":"4.A","short":"4.A","grade":"4","teacherid":"11"}},
  "classrooms":{"5":{"id":"5","name":"Room 5","short":"R5"}},
  "subjects":{"3":{"id":"3","name":"Matematika","short":"MAT"}},
  "students":{
    "31":{"id":"31","firstname":"Jan","lastname":"Novak","classid":"22","numberinclass":"4","parent1id":"777"},
    "32":{"id":"32","firstname":"Eva","lastname":"Mala","classid":"22","numberinclass":"7","parent1id":"888"}
  }
},
"items":[
  {"timelineid":"9001","typ":"sprava","timestamp":"2026-03-02 08:15:00","cas_pridania":"2026-03-02 08:15:00","text":"Dobry den","vlastnik_meno":"Anna Vargova","data":"{\"Value\":1}"},
  {"timelineid":"9002","typ":"homework","timestamp":"2026-03-03 07:00:00","text":"DU str. 12","vybavene":"1","data":{"nazov":"DU","dateto":"2026-03-05"}},
  {"timelineid":"9003","typ":"sprava","timestamp":"2026-03-01 10:00:00","text":"stale","removed":"1"}
],
"zvonenia":[{"id":"1","starttime":"08:00","endtime":"08:45"},{"id":"2","starttime":"08:55","endtime":"09:40"}],
"gsechash":"abc123"});
});</script></html>`

func loggedInClient(t *testing.T) *Client {
	t.Helper()
	c := &Client{subdomain: "gymba"}
	if err := c.loadUserhome(userhomePage); err != nil {
		t.Fatalf("loadUserhome: %v", err)
	}
	return c
}

func TestLoadUserhome(t *testing.T) {
	c := loggedInClient(t)
	if c.userID != 777 {
		t.Errorf("expected user id 777, got %d", c.userID)
	}
	if c.gsecHash != "abc123" {
		t.Errorf("expected gsec hash, got %q", c.gsecHash)
	}
	if len(c.items) != 3 {
		t.Errorf("expected 3 timeline items, got %d", len(c.items))
	}
}

func TestLoadUserhome_MissingBlob(t *testing.T) {
	c := &Client{subdomain: "gymba"}
	if err := c.loadUserhome("<html>login please</html>"); err == nil {
		t.Error("expected an error for a page without the embedded payload")
	}
}

func TestStudents_ParentSeesOwnChildren(t *testing.T) {
	c := loggedInClient(t)
	mine, err := c.Students(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Name != "Jan Novak" {
		t.Fatalf("parent 777 must see only their child, got %+v", mine)
	}
	if mine[0].ClassID != 22 || mine[0].Number != 4 {
		t.Errorf("class/number not mapped: %+v", mine[0])
	}

	all, err := c.AllStudents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("expected the full directory, got %d students", len(all))
	}
}

func TestClasses_HomeroomTeacher(t *testing.T) {
	c := loggedInClient(t)
	classes, err := c.Classes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	cls := classes[0]
	if cls.Name != "4.A" || cls.Grade != 4 {
		t.Errorf("unexpected class: %+v", cls)
	}
	if len(cls.HomeroomTeachers) != 1 || cls.HomeroomTeachers[0] != "Anna Vargova" {
		t.Errorf("homeroom teacher not resolved: %v", cls.HomeroomTeachers)
	}
}

func TestTeachers_ClassroomResolved(t *testing.T) {
	c := loggedInClient(t)
	teachers, err := c.Teachers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(teachers) != 1 || teachers[0].Classroom != "R5" {
		t.Errorf("classroom short not resolved: %+v", teachers)
	}
}

func TestPeriods(t *testing.T) {
	c := loggedInClient(t)
	periods, err := c.Periods(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(periods) != 2 || periods[0].Start != "08:00" || periods[1].End != "09:40" {
		t.Errorf("bell schedule not mapped: %+v", periods)
	}
}

func TestNotifications_ItemMapping(t *testing.T) {
	c := loggedInClient(t)
	events, err := c.Notifications(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	msg := events[0]
	if msg.EventID != "9001" || msg.Type != "sprava" || msg.Author != "Anna Vargova" {
		t.Errorf("message not mapped: %+v", msg)
	}
	want := time.Date(2026, time.March, 2, 8, 15, 0, 0, time.UTC)
	if !msg.Timestamp.Equal(want) {
		t.Errorf("timestamp not parsed: %v", msg.Timestamp)
	}
	// String-encoded payloads decode the same as inline objects.
	if asInt(msg.Data["Value"]) != 1 {
		t.Errorf("string payload not decoded: %v", msg.Data)
	}

	hw := events[1]
	if hw.Status != "done" {
		t.Errorf("vybavene flag must map to done, got %q", hw.Status)
	}
	if hw.Data["dateto"] != "2026-03-05" {
		t.Errorf("inline payload lost: %v", hw.Data)
	}

	if !events[2].Removed {
		t.Error("removed flag not mapped")
	}
}

func TestValues_LooseTypes(t *testing.T) {
	if asInt("42") != 42 || asInt(float64(7)) != 7 || asInt(nil) != 0 {
		t.Error("asInt mishandles loose types")
	}
	if !asBool("1") || asBool("0") || !asBool(true) || !asBool(float64(2)) {
		t.Error("asBool mishandles loose types")
	}
	if asFloat("12,5") != 12.5 {
		t.Error("asFloat must accept decimal commas")
	}
	if asString(float64(5)) != "5" {
		t.Error("asString must render whole floats without a fraction")
	}
}

func TestTableRows_OrderAndShape(t *testing.T) {
	byID := map[string]any{
		"10": map[string]any{"id": "10"},
		"2":  map[string]any{"id": "2"},
	}
	rows := tableRows(byID)
	if len(rows) != 2 || asString(rows[0]["id"]) != "2" {
		t.Errorf("id-keyed tables must sort numerically, got %v", rows)
	}

	asArray := []any{map[string]any{"id": "1"}, "junk", map[string]any{"id": "2"}}
	if got := tableRows(asArray); len(got) != 2 {
		t.Errorf("array tables must keep order and drop junk, got %v", got)
	}
}

func TestSchoolYear(t *testing.T) {
	sep := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	if schoolYear(sep) != 2026 {
		t.Errorf("September belongs to its own year, got %d", schoolYear(sep))
	}
	if schoolYear(mar) != 2025 {
		t.Errorf("March belongs to the previous year, got %d", schoolYear(mar))
	}
}

func TestRecipientID(t *testing.T) {
	teacher := recipientID(schema.Person{PersonID: 11, Role: schema.RoleTeacher})
	student := recipientID(schema.Person{PersonID: 31, Role: schema.RoleStudent})
	if teacher != "Ucitel11" || student != "Student31" {
		t.Errorf("recipient formats wrong: %q %q", teacher, student)
	}
}
