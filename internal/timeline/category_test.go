package timeline

import (
	"reflect"
	"testing"
)

func TestExpand(t *testing.T) {
	got, err := Expand("homework")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"homework", "etesthw"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := Expand(" Exams "); err != nil {
		t.Errorf("category lookup must ignore case and padding: %v", err)
	}
}

func TestExpand_Unknown(t *testing.T) {
	if _, err := Expand("lunch"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestCategoriesFor(t *testing.T) {
	if got := CategoriesFor("ospravedlnenka"); !reflect.DeepEqual(got, []string{"absences"}) {
		t.Errorf("expected [absences], got %v", got)
	}
	if got := CategoriesFor("h_timetable"); got != nil {
		t.Errorf("system types carry no category, got %v", got)
	}
}

func TestIsSystem(t *testing.T) {
	for _, typ := range []string{"pipnutie", "h_substitution", "strava_kredit"} {
		if !IsSystem(typ) {
			t.Errorf("%s must be a system type", typ)
		}
	}
	for _, typ := range []string{"sprava", "homework", "znamka"} {
		if IsSystem(typ) {
			t.Errorf("%s must not be a system type", typ)
		}
	}
}

func TestCategories_Sorted(t *testing.T) {
	got := Categories()
	want := []string{"absences", "events", "exams", "grades", "homework", "messages", "news"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
