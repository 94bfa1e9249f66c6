package timeline

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 12, 0, 0, 0, time.UTC)
}

func kindOf(t *testing.T, err error) result.Kind {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var re *result.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected *result.Error, got %T: %v", err, err)
	}
	return re.Kind
}

func types(items []Annotated) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Type
	}
	return out
}

func TestFilter_CategoryExcludesSystemAndSorts(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "homework", Timestamp: day(2), Status: schema.StatusActive},
		{Type: "h_substitution", Timestamp: day(3)},
		{Type: "homework", Timestamp: day(1), Status: schema.StatusDone},
	}

	got, err := Filter(events, Query{Category: "homework", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != "homework" || !got[0].Timestamp.Equal(day(2)) {
		t.Errorf("expected the newest homework event, got %+v", got[0])
	}
	if got[0].Status != schema.StatusActive {
		t.Error("no status filter was requested, the active event must survive")
	}
}

func TestFilter_NewestFirstStable(t *testing.T) {
	same := day(5)
	events := []schema.TimelineEvent{
		{EventID: "a", Type: "sprava", Timestamp: same},
		{EventID: "b", Type: "sprava", Timestamp: day(7)},
		{EventID: "c", Type: "sprava", Timestamp: same},
	}
	got, err := Filter(events, Query{})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, e := range got {
		ids = append(ids, e.EventID)
	}
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v (ties keep input order), got %v", want, ids)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "znamka", Timestamp: day(1), Status: schema.StatusDone},
		{Type: "homework", Timestamp: day(3), Status: schema.StatusActive},
		{Type: "sprava", Timestamp: day(2), Starred: true},
	}
	q := Query{Status: schema.StatusActive, Limit: 10}

	once, err := Filter(events, q)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Filter(stripAnnotations(once), q)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(once, again) {
		t.Errorf("filtering twice changed the result:\nonce:  %+v\nagain: %+v", once, again)
	}
}

func TestFilter_Pagination(t *testing.T) {
	var events []schema.TimelineEvent
	for i := 1; i <= 5; i++ {
		events = append(events, schema.TimelineEvent{Type: "sprava", Timestamp: day(i)})
	}

	all, err := Filter(events, Query{Limit: 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("limit 0 must not truncate, got %d of 5", len(all))
	}

	page, err := Filter(events, Query{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || !page[0].Timestamp.Equal(day(3)) {
		t.Errorf("expected page [day3, day2], got %+v", page)
	}

	empty, err := Filter(events, Query{Offset: 99})
	if err != nil {
		t.Fatalf("offset past the end must not be an error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty page, got %d items", len(empty))
	}
}

func TestFilter_NegativeBoundsInvalid(t *testing.T) {
	_, err := Filter(nil, Query{Limit: -1})
	if got := kindOf(t, err); got != result.KindInvalidQuery {
		t.Errorf("expected invalid_query, got %s", got)
	}
	_, err = Filter(nil, Query{Offset: -3})
	if got := kindOf(t, err); got != result.KindInvalidQuery {
		t.Errorf("expected invalid_query, got %s", got)
	}
}

func TestFilter_UnknownCategory(t *testing.T) {
	_, err := Filter(nil, Query{Category: "gossip"})
	if got := kindOf(t, err); got != result.KindUnknownCategory {
		t.Errorf("expected unknown_category, got %s", got)
	}
	var re *result.Error
	errors.As(err, &re)
	if len(re.Names) == 0 {
		t.Error("unknown category error must list the valid names")
	}
}

func TestFilter_CategoryAndTypesConflict(t *testing.T) {
	_, err := Filter(nil, Query{Category: "homework", Types: []string{"sprava"}})
	if got := kindOf(t, err); got != result.KindInvalidQuery {
		t.Errorf("expected invalid_query, got %s", got)
	}
}

func TestFilter_LiteralTypes(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "sprava", Timestamp: day(1)},
		{Type: "h_substitution", Timestamp: day(2)},
	}

	// An unknown raw type is a legal filter that matches nothing.
	got, err := Filter(events, Query{Types: []string{"nosuchtype"}})
	if err != nil {
		t.Fatalf("literal unknown type must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", types(got))
	}

	// Naming a system type explicitly selects it, no IncludeSystem needed.
	got, err = Filter(events, Query{Types: []string{"h_substitution"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Type != "h_substitution" {
		t.Errorf("explicit type filter must reach system events, got %v", types(got))
	}
}

func TestFilter_IncludeSystem(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "sprava", Timestamp: day(1)},
		{Type: "pipnutie", Timestamp: day(2)},
	}

	hidden, err := Filter(events, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(hidden) != 1 || hidden[0].Type != "sprava" {
		t.Errorf("system events must be hidden by default, got %v", types(hidden))
	}

	shown, err := Filter(events, Query{IncludeSystem: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(shown) != 2 {
		t.Errorf("IncludeSystem must keep everything, got %v", types(shown))
	}
}

func TestFilter_RemovedAlwaysDropped(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "sprava", Timestamp: day(1), Removed: true},
		{Type: "sprava", Timestamp: day(2)},
	}
	got, err := Filter(events, Query{IncludeSystem: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].Timestamp.Equal(day(2)) {
		t.Errorf("removed events must never appear, got %+v", got)
	}
}

func TestFilter_StatusAndStarred(t *testing.T) {
	yes := true
	events := []schema.TimelineEvent{
		{Type: "sprava", Timestamp: day(1), Status: schema.StatusActive, Starred: true},
		{Type: "sprava", Timestamp: day(2), Status: schema.StatusDone},
		{Type: "sprava", Timestamp: day(3), Status: schema.StatusActive},
	}

	active, err := Filter(events, Query{Status: schema.StatusActive})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active events, got %d", len(active))
	}

	starred, err := Filter(events, Query{Starred: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if len(starred) != 1 || !starred[0].Starred {
		t.Errorf("expected only the starred event, got %+v", starred)
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	events := []schema.TimelineEvent{
		{Type: "sprava", Timestamp: day(1)},
		{Type: "sprava", Timestamp: day(2)},
		{Type: "sprava", Timestamp: day(3)},
		{Type: "sprava"}, // undated housekeeping row
	}
	got, err := Filter(events, Query{
		From: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected both boundary days plus the undated event, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(day(3)) || !got[1].Timestamp.Equal(day(2)) {
		t.Errorf("unexpected window contents: %+v", got)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got, err := Filter(nil, Query{Category: "grades", Limit: 10})
	if err != nil {
		t.Fatalf("empty input must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty output, got %d items", len(got))
	}
}

func TestFilter_AnnotatesCategories(t *testing.T) {
	events := []schema.TimelineEvent{{Type: "znamka", Timestamp: day(1)}}
	got, err := Filter(events, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0].Categories, []string{"grades"}) {
		t.Errorf("expected grades annotation, got %+v", got)
	}
}

func stripAnnotations(items []Annotated) []schema.TimelineEvent {
	out := make([]schema.TimelineEvent, len(items))
	for i, it := range items {
		out[i] = it.TimelineEvent
	}
	return out
}
