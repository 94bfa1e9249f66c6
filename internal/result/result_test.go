package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func decode(t *testing.T, payload string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		t.Fatalf("payload is not valid JSON: %v\n%s", err, payload)
	}
	return out
}

func TestRun_Success(t *testing.T) {
	c := NewClassifier(nil)
	payload, err := c.Run("get_students", func() (any, error) {
		return Items([]string{"a", "b"}, 2, nil), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := decode(t, payload)
	if out["ok"] != true {
		t.Errorf("expected ok=true, got %v", out["ok"])
	}
	if out["count"] != float64(2) {
		t.Errorf("expected count=2, got %v", out["count"])
	}
	if _, hasErrs := out["errors"]; hasErrs {
		t.Error("errors key must be omitted when there are no failures")
	}
}

func TestRun_TypedFailure(t *testing.T) {
	c := NewClassifier(nil)
	resErr := Errorf(KindUnknownCategory, "unknown category %q", "sports")
	payload, err := c.Run("get_timeline", func() (any, error) { return nil, resErr })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := decode(t, payload)
	if out["ok"] != false {
		t.Errorf("expected ok=false, got %v", out["ok"])
	}
	if out["action"] != "get_timeline" {
		t.Errorf("expected action=get_timeline, got %v", out["action"])
	}
	if out["error_kind"] != string(KindUnknownCategory) {
		t.Errorf("expected error_kind=%s, got %v", KindUnknownCategory, out["error_kind"])
	}
	if out["hint"] == "" || out["hint"] == nil {
		t.Error("expected a hint for a registered kind")
	}
}

func TestRun_UntypedFailureFallsBackToBackendKind(t *testing.T) {
	c := NewClassifier(nil)
	payload, _ := c.Run("get_news", func() (any, error) {
		return nil, errors.New("connection reset")
	})
	out := decode(t, payload)
	if out["error_kind"] != string(KindBackend) {
		t.Errorf("expected backend_failure, got %v", out["error_kind"])
	}
	if out["hint"] == nil {
		t.Error("expected the catch-all hint")
	}
}

func TestRun_AmbiguityListsNames(t *testing.T) {
	c := NewClassifier(nil)
	resErr := &Error{
		Kind:    KindAmbiguousEntity,
		Message: `ambiguous name "Jon"`,
		Names:   []string{"Jon Smith", "Jonathan Lee"},
	}
	payload, _ := c.Run("get_timetable", func() (any, error) { return nil, resErr })
	out := decode(t, payload)
	names, ok := out["names"].([]any)
	if !ok || len(names) != 2 {
		t.Fatalf("expected 2 names in payload, got %v", out["names"])
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Errorf(KindEntityNotFound, "no such student")
	wrapped := fmt.Errorf("resolve: %w", inner)
	if got := KindOf(wrapped); got != KindEntityNotFound {
		t.Errorf("expected kind to survive wrapping, got %s", got)
	}
	if got := KindOf(errors.New("boom")); got != KindBackend {
		t.Errorf("expected backend_failure for plain error, got %s", got)
	}
}

func TestHints_MergeOverride(t *testing.T) {
	h := DefaultHints().Merge(map[string]string{
		"unknown_category": "custom hint",
		"brand_new_kind":   "new hint",
	})
	if h.For(KindUnknownCategory) != "custom hint" {
		t.Errorf("override not applied: %q", h.For(KindUnknownCategory))
	}
	if h.For(Kind("brand_new_kind")) != "new hint" {
		t.Errorf("extension not applied: %q", h.For(Kind("brand_new_kind")))
	}
	// Unregistered kinds fall back to the backend catch-all.
	if h.For(Kind("nope")) != h[KindBackend] {
		t.Errorf("expected catch-all fallback, got %q", h.For(Kind("nope")))
	}
}
