package session

import (
	"errors"
	"testing"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema/schematest"
)

func kindOf(t *testing.T, err error) result.Kind {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var re *result.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected a *result.Error, got %T: %v", err, err)
	}
	return re.Kind
}

func TestRegister_Duplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("gymba", &schematest.FakeSession{Name: "gymba"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register("gymba", &schematest.FakeSession{Name: "gymba"})
	if got := kindOf(t, err); got != result.KindDuplicateTenant {
		t.Errorf("expected duplicate_tenant, got %s", got)
	}
	if r.Len() != 1 {
		t.Errorf("registry changed by failed insert: len=%d", r.Len())
	}
}

func TestGet_EmptyRegistry(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("")
	if got := kindOf(t, err); got != result.KindNotAuthenticated {
		t.Errorf("expected not_authenticated, got %s", got)
	}
}

func TestGet_SingleDefault(t *testing.T) {
	r := NewRegistry()
	s := &schematest.FakeSession{Name: "gymba"}
	if err := r.Register("gymba", s); err != nil {
		t.Fatal(err)
	}

	byDefault, err := r.Get("")
	if err != nil {
		t.Fatalf("default get: %v", err)
	}
	byName, err := r.Get("gymba")
	if err != nil {
		t.Fatalf("named get: %v", err)
	}
	if byDefault != byName {
		t.Error("omitting the school must behave identically to naming the only one")
	}
}

func TestGet_MultipleNeedsName(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("gymba", &schematest.FakeSession{Name: "gymba"})
	_ = r.Register("zsruzova", &schematest.FakeSession{Name: "zsruzova"})

	_, err := r.Get("")
	if got := kindOf(t, err); got != result.KindNoSession {
		t.Errorf("expected no_session_selected, got %s", got)
	}
	if _, err := r.Get("zsruzova"); err != nil {
		t.Errorf("named get failed: %v", err)
	}
}

func TestGet_UnknownSchool(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("gymba", &schematest.FakeSession{Name: "gymba"})
	_, err := r.Get("elsewhere")
	if got := kindOf(t, err); got != result.KindUnknownTenant {
		t.Errorf("expected unknown_tenant, got %s", got)
	}
}

func TestAll_LoginOrder(t *testing.T) {
	r := NewRegistry()
	if len(r.All()) != 0 {
		t.Fatal("empty registry must yield an empty slice")
	}
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(name, &schematest.FakeSession{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	got := r.Schools()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected login order %v, got %v", want, got)
		}
	}
}
