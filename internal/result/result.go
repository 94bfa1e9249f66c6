// Package result converts tool outcomes into the structured JSON payloads
// callers see. Every tool body runs under Classifier.Run, which is the single
// point where a failure becomes {ok:false, error_kind, message, hint, action}.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Kind is a stable machine-readable failure category. Callers branch on it
// without parsing Message.
type Kind string

const (
	KindNotAuthenticated Kind = "not_authenticated"
	KindUnknownTenant    Kind = "unknown_tenant"
	KindDuplicateTenant  Kind = "duplicate_tenant"
	KindNoSession        Kind = "no_session_selected"
	KindEntityNotFound   Kind = "entity_not_found"
	KindAmbiguousEntity  Kind = "ambiguous_entity"
	KindUnknownCategory  Kind = "unknown_category"
	KindInvalidQuery     Kind = "invalid_query"
	KindBadCredentials   Kind = "bad_credentials"
	KindCaptcha          Kind = "captcha_required"
	KindBackend          Kind = "backend_failure"
)

// Error is a failure with a stable kind. Names optionally lists the display
// names involved (ambiguous matches, unresolved recipients) so the caller
// can disambiguate without another round trip.
type Error struct {
	Kind    Kind
	Message string
	Names   []string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or KindBackend for anything untyped.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindBackend
}

// PerTenant is one school's failure inside a multi-school fan-out. It rides
// alongside the successful items instead of failing the whole call.
type PerTenant struct {
	School    string `json:"school"`
	ErrorKind Kind   `json:"error_kind"`
	Message   string `json:"message"`
}

// Classifier wraps tool bodies and renders their outcome. The kind→hint
// table is configuration data supplied at construction, not control flow.
type Classifier struct {
	hints Hints
}

// NewClassifier builds a Classifier with the given hint table.
// Nil falls back to DefaultHints.
func NewClassifier(hints Hints) *Classifier {
	if hints == nil {
		hints = DefaultHints()
	}
	return &Classifier{hints: hints}
}

// Run executes fn and returns its payload as indented JSON. A failure is
// converted into the structured error shape; it is never returned as a Go
// error, so the MCP transport always delivers a parseable result.
func (c *Classifier) Run(action string, fn func() (any, error)) (string, error) {
	payload, err := fn()
	if err != nil {
		kind := KindOf(err)
		slog.Error("tool failed", "action", action, "kind", kind, "err", err)

		fail := map[string]any{
			"ok":         false,
			"action":     action,
			"error_kind": kind,
			"message":    err.Error(),
		}
		if hint := c.hints.For(kind); hint != "" {
			fail["hint"] = hint
		}
		var re *Error
		if errors.As(err, &re) && len(re.Names) > 0 {
			fail["names"] = re.Names
		}
		return encode(fail)
	}
	return encode(payload)
}

// Items builds the standard list payload. failures is the per-school error
// list from a fan-out; it is omitted when empty.
func Items(items any, count int, failures []PerTenant) map[string]any {
	out := map[string]any{
		"ok":    true,
		"count": count,
		"items": items,
	}
	if len(failures) > 0 {
		out["errors"] = failures
	}
	return out
}

// Object builds an {ok:true} payload with extra fields merged in.
func Object(fields map[string]any) map[string]any {
	out := map[string]any{"ok": true}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// encode marshals v as indented JSON without escaping non-ASCII names.
func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return buf.String(), nil
}
