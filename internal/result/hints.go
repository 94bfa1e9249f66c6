package result

// Hints maps a failure kind to the human-readable recovery hint included in
// error payloads. The table is data: config may override or extend it.
type Hints map[Kind]string

// For returns the hint for kind, or the catch-all backend hint when none is
// registered for it.
func (h Hints) For(kind Kind) string {
	if hint, ok := h[kind]; ok {
		return hint
	}
	return h[KindBackend]
}

// DefaultHints returns the built-in kind→hint table.
func DefaultHints() Hints {
	return Hints{
		KindNotAuthenticated: "Not logged in to any school. Check the EDUPAGE_USERNAME, EDUPAGE_PASSWORD and EDUPAGE_SUBDOMAIN environment variables, or call the 'login' tool.",
		KindUnknownTenant:    "No session for that school. Call 'list_schools' to see the registered subdomains.",
		KindDuplicateTenant:  "Already logged in to that school. Call 'list_schools' to see the registered subdomains.",
		KindNoSession:        "More than one school is registered. Pass the 'school' argument to pick one.",
		KindEntityNotFound:   "Use get_my_children or get_students to list the available names, then retry with one of them.",
		KindAmbiguousEntity:  "Several names matched. Retry with one of the names listed in this error.",
		KindUnknownCategory:  "Valid categories: homework, grades, exams, messages, absences, events, news.",
		KindInvalidQuery:     "Check the argument values: dates are YYYY-MM-DD, limit and offset must not be negative.",
		KindBadCredentials:   "Wrong username or password. Check EDUPAGE_USERNAME and EDUPAGE_PASSWORD.",
		KindCaptcha:          "Edupage is requesting a CAPTCHA. Log in via a browser first, then retry.",
		KindBackend:          "Edupage did not answer as expected. It may be slow or down, try again.",
	}
}

// Merge returns a copy of h with overrides applied on top.
func (h Hints) Merge(overrides map[string]string) Hints {
	out := make(Hints, len(h)+len(overrides))
	for k, v := range h {
		out[k] = v
	}
	for k, v := range overrides {
		out[Kind(k)] = v
	}
	return out
}
