// Package session holds the authenticated backend handles, one per school,
// and fans work out across them.
//
// The registry is mutated only while logging in (at startup or via the login
// tool); after that every access is a read, so fan-out never needs more than
// the read lock.
package session

import (
	"sync"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
)

// Entry pairs a school subdomain with its live session, in login order.
type Entry struct {
	School  string
	Session schema.Session
}

// Registry maps school subdomains to their sessions, preserving login order.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	sessions map[string]schema.Session
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]schema.Session)}
}

// Register inserts a session for the given school. The insert is atomic: a
// second registration for the same school fails with duplicate_tenant and
// leaves the registry unchanged.
func (r *Registry) Register(school string, s schema.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[school]; ok {
		return result.Errorf(result.KindDuplicateTenant, "already logged in to %q", school)
	}
	r.sessions[school] = s
	r.order = append(r.order, school)
	return nil
}

// Get returns the session for school. With school empty it returns the sole
// session when exactly one is registered; otherwise it fails, distinguishing
// "not logged in" from "multiple schools, specify one".
func (r *Registry) Get(school string) (schema.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if school != "" {
		s, ok := r.sessions[school]
		if !ok {
			return nil, result.Errorf(result.KindUnknownTenant, "no session for school %q", school)
		}
		return s, nil
	}

	switch len(r.order) {
	case 0:
		return nil, result.Errorf(result.KindNotAuthenticated, "not logged in to any school")
	case 1:
		return r.sessions[r.order[0]], nil
	default:
		return nil, result.Errorf(result.KindNoSession,
			"logged in to multiple schools (%d), specify one with the 'school' argument", len(r.order))
	}
}

// All returns the registered (school, session) pairs in login order. An
// empty registry yields an empty slice, never an error.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, school := range r.order {
		out = append(out, Entry{School: school, Session: r.sessions[school]})
	}
	return out
}

// Schools returns the registered subdomains in login order.
func (r *Registry) Schools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
