package domain

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Scope is the witness token of an active analysis session.
//
// Holding a *Scope is the caller's proof that the session it names is
// currently running. Data bound to a scope (interned names, bodies, facts)
// must not be used once the scope or any of its ancestors has been closed.
// A Scope is safe to share across goroutines; only Close mutates it.
type Scope struct {
	id     string
	name   string
	parent *Scope
	closed atomic.Bool
}

// NewSession opens a root scope for a new session.
func NewSession(name string) *Scope {
	return &Scope{
		id:   uuid.NewString(),
		name: name,
	}
}

// Enter opens a scope nested within s.
// The nested scope is active only as long as s is active.
func (s *Scope) Enter(name string) *Scope {
	return &Scope{
		id:     uuid.NewString(),
		name:   name,
		parent: s,
	}
}

// Close ends the scope. Closing is idempotent.
func (s *Scope) Close() {
	s.closed.Store(true)
}

// Active reports whether the scope and all of its ancestors are still open.
func (s *Scope) Active() bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.closed.Load() {
			return false
		}
	}
	return true
}

// Within reports whether s is outer or nested (at any depth) within outer.
func (s *Scope) Within(outer *Scope) bool {
	if outer == nil {
		return false
	}
	for cur := s; cur != nil; cur = cur.parent {
		if cur == outer {
			return true
		}
	}
	return false
}

// ID returns the unique identity of the scope.
func (s *Scope) ID() string {
	return s.id
}

// Name returns the human-readable name of the scope.
func (s *Scope) Name() string {
	return s.name
}

// Parent returns the enclosing scope, or nil for a session root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// String returns the slash-joined path of scope names from the root.
func (s *Scope) String() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.String() + "/" + s.name
}
