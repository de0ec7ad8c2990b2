package handoff

import (
	"maps"
	"slices"

	"go.trai.ch/handoff/internal/core/domain"
)

// Stash is one worker's slot map from definition to artifact.
//
// It holds at most one artifact per definition, and every retrieval removes
// the entry. A Stash has no lock: it must only be used by the worker that
// owns it.
type Stash struct {
	worker string
	slots  map[domain.DefinitionID]stored
}

// New creates an empty Stash owned by the named worker.
func New(worker string) *Stash {
	return &Stash{
		worker: worker,
		slots:  make(map[domain.DefinitionID]stored),
	}
}

// Worker returns the name of the owning worker.
func (s *Stash) Worker() string {
	return s.worker
}

// Store erases the scope marker of a and keeps it under def.
//
// The caller must pass as witness the scope that bounds a's data. Store panics
// with a *Violation if def is already stored or witness is nil.
func (s *Stash) Store(witness *domain.Scope, def domain.DefinitionID, a Artifact) {
	if witness == nil {
		panic(s.violation("store", domain.ErrMissingWitness, def))
	}
	if _, exists := s.slots[def]; exists {
		panic(s.violation("store", domain.ErrDuplicateArtifact, def))
	}
	s.slots[def] = erase(a)
}

// Retrieve removes the artifact stored under def and returns it marked with
// witness.
//
// The caller must pass a witness that is the store witness or nested within
// it, and that is still active. Retrieve panics with a *Violation if def is
// not stored or witness is nil.
func (s *Stash) Retrieve(witness *domain.Scope, def domain.DefinitionID) Artifact {
	if witness == nil {
		panic(s.violation("retrieve", domain.ErrMissingWitness, def))
	}
	slot, ok := s.slots[def]
	if !ok {
		panic(s.violation("retrieve", domain.ErrMissingArtifact, def))
	}
	delete(s.slots, def)
	return slot.restore(witness)
}

// Len returns the number of artifacts awaiting retrieval.
func (s *Stash) Len() int {
	return len(s.slots)
}

// Pending returns the stored definitions in ascending order.
func (s *Stash) Pending() []domain.DefinitionID {
	return slices.Sorted(maps.Keys(s.slots))
}

func (s *Stash) violation(op string, err error, def domain.DefinitionID) *Violation {
	return &Violation{Err: err, Def: def, Worker: s.worker, Op: op}
}
