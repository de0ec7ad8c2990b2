package handoff

import "go.trai.ch/handoff/internal/core/domain"

// stored is an Artifact with its scope marker removed. It is the only form in
// which artifacts live inside a Stash.
type stored struct {
	body  *domain.Body
	facts *domain.FactSet
}

// erase drops the scope marker of a.
//
// The result no longer says which scope its body and facts belong to. Only
// Stash.Store may call erase, and only with the witness obligation of Store
// discharged by its caller.
func erase(a Artifact) stored {
	return stored{body: a.body, facts: a.facts}
}

// restore re-attaches a scope marker taken from witness.
//
// The data was produced under the scope erased in Store; restore trusts that
// witness is that scope or nested within it. Only Stash.Retrieve may call
// restore.
func (s stored) restore(witness *domain.Scope) Artifact {
	return Artifact{scope: witness, body: s.body, facts: s.facts}
}
