package handoff

import (
	"errors"
	"fmt"

	"go.trai.ch/handoff/internal/core/domain"
)

// Violation is the panic value raised when a caller breaks the Stash contract.
type Violation struct {
	// Err is one of domain.ErrDuplicateArtifact, domain.ErrMissingArtifact or
	// domain.ErrMissingWitness.
	Err    error
	Def    domain.DefinitionID
	Worker string
	// Op is "store" or "retrieve".
	Op string
}

func (v *Violation) Error() string {
	switch {
	case errors.Is(v.Err, domain.ErrDuplicateArtifact):
		return fmt.Sprintf("%s: artifact for %s already held by worker %q; "+
			"the producing pass ran twice without a retrieve", v.Op, v.Def, v.Worker)
	case errors.Is(v.Err, domain.ErrMissingArtifact):
		return fmt.Sprintf("%s: no artifact for %s in worker %q; "+
			"specification-only declarations never produce one", v.Op, v.Def, v.Worker)
	default:
		return fmt.Sprintf("%s: %s (%s, worker %q)", v.Op, v.Err.Error(), v.Def, v.Worker)
	}
}

// Unwrap returns the sentinel error.
func (v *Violation) Unwrap() error {
	return v.Err
}

// AsViolation extracts a *Violation from a recovered panic value.
func AsViolation(r any) (*Violation, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
