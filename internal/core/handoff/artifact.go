package handoff

import "go.trai.ch/handoff/internal/core/domain"

// Artifact is the body and fact set produced for one procedure, marked with
// the scope its data is valid for.
type Artifact struct {
	scope *domain.Scope
	body  *domain.Body
	facts *domain.FactSet
}

// NewArtifact builds an artifact whose data is bound to scope.
func NewArtifact(scope *domain.Scope, body *domain.Body, facts *domain.FactSet) Artifact {
	if facts == nil {
		facts = &domain.FactSet{}
	}
	return Artifact{scope: scope, body: body, facts: facts}
}

// Scope returns the scope marker of the artifact.
func (a Artifact) Scope() *domain.Scope {
	return a.scope
}

// Body returns the control-flow body.
func (a Artifact) Body() *domain.Body {
	return a.body
}

// Facts returns the borrow-checker facts.
func (a Artifact) Facts() *domain.FactSet {
	return a.facts
}

// Def returns the definition the artifact was produced for.
func (a Artifact) Def() domain.DefinitionID {
	if a.body == nil {
		return 0
	}
	return a.body.Def
}

// Valid reports whether the artifact's scope marker is still active.
func (a Artifact) Valid() bool {
	return a.scope != nil && a.scope.Active()
}
