// Package analysis provides the producing side of the handoff: it turns a
// procedure's recorded body and facts into a scope-bound artifact.
package analysis

import (
	"context"

	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
	"go.trai.ch/zerr"
)

// Analyzer implements ports.Analyzer.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze copies the body and facts of proc into values owned by scope.
// The returned artifact is valid only while scope is active.
func (a *Analyzer) Analyze(ctx context.Context, scope *domain.Scope, proc domain.Procedure) (handoff.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return handoff.Artifact{}, err
	}

	if proc.SpecOnly || proc.Body == nil {
		return handoff.Artifact{}, zerr.With(domain.ErrNoBody, "def_id", proc.ID.String())
	}
	if scope == nil || !scope.Active() {
		return handoff.Artifact{}, zerr.With(domain.ErrScopeExpired, "def_id", proc.ID.String())
	}

	body := proc.Body.Clone()
	body.Def = proc.ID

	var facts *domain.FactSet
	if proc.Facts != nil {
		facts = proc.Facts.Clone()
	}

	return handoff.NewArtifact(scope, body, facts), nil
}
