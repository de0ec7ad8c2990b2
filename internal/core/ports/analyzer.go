// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
)

// Analyzer is the producer side of the handoff: it turns a procedure into an
// artifact whose data is valid for scope.
//
//go:generate mockgen -source=analyzer.go -destination=mocks/mock_analyzer.go -package=mocks
type Analyzer interface {
	// Analyze produces the artifact for proc while scope is active.
	// It returns domain.ErrNoBody for specification-only declarations.
	Analyze(ctx context.Context, scope *domain.Scope, proc domain.Procedure) (handoff.Artifact, error)
}
