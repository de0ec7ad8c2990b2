package ports

import (
	"io"

	"go.trai.ch/handoff/internal/core/domain"
)

// Renderer writes the outcome of a pipeline run.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes result to w.
	Render(w io.Writer, result *domain.RunResult) error
}
