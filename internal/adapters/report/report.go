// Package report renders a pipeline run for humans or machines.
package report

import (
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/zerr"
)

// Report formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the renderer for format. An empty format selects text.
func New(format string) (ports.Renderer, error) {
	switch format {
	case FormatText, "":
		return NewTextRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownReportFormat, "format", format)
	}
}
