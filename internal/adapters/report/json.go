package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/handoff/internal/core/domain"
)

// JSONRenderer writes the result as one indented JSON document.
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render writes result to w.
func (r *JSONRenderer) Render(w io.Writer, result *domain.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
