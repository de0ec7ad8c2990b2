package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/ui/output"
	"go.trai.ch/handoff/internal/ui/style"
)

// TextRenderer writes one aligned line per definition.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render writes result to w.
func (r *TextRenderer) Render(w io.Writer, result *domain.RunResult) error {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(output.ColorProfile())
	st := style.NewStyles(lr)

	idWidth, nameWidth := columnWidths(result)

	var b strings.Builder
	workers := "workers"
	if result.Workers == 1 {
		workers = "worker"
	}
	b.WriteString(st.Header.Render(fmt.Sprintf("Session %s", result.Session)))
	b.WriteString(st.Muted.Render(fmt.Sprintf(" (%d %s)", result.Workers, workers)))
	b.WriteString("\n\n")

	for _, enc := range result.Encodings {
		line := fmt.Sprintf("%-*s  %-*s  %s  blocks=%d statements=%d loans=%d facts=%d",
			idWidth, enc.Def, nameWidth, enc.Name, enc.Digest,
			enc.Blocks, enc.Statements, enc.Loans, enc.Facts)
		b.WriteString("  " + st.Success.Render(style.Check) + " " + line)
		b.WriteString(st.Muted.Render("  " + enc.Worker))
		if slices.Contains(result.Changed, enc.Def) {
			b.WriteString(st.Pending.Render("  changed"))
		}
		b.WriteString("\n")
	}
	for _, def := range result.Skipped {
		b.WriteString("  " + st.Muted.Render(style.Circle+" "+fmt.Sprintf("%-*s", idWidth, def)+"  specification only, skipped"))
		b.WriteString("\n")
	}
	for _, def := range result.Leftover {
		b.WriteString("  " + st.Pending.Render(style.Warning+" "+fmt.Sprintf("%-*s", idWidth, def)+"  never retrieved"))
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d encoded, %d skipped", len(result.Encodings), len(result.Skipped))
	if len(result.Leftover) > 0 {
		summary += fmt.Sprintf(", %d left over", len(result.Leftover))
	}
	if len(result.Changed) > 0 {
		summary += fmt.Sprintf(", %d changed", len(result.Changed))
	}
	b.WriteString("\n" + summary + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func columnWidths(result *domain.RunResult) (idWidth, nameWidth int) {
	for _, enc := range result.Encodings {
		idWidth = max(idWidth, len(enc.Def.String()))
		nameWidth = max(nameWidth, len(enc.Name))
	}
	for _, def := range result.Skipped {
		idWidth = max(idWidth, len(def.String()))
	}
	for _, def := range result.Leftover {
		idWidth = max(idWidth, len(def.String()))
	}
	return idWidth, nameWidth
}
