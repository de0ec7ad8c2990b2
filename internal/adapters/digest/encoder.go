// Package digest provides the consuming side of the handoff: it encodes a
// retrieved artifact into a stable content digest and summary counts.
package digest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
	"go.trai.ch/zerr"
)

const (
	fieldSep  = "\x00"
	recordSep = "\x1e"
)

// Encoder implements ports.Encoder using xxhash-64.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode digests the body and facts of art.
// Artifacts whose scope marker has been closed are refused.
func (e *Encoder) Encode(ctx context.Context, art handoff.Artifact) (domain.Encoding, error) {
	if err := ctx.Err(); err != nil {
		return domain.Encoding{}, err
	}
	if !art.Valid() {
		return domain.Encoding{}, zerr.With(domain.ErrScopeExpired, "def_id", art.Def().String())
	}
	body := art.Body()
	if body == nil {
		return domain.Encoding{}, zerr.With(domain.ErrNoBody, "def_id", art.Def().String())
	}

	return domain.Encoding{
		Def:        body.Def,
		Digest:     Sum(body, art.Facts()),
		Blocks:     len(body.Blocks),
		Statements: body.StatementCount(),
		Loans:      countLoans(art.Facts()),
		Facts:      art.Facts().Len(),
		Scope:      art.Scope().String(),
		ScopeID:    art.Scope().ID(),
	}, nil
}

// Sum returns the hex xxhash-64 digest of body and facts.
// Element order is significant; equal content always yields an equal digest.
func Sum(body *domain.Body, facts *domain.FactSet) string {
	h := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.WriteString(p)
			_, _ = h.WriteString(fieldSep)
		}
		_, _ = h.WriteString(recordSep)
	}

	_, _ = h.Write(body.Def.Bytes())
	for _, local := range body.Locals {
		write("local", local.String())
	}
	for i, block := range body.Blocks {
		write("block", strconv.Itoa(i))
		for _, stmt := range block.Statements {
			write("stmt", stmt.String())
		}
		term := []string{"term", string(block.Terminator.Kind)}
		for _, target := range block.Terminator.Targets {
			term = append(term, strconv.Itoa(target))
		}
		write(term...)
	}

	if facts != nil {
		for _, f := range facts.LoanIssuedAt {
			write("loan_issued_at", f.Origin.String(), f.Loan.String(), f.Point.String())
		}
		for _, f := range facts.LoanKilledAt {
			write("loan_killed_at", f.Loan.String(), f.Point.String())
		}
		for _, f := range facts.SubsetBase {
			write("subset_base", f.Sub.String(), f.Sup.String(), f.Point.String())
		}
		for _, f := range facts.CFGEdges {
			write("cfg_edge", f.From.String(), f.To.String())
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

func countLoans(facts *domain.FactSet) int {
	if facts == nil {
		return 0
	}
	loans := make(map[domain.Symbol]struct{}, len(facts.LoanIssuedAt))
	for _, f := range facts.LoanIssuedAt {
		loans[f.Loan] = struct{}{}
	}
	return len(loans)
}
