package digest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/handoff/internal/adapters/digest"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
)

func body(def domain.DefinitionID, stmts ...string) *domain.Body {
	return &domain.Body{
		Def:    def,
		Locals: domain.NewSymbols([]string{"_0", "_1"}),
		Blocks: []domain.BasicBlock{
			{
				Statements: domain.NewSymbols(stmts),
				Terminator: domain.Terminator{Kind: domain.TerminatorGoto, Targets: []int{1}},
			},
			{Terminator: domain.Terminator{Kind: domain.TerminatorReturn}},
		},
	}
}

func facts() *domain.FactSet {
	return &domain.FactSet{
		LoanIssuedAt: []domain.LoanIssue{
			{Origin: domain.NewSymbol("'a"), Loan: domain.NewSymbol("L0"), Point: domain.Point{Mid: true}},
			{Origin: domain.NewSymbol("'b"), Loan: domain.NewSymbol("L0"), Point: domain.Point{Statement: 1, Mid: true}},
			{Origin: domain.NewSymbol("'b"), Loan: domain.NewSymbol("L1"), Point: domain.Point{Statement: 1, Mid: true}},
		},
		CFGEdges: []domain.Edge{{From: domain.Point{Statement: 2}, To: domain.Point{Block: 1}}},
	}
}

func TestEncoder_Encode(t *testing.T) {
	session := domain.NewSession("crate")
	encode := session.Enter("encode/w0")
	art := handoff.NewArtifact(encode, body(3, "_1 = const 1", "_0 = &_1"), facts())

	enc, err := digest.NewEncoder().Encode(context.Background(), art)
	require.NoError(t, err)

	assert.Equal(t, domain.DefinitionID(3), enc.Def)
	assert.Len(t, enc.Digest, 16)
	assert.Equal(t, 2, enc.Blocks)
	assert.Equal(t, 2, enc.Statements)
	assert.Equal(t, 2, enc.Loans, "loans are counted once")
	assert.Equal(t, 4, enc.Facts)
	assert.Equal(t, "crate/encode/w0", enc.Scope)
	assert.Equal(t, encode.ID(), enc.ScopeID)
	assert.NotEqual(t, session.ID(), enc.ScopeID, "the retrieve scope is recorded, not the session")
}

func TestEncoder_Encode_ExpiredScope(t *testing.T) {
	session := domain.NewSession("crate")
	art := handoff.NewArtifact(session, body(1, "x"), nil)
	session.Close()

	_, err := digest.NewEncoder().Encode(context.Background(), art)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrScopeExpired.Error())
}

func TestEncoder_Encode_ZeroArtifact(t *testing.T) {
	_, err := digest.NewEncoder().Encode(context.Background(), handoff.Artifact{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrScopeExpired.Error())
}

func TestSum_Stable(t *testing.T) {
	a := digest.Sum(body(1, "_0 = const 1"), facts())
	b := digest.Sum(body(1, "_0 = const 1"), facts())
	assert.Equal(t, a, b, "equal content yields equal digests")

	assert.NotEqual(t, a, digest.Sum(body(2, "_0 = const 1"), facts()), "definition is part of the digest")
	assert.NotEqual(t, a, digest.Sum(body(1, "_0 = const 2"), facts()), "statements are part of the digest")
	assert.NotEqual(t, a, digest.Sum(body(1, "_0 = const 1"), nil), "facts are part of the digest")
}

func TestSum_FieldBoundaries(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	assert.NotEqual(t,
		digest.Sum(body(1, "ab", "c"), nil),
		digest.Sum(body(1, "a", "bc"), nil),
	)
}

func TestEncoder_RoundTripThroughStash(t *testing.T) {
	session := domain.NewSession("crate")
	stash := handoff.New("w0")
	original := handoff.NewArtifact(session, body(7, "_0 = move _1"), facts())

	stash.Store(session, 7, original)
	encode := session.Enter("encode")
	defer encode.Close()

	enc, err := digest.NewEncoder().Encode(context.Background(), stash.Retrieve(encode, 7))
	require.NoError(t, err)
	assert.Equal(t, digest.Sum(original.Body(), original.Facts()), enc.Digest,
		"the erased and restored artifact has identical content")
}
