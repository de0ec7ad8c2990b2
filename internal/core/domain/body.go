package domain

import "go.trai.ch/zerr"

// TerminatorKind names the control-flow instruction ending a basic block.
type TerminatorKind string

const (
	// TerminatorGoto jumps unconditionally to its single target.
	TerminatorGoto TerminatorKind = "goto"
	// TerminatorSwitch branches to one of its targets.
	TerminatorSwitch TerminatorKind = "switch"
	// TerminatorCall calls a function and continues at its targets (return, unwind).
	TerminatorCall TerminatorKind = "call"
	// TerminatorReturn leaves the procedure.
	TerminatorReturn TerminatorKind = "return"
	// TerminatorUnreachable marks a block that can never be reached.
	TerminatorUnreachable TerminatorKind = "unreachable"
)

// Terminator ends a basic block and names its successors by block index.
type Terminator struct {
	Kind    TerminatorKind
	Targets []int
}

// BasicBlock is a straight-line sequence of statements followed by a terminator.
type BasicBlock struct {
	Statements []Symbol
	Terminator Terminator
}

// Body is the control-flow body of one procedure.
type Body struct {
	Def    DefinitionID
	Locals []Symbol
	Blocks []BasicBlock
}

// StatementCount returns the number of statements across all blocks.
func (b *Body) StatementCount() int {
	n := 0
	for i := range b.Blocks {
		n += len(b.Blocks[i].Statements)
	}
	return n
}

// Validate checks that the body has at least one block and that every
// terminator target names an existing block.
func (b *Body) Validate() error {
	if len(b.Blocks) == 0 {
		return zerr.With(zerr.With(ErrInvalidBody, "def_id", b.Def.String()), "reason", "no basic blocks")
	}

	for i := range b.Blocks {
		term := b.Blocks[i].Terminator
		switch term.Kind {
		case TerminatorGoto, TerminatorSwitch, TerminatorCall, TerminatorReturn, TerminatorUnreachable:
		default:
			return zerr.With(zerr.With(ErrInvalidBody, "def_id", b.Def.String()),
				"terminator", string(term.Kind))
		}

		if term.Kind == TerminatorGoto && len(term.Targets) != 1 {
			return zerr.With(zerr.With(ErrInvalidBody, "def_id", b.Def.String()),
				"reason", "goto requires exactly one target")
		}

		for _, target := range term.Targets {
			if target < 0 || target >= len(b.Blocks) {
				return zerr.With(zerr.With(zerr.With(ErrInvalidBody, "def_id", b.Def.String()),
					"block", i), "target", target)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the body.
func (b *Body) Clone() *Body {
	out := &Body{
		Def:    b.Def,
		Locals: append([]Symbol(nil), b.Locals...),
		Blocks: make([]BasicBlock, len(b.Blocks)),
	}
	for i := range b.Blocks {
		out.Blocks[i] = BasicBlock{
			Statements: append([]Symbol(nil), b.Blocks[i].Statements...),
			Terminator: Terminator{
				Kind:    b.Blocks[i].Terminator.Kind,
				Targets: append([]int(nil), b.Blocks[i].Terminator.Targets...),
			},
		}
	}
	return out
}
