package domain

import (
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Point is a location inside a body at which borrow-checker facts hold.
// Every statement index has a Start and a Mid point; index len(Statements)
// addresses the terminator.
type Point struct {
	Block     int
	Statement int
	Mid       bool
}

// String renders the point as Start(bbN[i]) or Mid(bbN[i]).
func (p Point) String() string {
	kind := "Start"
	if p.Mid {
		kind = "Mid"
	}
	return fmt.Sprintf("%s(bb%d[%d])", kind, p.Block, p.Statement)
}

// ParsePoint parses the textual form produced by Point.String.
func ParsePoint(s string) (Point, error) {
	var p Point
	invalid := zerr.With(ErrInvalidPoint, "point", s)

	rest, ok := strings.CutPrefix(s, "Start(bb")
	if !ok {
		if rest, ok = strings.CutPrefix(s, "Mid(bb"); !ok {
			return Point{}, invalid
		}
		p.Mid = true
	}
	rest, ok = strings.CutSuffix(rest, "])")
	if !ok {
		return Point{}, invalid
	}
	block, stmt, ok := strings.Cut(rest, "[")
	if !ok {
		return Point{}, invalid
	}

	var err error
	if p.Block, err = parseIndex(block); err != nil {
		return Point{}, invalid
	}
	if p.Statement, err = parseIndex(stmt); err != nil {
		return Point{}, invalid
	}
	return p, nil
}

// parseIndex accepts unsigned decimal digits only.
func parseIndex(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 31)
	return int(v), err
}

// MarshalText implements encoding.TextMarshaler.
func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Point) UnmarshalText(text []byte) error {
	parsed, err := ParsePoint(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// LoanIssue records that Loan is created with Origin at Point.
type LoanIssue struct {
	Origin Symbol
	Loan   Symbol
	Point  Point
}

// LoanKill records that Loan is killed (its path overwritten) at Point.
type LoanKill struct {
	Loan  Symbol
	Point Point
}

// Subset records that origin Sub outlives origin Sup at Point.
type Subset struct {
	Sub   Symbol
	Sup   Symbol
	Point Point
}

// Edge is a control-flow edge between two points.
type Edge struct {
	From Point
	To   Point
}

// FactSet holds the borrow-checker input facts computed for one body.
type FactSet struct {
	LoanIssuedAt []LoanIssue
	LoanKilledAt []LoanKill
	SubsetBase   []Subset
	CFGEdges     []Edge
}

// Len returns the total number of facts.
func (f *FactSet) Len() int {
	return len(f.LoanIssuedAt) + len(f.LoanKilledAt) + len(f.SubsetBase) + len(f.CFGEdges)
}

// Validate checks that every point in the fact set addresses a location of body.
func (f *FactSet) Validate(body *Body) error {
	check := func(kind string, p Point) error {
		if p.Block >= len(body.Blocks) || p.Statement > len(body.Blocks[p.Block].Statements) {
			return zerr.With(zerr.With(zerr.With(ErrInvalidFact, "def_id", body.Def.String()),
				"fact", kind), "point", p.String())
		}
		return nil
	}

	for _, fact := range f.LoanIssuedAt {
		if err := check("loan_issued_at", fact.Point); err != nil {
			return err
		}
	}
	for _, fact := range f.LoanKilledAt {
		if err := check("loan_killed_at", fact.Point); err != nil {
			return err
		}
	}
	for _, fact := range f.SubsetBase {
		if err := check("subset_base", fact.Point); err != nil {
			return err
		}
	}
	for _, edge := range f.CFGEdges {
		if err := check("cfg_edge", edge.From); err != nil {
			return err
		}
		if err := check("cfg_edge", edge.To); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the fact set.
func (f *FactSet) Clone() *FactSet {
	return &FactSet{
		LoanIssuedAt: append([]LoanIssue(nil), f.LoanIssuedAt...),
		LoanKilledAt: append([]LoanKill(nil), f.LoanKilledAt...),
		SubsetBase:   append([]Subset(nil), f.SubsetBase...),
		CFGEdges:     append([]Edge(nil), f.CFGEdges...),
	}
}
