package config

// Manifest represents the structure of the handoff.yaml file.
type Manifest struct {
	Version    string          `yaml:"version"`
	Session    string          `yaml:"session"`
	Procedures []*ProcedureDTO `yaml:"procedures"`
}

// ProcedureDTO represents one definition in the manifest.
type ProcedureDTO struct {
	ID       *uint32     `yaml:"id"`
	Name     string      `yaml:"name"`
	SpecOnly bool        `yaml:"spec_only"`
	Locals   []string    `yaml:"locals"`
	Blocks   []BlockDTO  `yaml:"blocks"`
	Facts    *FactSetDTO `yaml:"facts"`
}

// BlockDTO represents a basic block.
type BlockDTO struct {
	Statements []string      `yaml:"statements"`
	Terminator TerminatorDTO `yaml:"terminator"`
}

// TerminatorDTO represents the terminator of a basic block.
type TerminatorDTO struct {
	Kind    string `yaml:"kind"`
	Targets []int  `yaml:"targets"`
}

// FactSetDTO holds the borrow-checker input facts of a procedure.
// Points use the Start(bbN[i]) / Mid(bbN[i]) notation.
type FactSetDTO struct {
	LoanIssuedAt []LoanIssueDTO `yaml:"loan_issued_at"`
	LoanKilledAt []LoanKillDTO  `yaml:"loan_killed_at"`
	SubsetBase   []SubsetDTO    `yaml:"subset_base"`
	CFGEdges     []EdgeDTO      `yaml:"cfg_edge"`
}

type LoanIssueDTO struct {
	Origin string `yaml:"origin"`
	Loan   string `yaml:"loan"`
	Point  string `yaml:"point"`
}

type LoanKillDTO struct {
	Loan  string `yaml:"loan"`
	Point string `yaml:"point"`
}

type SubsetDTO struct {
	Sub   string `yaml:"sub"`
	Sup   string `yaml:"sup"`
	Point string `yaml:"point"`
}

type EdgeDTO struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func (f *FactSetDTO) empty() bool {
	return f == nil ||
		len(f.LoanIssuedAt)+len(f.LoanKilledAt)+len(f.SubsetBase)+len(f.CFGEdges) == 0
}
