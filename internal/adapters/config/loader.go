// Package config loads the session manifest and the environment settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest at path and converts it into a domain.Manifest.
// If path is a directory, the manifest file inside it is used.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	manifestPath, err := resolveManifestPath(path)
	if err != nil {
		return nil, err
	}

	var raw Manifest
	if err := readAndUnmarshalYAML(manifestPath, &raw); err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}

	if raw.Version != domain.ManifestVersion {
		return nil, zerr.With(domain.ErrUnsupportedVersion, "version", raw.Version)
	}

	session := raw.Session
	if session == "" {
		session = filepath.Base(filepath.Dir(manifestPath))
		if session == "." || session == string(filepath.Separator) {
			session = domain.DefaultSessionName
		}
	}

	m := &domain.Manifest{
		Session:    session,
		Procedures: make([]domain.Procedure, 0, len(raw.Procedures)),
	}

	seen := make(map[domain.DefinitionID]string, len(raw.Procedures))
	for i, dto := range raw.Procedures {
		proc, err := buildProcedure(i, dto)
		if err != nil {
			return nil, err
		}

		if prev, dup := seen[proc.ID]; dup {
			err := zerr.With(domain.ErrDuplicateDefinition, "def_id", proc.ID.String())
			err = zerr.With(err, "first", prev)
			return nil, zerr.With(err, "second", proc.Name)
		}
		seen[proc.ID] = proc.Name

		m.Procedures = append(m.Procedures, proc)
	}

	if len(m.Analyzable()) == 0 {
		l.Logger.Warn(fmt.Sprintf("manifest %s declares no procedures with a body", manifestPath))
	}

	return m, nil
}

func resolveManifestPath(path string) (string, error) {
	if path == "" {
		path = domain.ManifestFileName
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if info.IsDir() {
		path = filepath.Join(path, domain.ManifestFileName)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return abs, nil
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is resolved by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func buildProcedure(index int, dto *ProcedureDTO) (domain.Procedure, error) {
	if dto == nil {
		return domain.Procedure{}, zerr.With(domain.ErrMissingProcedureName, "index", index)
	}
	if dto.Name == "" {
		return domain.Procedure{}, zerr.With(domain.ErrMissingProcedureName, "index", index)
	}
	if dto.ID == nil {
		err := zerr.With(domain.ErrInvalidBody, "reason", "missing id")
		return domain.Procedure{}, zerr.With(err, "procedure", dto.Name)
	}

	proc := domain.Procedure{
		ID:       domain.DefinitionID(*dto.ID),
		Name:     dto.Name,
		SpecOnly: dto.SpecOnly,
	}

	if dto.SpecOnly {
		if len(dto.Blocks) > 0 || len(dto.Locals) > 0 || !dto.Facts.empty() {
			err := zerr.With(domain.ErrInvalidBody, "reason", "specification-only procedure declares a body")
			return domain.Procedure{}, zerr.With(err, "procedure", dto.Name)
		}
		return proc, nil
	}

	body := buildBody(proc.ID, dto)
	if err := body.Validate(); err != nil {
		return domain.Procedure{}, zerr.With(err, "procedure", dto.Name)
	}

	facts, err := buildFacts(dto.Facts)
	if err != nil {
		return domain.Procedure{}, zerr.With(err, "procedure", dto.Name)
	}
	if err := facts.Validate(body); err != nil {
		return domain.Procedure{}, zerr.With(err, "procedure", dto.Name)
	}

	proc.Body = body
	proc.Facts = facts
	return proc, nil
}

func buildBody(def domain.DefinitionID, dto *ProcedureDTO) *domain.Body {
	body := &domain.Body{
		Def:    def,
		Locals: domain.NewSymbols(dto.Locals),
		Blocks: make([]domain.BasicBlock, 0, len(dto.Blocks)),
	}
	for _, b := range dto.Blocks {
		body.Blocks = append(body.Blocks, domain.BasicBlock{
			Statements: domain.NewSymbols(b.Statements),
			Terminator: domain.Terminator{
				Kind:    domain.TerminatorKind(b.Terminator.Kind),
				Targets: append([]int(nil), b.Terminator.Targets...),
			},
		})
	}
	return body
}

func buildFacts(dto *FactSetDTO) (*domain.FactSet, error) {
	facts := &domain.FactSet{}
	if dto == nil {
		return facts, nil
	}

	for _, f := range dto.LoanIssuedAt {
		p, err := domain.ParsePoint(f.Point)
		if err != nil {
			return nil, zerr.With(err, "fact", "loan_issued_at")
		}
		facts.LoanIssuedAt = append(facts.LoanIssuedAt, domain.LoanIssue{
			Origin: domain.NewSymbol(f.Origin),
			Loan:   domain.NewSymbol(f.Loan),
			Point:  p,
		})
	}

	for _, f := range dto.LoanKilledAt {
		p, err := domain.ParsePoint(f.Point)
		if err != nil {
			return nil, zerr.With(err, "fact", "loan_killed_at")
		}
		facts.LoanKilledAt = append(facts.LoanKilledAt, domain.LoanKill{
			Loan:  domain.NewSymbol(f.Loan),
			Point: p,
		})
	}

	for _, f := range dto.SubsetBase {
		p, err := domain.ParsePoint(f.Point)
		if err != nil {
			return nil, zerr.With(err, "fact", "subset_base")
		}
		facts.SubsetBase = append(facts.SubsetBase, domain.Subset{
			Sub:   domain.NewSymbol(f.Sub),
			Sup:   domain.NewSymbol(f.Sup),
			Point: p,
		})
	}

	for _, f := range dto.CFGEdges {
		from, err := domain.ParsePoint(f.From)
		if err != nil {
			return nil, zerr.With(err, "fact", "cfg_edge")
		}
		to, err := domain.ParsePoint(f.To)
		if err != nil {
			return nil, zerr.With(err, "fact", "cfg_edge")
		}
		facts.CFGEdges = append(facts.CFGEdges, domain.Edge{From: from, To: to})
	}

	return facts, nil
}
