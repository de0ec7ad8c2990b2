package domain

// Procedure is one definition known to the session, together with the lowered
// body and facts the host compiler recorded for it.
type Procedure struct {
	ID   DefinitionID
	Name string
	// SpecOnly marks declarations that exist only for specifications. They have
	// no body, are never analyzed and never produce an artifact.
	SpecOnly bool
	Body     *Body
	Facts    *FactSet
}

// Manifest describes the procedures of one session in declaration order.
type Manifest struct {
	Session    string
	Procedures []Procedure
}

// Analyzable returns the procedures that have a body.
func (m *Manifest) Analyzable() []Procedure {
	out := make([]Procedure, 0, len(m.Procedures))
	for _, p := range m.Procedures {
		if !p.SpecOnly {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the procedure with the given id.
func (m *Manifest) Lookup(id DefinitionID) (Procedure, bool) {
	for _, p := range m.Procedures {
		if p.ID == id {
			return p, true
		}
	}
	return Procedure{}, false
}
