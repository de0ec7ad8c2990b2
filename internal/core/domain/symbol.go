package domain

import "unique"

// Symbol is an interned name inside a procedure body (locals, statements, origins, loans).
// It wraps a unique.Handle[string] so repeated names share storage for the whole session.
type Symbol struct {
	h unique.Handle[string]
}

// NewSymbol interns s.
func NewSymbol(s string) Symbol {
	return Symbol{h: unique.Make(s)}
}

// NewSymbols interns every string in s.
func NewSymbols(s []string) []Symbol {
	res := make([]Symbol, len(s))
	for i, v := range s {
		res[i] = NewSymbol(v)
	}
	return res
}

// String returns the underlying string value.
func (s Symbol) String() string {
	// The zero Symbol has no handle.
	if s == (Symbol{}) {
		return ""
	}
	return s.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	s.h = unique.Make(string(text))
	return nil
}
