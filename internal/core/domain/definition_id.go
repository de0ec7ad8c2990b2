// Package domain contains the core types shared by the analysis and encoding phases.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// DefinitionID identifies one analyzable procedure of the local crate.
// It is stable for the lifetime of a session and is the key of every slot map.
type DefinitionID uint32

// String renders the id the way the host compiler prints local definitions.
func (d DefinitionID) String() string {
	return fmt.Sprintf("DefId(0:%d)", uint32(d))
}

// Bytes returns the little-endian encoding of the id, used for hashing.
func (d DefinitionID) Bytes() []byte {
	return []byte{byte(d), byte(d >> 8), byte(d >> 16), byte(d >> 24)}
}

// ParseDefinitionID parses a bare index ("12") or the rendered form ("DefId(0:12)").
// The whole string must match.
func ParseDefinitionID(s string) (DefinitionID, error) {
	digits := s
	if rest, ok := strings.CutPrefix(s, "DefId(0:"); ok {
		if digits, ok = strings.CutSuffix(rest, ")"); !ok {
			return 0, zerr.With(zerr.New("invalid definition id"), "value", s)
		}
	}

	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "invalid definition id"), "value", s)
	}
	return DefinitionID(v), nil
}
