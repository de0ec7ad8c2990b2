package domain

import "time"

// Encoding is what the encoding phase produces for one consumed artifact.
// Scope and ScopeID name the scope the artifact was retrieved under.
type Encoding struct {
	Def        DefinitionID `json:"def_id"`
	Name       string       `json:"name,omitempty"`
	Digest     string       `json:"digest"`
	Blocks     int          `json:"blocks"`
	Statements int          `json:"statements"`
	Loans      int          `json:"loans"`
	Facts      int          `json:"facts"`
	Scope      string       `json:"scope"`
	ScopeID    string       `json:"scope_id"`
	Worker     string       `json:"worker"`
}

// RunResult summarizes one pipeline run.
//
// Changed lists the encoded definitions whose digest differs from the one
// recorded by the previous run of the same session.
type RunResult struct {
	Session   string         `json:"session"`
	SessionID string         `json:"session_id"`
	Workers   int            `json:"workers"`
	Encodings []Encoding     `json:"encodings"`
	Skipped   []DefinitionID `json:"skipped,omitempty"`
	Leftover  []DefinitionID `json:"leftover,omitempty"`
	Changed   []DefinitionID `json:"changed,omitempty"`
}

// DigestRecord is the digest last recorded for a definition of a session.
// SessionID identifies the run that recorded it.
type DigestRecord struct {
	Session   string       `json:"session"`
	SessionID string       `json:"session_id"`
	Def       DefinitionID `json:"def_id"`
	Digest    string       `json:"digest"`
	Timestamp time.Time    `json:"timestamp"`
}
