package ports

import "go.trai.ch/handoff/internal/core/domain"

// DigestStore keeps the digest of every encoded definition between runs.
//
//go:generate mockgen -source=digest_store.go -destination=mocks/mock_digest_store.go -package=mocks
type DigestStore interface {
	// Get returns the last record for def in session, or nil if there is none.
	Get(session string, def domain.DefinitionID) (*domain.DigestRecord, error)
	// Put replaces the records for the given definitions.
	Put(records []domain.DigestRecord) error
}
