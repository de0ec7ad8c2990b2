package ports

import (
	"context"

	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/handoff"
)

// Encoder is the consumer side of the handoff: it takes ownership of a
// retrieved artifact and encodes it.
//
//go:generate mockgen -source=encoder.go -destination=mocks/mock_encoder.go -package=mocks
type Encoder interface {
	// Encode consumes art. The artifact's scope marker must still be active.
	Encode(ctx context.Context, art handoff.Artifact) (domain.Encoding, error)
}
