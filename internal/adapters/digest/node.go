package digest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/handoff/internal/core/ports"
)

// NodeID is the unique identifier for the encoder Graft node.
const NodeID graft.ID = "adapter.digest"

func init() {
	graft.Register(graft.Node[ports.Encoder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Encoder, error) {
			return NewEncoder(), nil
		},
	})
}
