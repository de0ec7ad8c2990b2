package detector

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[LogMode]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (LogMode, error) {
			return DetectEnvironment(), nil
		},
	})
}
