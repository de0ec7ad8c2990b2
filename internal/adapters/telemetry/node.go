package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/handoff/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// CollectorNodeID is the unique identifier for the span collector Graft node.
const CollectorNodeID graft.ID = "adapter.telemetry.collector"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewOTelTracer(ServiceName), nil
		},
	})

	graft.Register(graft.Node[*Collector]{
		ID:        CollectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Collector, error) {
			return NewCollector(), nil
		},
	})
}
