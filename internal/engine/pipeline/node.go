package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/handoff/internal/adapters/analysis"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/handoff/internal/adapters/digest"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/handoff/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/handoff/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/handoff/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			analysis.NodeID,
			digest.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			analyzer, err := graft.Dep[ports.Analyzer](ctx)
			if err != nil {
				return nil, err
			}

			encoder, err := graft.Dep[ports.Encoder](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(analyzer, encoder, tracer, log), nil
		},
	})
}
