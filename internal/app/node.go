package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/handoff/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/handoff/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/handoff/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/handoff/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/handoff/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/handoff/internal/core/ports"
	"go.trai.ch/handoff/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// jsonSwitcher is implemented by loggers that can change their output format.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			pipeline.NodeID,
			logger.NodeID,
			telemetry.CollectorNodeID,
			cas.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}

			pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			collector, err := graft.Dep[*telemetry.Collector](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.DigestStore](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, pipe, log, settings, collector, store), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
			detector.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	mode, err := graft.Dep[detector.LogMode](ctx)
	if err != nil {
		return nil, err
	}

	if sw, ok := log.(jsonSwitcher); ok {
		sw.SetJSON(detector.ResolveMode(mode, settings.LogFormat) == detector.ModeJSON)
	}

	return NewComponents(app, log), nil
}
