// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/handoff/internal/adapters/analysis"
	_ "go.trai.ch/handoff/internal/adapters/cas"
	_ "go.trai.ch/handoff/internal/adapters/config"
	_ "go.trai.ch/handoff/internal/adapters/detector"
	_ "go.trai.ch/handoff/internal/adapters/digest"
	_ "go.trai.ch/handoff/internal/adapters/logger"
	_ "go.trai.ch/handoff/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/handoff/internal/app"
	_ "go.trai.ch/handoff/internal/engine/pipeline"
)
