package ports

import "go.trai.ch/handoff/internal/core/domain"

// ManifestLoader defines the interface for loading a session manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and validates the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
