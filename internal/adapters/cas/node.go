package cas

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/handoff/internal/adapters/config"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/ports"
)

// NodeID is the unique identifier for the digest store Graft node.
const NodeID graft.ID = "adapter.digest_store"

func init() {
	graft.Register(graft.Node[ports.DigestStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.DigestStore, error) {
			settings, err := graft.Dep[config.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(filepath.Join(settings.StateDir, domain.DigestStoreFile))
		},
	})
}
