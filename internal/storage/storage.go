package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// Storage defines a unified interface for all storage operations.
// Snapshot persistence is Redis-backed; content bundles load from the
// filesystem and are treated as immutable.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Snapshot operations (Redis-backed)
	SaveSnapshot(ctx context.Context, id uuid.UUID, s *state.Snapshot) error
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error

	// Bundle operations (filesystem-backed)
	ListBundles(ctx context.Context) (map[string]string, error)
	GetBundle(ctx context.Context, id string) (*content.Bundle, error)
}
