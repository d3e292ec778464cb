// Package store keeps planner workspaces between requests. Workspaces live
// only as long as the session TTL; nothing outlives it.
package store

import (
	"context"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

type Store interface {
	// Load returns the workspace for id, or an empty one if none is stored.
	Load(ctx context.Context, id string) (model.Snapshot, error)
	Save(ctx context.Context, id string, snapshot model.Snapshot) error
	Delete(ctx context.Context, id string) error
}
