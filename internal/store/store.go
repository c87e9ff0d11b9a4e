// Package store implements the quest repository over an abstract key-value
// backend. The whole catalog lives under one key as a JSON array; each quest's
// progress record lives under its own namespaced key.
package store

import (
	"context"

	"web3-quest-service/internal/domain"
)

// KV abstracts the durable key-value backend (in-memory map for tests, Redis
// in production). Get reports absence explicitly; errors are reserved for the
// backend itself.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CatalogLoader supplies the quest catalog used to bootstrap an empty store
// (static demo data or a database-backed source).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Quest, error)
}

const (
	catalogKey     = "quests:catalog"
	progressPrefix = "quests:progress:"
)

func progressKey(questID string) string {
	return progressPrefix + questID
}
