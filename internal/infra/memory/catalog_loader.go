package memory

import (
	"context"
	"time"

	"web3-quest-service/internal/domain"
)

// StaticCatalogLoader serves a fixed quest catalog (useful for demos and
// tests); swap in the Postgres-backed loader in production.
type StaticCatalogLoader struct {
	quests []domain.Quest
}

func NewStaticCatalogLoader(quests []domain.Quest) *StaticCatalogLoader {
	return &StaticCatalogLoader{quests: quests}
}

// NewDefaultCatalogLoader serves the built-in demo catalog stamped with the
// current time.
func NewDefaultCatalogLoader() *StaticCatalogLoader {
	return NewStaticCatalogLoader(domain.DefaultCatalog(time.Now().UnixMilli()))
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Quest, error) {
	return l.quests, nil
}
