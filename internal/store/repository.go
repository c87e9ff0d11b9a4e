package store

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/singleflight"

	"web3-quest-service/internal/domain"
)

// Repository is the quest catalog and progress store. Every mutation is a
// full read-modify-write of the catalog key; a write is durable once the
// backend accepts it. Corrupt stored JSON fails the calling operation and is
// never silently replaced with seed data.
type Repository struct {
	kv   KV
	seed CatalogLoader
	sf   singleflight.Group
}

func NewRepository(kv KV, seed CatalogLoader) *Repository {
	return &Repository{kv: kv, seed: seed}
}

// ListQuests returns all quests. When no catalog exists yet it materializes
// and persists the seed catalog, collapsing concurrent first runs into a
// single load.
func (r *Repository) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	raw, ok, err := r.kv.Get(ctx, catalogKey)
	if err != nil {
		return nil, fmt.Errorf("read quest catalog: %w", err)
	}
	if ok {
		return decodeCatalog(raw)
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check in case another goroutine seeded meanwhile.
		raw, ok, err := r.kv.Get(ctx, catalogKey)
		if err != nil {
			return nil, fmt.Errorf("read quest catalog: %w", err)
		}
		if ok {
			return decodeCatalog(raw)
		}

		quests, err := r.seed.LoadCatalog(ctx)
		if err != nil {
			return nil, fmt.Errorf("load seed catalog: %w", err)
		}
		if err := r.writeCatalog(ctx, quests); err != nil {
			return nil, err
		}
		return quests, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quest), nil
}

// GetQuest looks a quest up by id. Absence is not an error.
func (r *Repository) GetQuest(ctx context.Context, id string) (domain.Quest, bool, error) {
	quests, err := r.ListQuests(ctx)
	if err != nil {
		return domain.Quest{}, false, err
	}
	for _, q := range quests {
		if q.ID == id {
			return q, true, nil
		}
	}
	return domain.Quest{}, false, nil
}

// AddQuest appends a fully-formed quest to the catalog. The caller is
// responsible for id uniqueness.
func (r *Repository) AddQuest(ctx context.Context, quest domain.Quest) error {
	quests, err := r.ListQuests(ctx)
	if err != nil {
		return err
	}
	return r.writeCatalog(ctx, append(quests, quest))
}

// UpdateQuest merges the update into the matching quest. Unknown ids are a
// no-op. The stage list, when present in the update, replaces the stored one
// wholesale.
func (r *Repository) UpdateQuest(ctx context.Context, id string, update domain.QuestUpdate) error {
	quests, err := r.ListQuests(ctx)
	if err != nil {
		return err
	}
	for i := range quests {
		if quests[i].ID == id {
			update.Apply(&quests[i])
			return r.writeCatalog(ctx, quests)
		}
	}
	return nil
}

// DeleteQuest removes the matching quest; deleting an unknown id is a no-op.
func (r *Repository) DeleteQuest(ctx context.Context, id string) error {
	quests, err := r.ListQuests(ctx)
	if err != nil {
		return err
	}
	kept := quests[:0]
	for _, q := range quests {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	return r.writeCatalog(ctx, kept)
}

// IncrementWinners bumps the quest's winner counter by exactly one. Unknown
// ids are a no-op. The counter is deliberately not clamped to MaxWinners;
// entry gating happens in the progression engine.
func (r *Repository) IncrementWinners(ctx context.Context, questID string) error {
	quests, err := r.ListQuests(ctx)
	if err != nil {
		return err
	}
	for i := range quests {
		if quests[i].ID == questID {
			quests[i].CurrentWinners++
			return r.writeCatalog(ctx, quests)
		}
	}
	return nil
}

// GetProgress fetches the progress record for a quest. Absence is not an error.
func (r *Repository) GetProgress(ctx context.Context, questID string) (domain.HackerProgress, bool, error) {
	raw, ok, err := r.kv.Get(ctx, progressKey(questID))
	if err != nil {
		return domain.HackerProgress{}, false, fmt.Errorf("read progress %s: %w", questID, err)
	}
	if !ok {
		return domain.HackerProgress{}, false, nil
	}
	var progress domain.HackerProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		return domain.HackerProgress{}, false, fmt.Errorf("decode progress %s: %w", questID, err)
	}
	return progress, true, nil
}

// SaveProgress upserts the progress record keyed by progress.QuestID.
func (r *Repository) SaveProgress(ctx context.Context, progress domain.HackerProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("encode progress %s: %w", progress.QuestID, err)
	}
	if err := r.kv.Set(ctx, progressKey(progress.QuestID), raw); err != nil {
		return fmt.Errorf("write progress %s: %w", progress.QuestID, err)
	}
	return nil
}

func (r *Repository) writeCatalog(ctx context.Context, quests []domain.Quest) error {
	raw, err := json.Marshal(quests)
	if err != nil {
		return fmt.Errorf("encode quest catalog: %w", err)
	}
	if err := r.kv.Set(ctx, catalogKey, raw); err != nil {
		return fmt.Errorf("write quest catalog: %w", err)
	}
	return nil
}

func decodeCatalog(raw []byte) ([]domain.Quest, error) {
	var quests []domain.Quest
	if err := json.Unmarshal(raw, &quests); err != nil {
		return nil, fmt.Errorf("decode quest catalog: %w", err)
	}
	return quests, nil
}
