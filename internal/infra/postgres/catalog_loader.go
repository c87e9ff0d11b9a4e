package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"web3-quest-service/internal/domain"
)

// CatalogLoader reads the seed quest catalog from Postgres. Each row holds one
// quest as JSONB; operators manage the table out of band.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Quest, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM quests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load quest catalog: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan quest row: %w", err)
		}
		var quest domain.Quest
		if err := json.Unmarshal(raw, &quest); err != nil {
			return nil, fmt.Errorf("unmarshal quest: %w", err)
		}
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quest rows: %w", err)
	}
	return quests, nil
}
