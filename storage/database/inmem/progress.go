package inmemdb

import (
	"context"

	"github.com/trezcool/darasa/core/progress"
)

type progressRepository struct {
	db *progressTable
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetProgress(_ context.Context, userID string) ([]string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	ids, ok := repo.db.table[userID]
	if !ok {
		return nil, progress.ErrNotFound
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (repo *progressRepository) UpsertProgress(_ context.Context, userID string, itemIDs []string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	repo.db.table[userID] = ids
	return nil
}
