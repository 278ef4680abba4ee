package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/progress"
)

type progressRow struct {
	UserID    string         `db:"user_id"`
	ItemIDs   pq.StringArray `db:"item_ids"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *sqlx.DB) progress.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetProgress(ctx context.Context, userID string) ([]string, error) {
	var row progressRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM progress WHERE user_id = $1`, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, progress.ErrNotFound
		}
		return nil, errors.Wrap(err, "getting progress")
	}
	return row.ItemIDs, nil
}

// UpsertProgress fully replaces the stored set; a later save wins.
func (repo *progressRepository) UpsertProgress(ctx context.Context, userID string, itemIDs []string) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, item_ids, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET item_ids = EXCLUDED.item_ids, updated_at = EXCLUDED.updated_at`,
		userID, pq.StringArray(itemIDs), time.Now().UTC(),
	)
	return errors.Wrap(err, "upserting progress")
}
