// repositories/sqlite/history_repo.go

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type HistoryRepo struct {
	DB *sql.DB
}

func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS search_history (
			k          TEXT PRIMARY KEY,
			v          TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create search_history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v string
	err := r.DB.QueryRowContext(ctx, `SELECT v FROM search_history WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select search_history: %w", err)
	}
	return []byte(v), true, nil
}

func (r *HistoryRepo) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO search_history (k, v, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("upsert search_history: %w", err)
	}
	return nil
}
