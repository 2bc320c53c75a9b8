// repositories/mysql/history_repo.go
// Key/value slot for search history lists.

package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type HistoryRepo struct {
	DB *sql.DB
}

const historySchema = `
	CREATE TABLE IF NOT EXISTS search_history (
		k          VARCHAR(191) NOT NULL PRIMARY KEY,
		v          TEXT         NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) DEFAULT CHARSET=utf8mb4`

func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, historySchema); err != nil {
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
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO search_history (k, v) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE v = VALUES(v)`, key, string(value))
	if err != nil {
		return fmt.Errorf("upsert search_history: %w", err)
	}
	return nil
}
