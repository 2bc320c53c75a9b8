// pkg/db/mysql.go
// Helper koneksi MySQL (menggunakan database/sql)

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenMySQL opens a pooled connection and waits for the server to answer,
// so a freshly started DB container does not fail the first request.
func OpenMySQL(ctx context.Context, dsn string, attempts int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := pingRetry(ctx, db, attempts, 3*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql not ready: %w", err)
	}
	return db, nil
}

func pingRetry(ctx context.Context, db *sql.DB, attempts int, wait time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		log.Printf("[WARN] ping db failed (try %d): %v", i+1, err)
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
