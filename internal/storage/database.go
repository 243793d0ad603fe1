// internal/storage/database.go
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Driver registration

	"github.com/Annany2002/cafe-api/config"
	"github.com/Annany2002/cafe-api/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

const createCafeTableSQL = `
	CREATE TABLE IF NOT EXISTS cafe (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(250) NOT NULL UNIQUE,
		map_url VARCHAR(500) NOT NULL,
		img_url VARCHAR(500) NOT NULL,
		location VARCHAR(250) NOT NULL,
		seats VARCHAR(250) NOT NULL,
		has_toilet BOOLEAN NOT NULL,
		has_wifi BOOLEAN NOT NULL,
		has_sockets BOOLEAN NOT NULL,
		can_take_calls BOOLEAN NOT NULL,
		coffee_price VARCHAR(250)
	);`

// ConnectCafeDB opens the file-backed cafe database and ensures the cafe table exists.
func ConnectCafeDB(cfg *config.Config) (*sql.DB, error) {
	dbPath := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
	customLog.Printf("Storage: Initializing cafe database: %s", dbPath)

	if err := os.MkdirAll(cfg.DatabaseDir, 0750); err != nil {
		customLog.Warnf("Storage: Error creating data directory '%s': %v", cfg.DatabaseDir, err)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL and a busy timeout let concurrent requests queue on the write lock instead of failing
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		customLog.Warnf("Storage: Failed to open cafe db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to open cafe db: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		customLog.Warnf("Storage: Failed to ping cafe db '%s': %v", dbPath, err)
		return nil, fmt.Errorf("failed to connect to cafe db: %w", err)
	}
	customLog.Println("Storage: Cafe database connection successful.")

	if err = EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the cafe table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createCafeTableSQL); err != nil {
		customLog.Warnf("Storage: Failed to create cafe table: %v", err)
		return fmt.Errorf("failed to ensure cafe table: %w", err)
	}
	customLog.Println("Storage: Cafe table ensured.")
	return nil
}
