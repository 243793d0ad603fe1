// internal/storage/cafe_repo.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/Annany2002/cafe-api/internal/domain"
)

// Specific errors for cafe operations
var (
	ErrCafeNotFound = errors.New("cafe not found")
	ErrCafeExists   = errors.New("a cafe with that name already exists")
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCafe(row scanner) (*domain.Cafe, error) {
	var cafe domain.Cafe
	var price sql.NullString
	fields := cafe.Fields()
	fields[len(fields)-1] = &price // coffee_price is nullable
	if err := row.Scan(fields...); err != nil {
		return nil, err
	}
	if price.Valid {
		cafe.CoffeePrice = &price.String
	}
	return &cafe, nil
}

func queryCafes(ctx context.Context, db *sql.DB, query string, args ...any) ([]domain.Cafe, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		customLog.Warnf("Storage: Error querying cafes: %v", err)
		return nil, fmt.Errorf("database error listing cafes: %w", err)
	}
	defer rows.Close()

	cafes := make([]domain.Cafe, 0)
	for rows.Next() {
		cafe, err := scanCafe(rows)
		if err != nil {
			customLog.Warnf("Storage: Error scanning cafe row: %v", err)
			return nil, fmt.Errorf("failed processing cafe list: %w", err)
		}
		cafes = append(cafes, *cafe)
	}
	if err := rows.Err(); err != nil {
		customLog.Warnf("Storage: Error iterating cafe rows: %v", err)
		return nil, fmt.Errorf("failed reading cafe list: %w", err)
	}
	return cafes, nil
}

// --- Reads ---

// ListCafes returns every cafe ordered by id.
func ListCafes(ctx context.Context, db *sql.DB) ([]domain.Cafe, error) {
	query := fmt.Sprintf("SELECT %s FROM cafe ORDER BY id", domain.SelectColumns())
	return queryCafes(ctx, db, query)
}

// ListCafesPage returns at most limit cafes starting at offset, ordered by id.
func ListCafesPage(ctx context.Context, db *sql.DB, limit, offset int) ([]domain.Cafe, error) {
	query := fmt.Sprintf("SELECT %s FROM cafe ORDER BY id LIMIT ? OFFSET ?", domain.SelectColumns())
	return queryCafes(ctx, db, query, limit, offset)
}

// CountCafes returns the number of rows in the cafe table.
func CountCafes(ctx context.Context, db *sql.DB) (int, error) {
	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cafe").Scan(&total); err != nil {
		customLog.Warnf("Storage: Error counting cafes: %v", err)
		return 0, fmt.Errorf("database error counting cafes: %w", err)
	}
	return total, nil
}

// FindCafesByLocation returns cafes whose location equals location exactly.
func FindCafesByLocation(ctx context.Context, db *sql.DB, location string) ([]domain.Cafe, error) {
	query := fmt.Sprintf("SELECT %s FROM cafe WHERE location = ? ORDER BY id", domain.SelectColumns())
	return queryCafes(ctx, db, query, location)
}

// FindCafeByID retrieves a single cafe.
func FindCafeByID(ctx context.Context, db *sql.DB, id int64) (*domain.Cafe, error) {
	query := fmt.Sprintf("SELECT %s FROM cafe WHERE id = ? LIMIT 1", domain.SelectColumns())
	cafe, err := scanCafe(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCafeNotFound
		}
		customLog.Warnf("Storage: Failed to find cafe %d: %v", id, err)
		return nil, fmt.Errorf("database error finding cafe: %w", err)
	}
	return cafe, nil
}

// RandomCafe picks one cafe uniformly at random. An empty table yields ErrCafeNotFound.
func RandomCafe(ctx context.Context, db *sql.DB) (*domain.Cafe, error) {
	query := fmt.Sprintf("SELECT %s FROM cafe ORDER BY RANDOM() LIMIT 1", domain.SelectColumns())
	cafe, err := scanCafe(db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCafeNotFound
		}
		customLog.Warnf("Storage: Failed to pick random cafe: %v", err)
		return nil, fmt.Errorf("database error picking random cafe: %w", err)
	}
	return cafe, nil
}

// CafeNameExists reports whether a cafe with exactly this name is stored.
func CafeNameExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM cafe WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		customLog.Warnf("Storage: Failed to check cafe name '%s': %v", name, err)
		return false, fmt.Errorf("database error checking cafe name: %w", err)
	}
	return exists, nil
}

// --- Writes ---

// InsertCafe stores a new cafe and returns its generated id.
// A duplicate name is reported as ErrCafeExists.
func InsertCafe(ctx context.Context, db *sql.DB, cafe *domain.Cafe) (int64, error) {
	columns := domain.CafeColumns[1:] // id is generated
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	// nolint:gosec // columns come from the static domain.CafeColumns list
	insertSQL := fmt.Sprintf("INSERT INTO cafe (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)

	result, err := db.ExecContext(ctx, insertSQL,
		cafe.Name,
		cafe.MapURL,
		cafe.ImgURL,
		cafe.Location,
		cafe.Seats,
		cafe.HasToilet,
		cafe.HasWifi,
		cafe.HasSockets,
		cafe.CanTakeCalls,
		cafe.CoffeePrice,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "cafe.name") {
				return 0, ErrCafeExists
			}
		}
		customLog.Warnf("Storage: Failed to insert cafe '%s': %v", cafe.Name, err)
		return 0, fmt.Errorf("database error during cafe creation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		customLog.Warnf("Storage: Failed to get last insert ID for cafe '%s': %v", cafe.Name, err)
		return 0, fmt.Errorf("failed to retrieve cafe ID after creation: %w", err)
	}
	cafe.ID = id
	return id, nil
}

// UpdateCoffeePrice sets coffee_price of one cafe, leaving every other column untouched.
func UpdateCoffeePrice(ctx context.Context, db *sql.DB, id int64, price string) error {
	result, err := db.ExecContext(ctx, "UPDATE cafe SET coffee_price = ? WHERE id = ?", price, id)
	if err != nil {
		customLog.Warnf("Storage: Failed to update coffee price of cafe %d: %v", id, err)
		return fmt.Errorf("database error updating coffee price: %w", err)
	}
	return requireOneRow(result, id)
}

// DeleteCafe removes one cafe.
func DeleteCafe(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM cafe WHERE id = ?", id)
	if err != nil {
		customLog.Warnf("Storage: Failed to delete cafe %d: %v", id, err)
		return fmt.Errorf("database error deleting cafe: %w", err)
	}
	return requireOneRow(result, id)
}

func requireOneRow(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm change to cafe %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrCafeNotFound
	}
	return nil
}
