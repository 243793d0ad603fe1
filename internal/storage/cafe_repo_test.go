package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annany2002/cafe-api/config"
	"github.com/Annany2002/cafe-api/internal/domain"
)

// testDB opens a fresh cafe database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDir:  t.TempDir(),
		DatabaseFile: "test_cafes.db",
	}
	db, err := ConnectCafeDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func sampleCafe(name, location string) *domain.Cafe {
	return &domain.Cafe{
		Name:         name,
		MapURL:       "https://g.page/" + name,
		ImgURL:       "https://img.example.com/" + name + ".jpg",
		Location:     location,
		Seats:        "20-30",
		HasToilet:    true,
		HasWifi:      false,
		HasSockets:   true,
		CanTakeCalls: false,
		CoffeePrice:  strPtr("£2.80"),
	}
}

func TestInsertAndFindCafe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := sampleCafe("Social - Copeland Road", "Peckham")
	id, err := InsertCafe(ctx, db, in)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, in.ID)

	got, err := FindCafeByID(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, *in, *got)

	_, err = FindCafeByID(ctx, db, id+100)
	assert.ErrorIs(t, err, ErrCafeNotFound)
}

func TestInsertCafeNullPrice(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := sampleCafe("No Price", "Hackney")
	in.CoffeePrice = nil
	id, err := InsertCafe(ctx, db, in)
	require.NoError(t, err)

	got, err := FindCafeByID(ctx, db, id)
	require.NoError(t, err)
	assert.Nil(t, got.CoffeePrice)
}

func TestInsertCafeDuplicateName(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := InsertCafe(ctx, db, sampleCafe("Dup", "Peckham"))
	require.NoError(t, err)

	exists, err := CafeNameExists(ctx, db, "Dup")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = InsertCafe(ctx, db, sampleCafe("Dup", "Shoreditch"))
	assert.ErrorIs(t, err, ErrCafeExists)

	total, err := CountCafes(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestListAndSearch(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	empty, err := ListCafes(ctx, db)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, c := range []*domain.Cafe{
		sampleCafe("A", "Peckham"),
		sampleCafe("B", "Shoreditch"),
		sampleCafe("C", "Peckham"),
		sampleCafe("D", "peckham"),
	} {
		_, err := InsertCafe(ctx, db, c)
		require.NoError(t, err)
	}

	all, err := ListCafes(ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := FindCafesByLocation(ctx, db, "Peckham")
	require.NoError(t, err)
	require.Len(t, found, 2, "location match is exact and case sensitive")
	assert.Equal(t, "A", found[0].Name)
	assert.Equal(t, "C", found[1].Name)

	none, err := FindCafesByLocation(ctx, db, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, none)

	page, err := ListCafesPage(ctx, db, 3, 3)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "D", page[0].Name)
}

func TestRandomCafe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := RandomCafe(ctx, db)
	assert.ErrorIs(t, err, ErrCafeNotFound, "empty table is NotFound")

	names := map[string]bool{"A": true, "B": true, "C": true}
	for name := range names {
		_, err := InsertCafe(ctx, db, sampleCafe(name, "Peckham"))
		require.NoError(t, err)
	}

	for i := 0; i < 20; i++ {
		cafe, err := RandomCafe(ctx, db)
		require.NoError(t, err)
		assert.True(t, names[cafe.Name])
	}
}

func TestUpdateCoffeePrice(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	in := sampleCafe("Price", "Peckham")
	id, err := InsertCafe(ctx, db, in)
	require.NoError(t, err)

	require.NoError(t, UpdateCoffeePrice(ctx, db, id, "3.50"))

	got, err := FindCafeByID(ctx, db, id)
	require.NoError(t, err)
	want := *in
	want.CoffeePrice = strPtr("3.50")
	assert.Equal(t, want, *got)

	assert.ErrorIs(t, UpdateCoffeePrice(ctx, db, id+1, "9.99"), ErrCafeNotFound)
}

func TestDeleteCafe(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	id, err := InsertCafe(ctx, db, sampleCafe("Gone", "Peckham"))
	require.NoError(t, err)

	require.NoError(t, DeleteCafe(ctx, db, id))
	_, err = FindCafeByID(ctx, db, id)
	assert.ErrorIs(t, err, ErrCafeNotFound)

	assert.ErrorIs(t, DeleteCafe(ctx, db, id), ErrCafeNotFound)
}

func TestStorageErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cafe")).WillReturnError(boom)
	_, err = CountCafes(ctx, db)
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cafe")).WillReturnError(boom)
	_, err = InsertCafe(ctx, db, sampleCafe("X", "Y"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCafeExists)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cafe SET coffee_price = ? WHERE id = ?")).
		WithArgs("1.00", int64(7)).
		WillReturnResult(sqlmock.NewErrorResult(boom))
	err = UpdateCoffeePrice(ctx, db, 7, "1.00")
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRandomCafeScansRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(domain.CafeColumns).
		AddRow(int64(3), "Mock", "https://m", "https://i", "Soho", "10", true, true, false, true, nil)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY RANDOM() LIMIT 1")).WillReturnRows(rows)

	cafe, err := RandomCafe(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cafe.ID)
	assert.True(t, cafe.CanTakeCalls)
	assert.Nil(t, cafe.CoffeePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
