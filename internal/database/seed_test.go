package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func marathonCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM marathons").Scan(&count))
	return count
}

func TestSeedIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Seed(db))
	first := marathonCount(t, db)
	assert.Equal(t, len(seedMarathons), first)

	// Повторный запуск не создаёт дубликатов и не меняет число строк.
	require.NoError(t, Seed(db))
	assert.Equal(t, first, marathonCount(t, db))

	var catCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&catCount))
	assert.Equal(t, len(seedCategories), catCount)

	require.NoError(t, Seed(db))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&catCount))
	assert.Equal(t, len(seedCategories), catCount)
}

func TestRestoreMarathonsRecreatesDeleted(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	_, err := db.Exec("DELETE FROM marathons WHERE name = ?", seedMarathons[0].Name)
	require.NoError(t, err)
	assert.Equal(t, len(seedMarathons)-1, marathonCount(t, db))

	require.NoError(t, RestoreMarathons(db))
	assert.Equal(t, len(seedMarathons), marathonCount(t, db))

	// Существующие записи не трогаются: URL вручную изменённого
	// марафона сохраняется.
	_, err = db.Exec("UPDATE marathons SET url = 'https://example.com' WHERE name = ?", seedMarathons[1].Name)
	require.NoError(t, err)
	require.NoError(t, RestoreMarathons(db))

	var url string
	require.NoError(t, db.QueryRow("SELECT url FROM marathons WHERE name = ?", seedMarathons[1].Name).Scan(&url))
	assert.Equal(t, "https://example.com", url)
}

func TestSeedKeepsExtraCategories(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	_, err := db.Exec("INSERT INTO categories (name, emoji) VALUES ('Спорт', '🏅')")
	require.NoError(t, err)

	require.NoError(t, Seed(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count))
	assert.Equal(t, len(seedCategories)+1, count)
}
