package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newSQLiteRepo opens a private in-memory database with the users schema.
func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := migrations.Migrations.ReadFile("sqlite/00001_create_users.sql")
	require.NoError(t, err)
	up, _, _ := strings.Cut(string(schema), "-- +goose Down")
	_, err = db.Exec(up)
	require.NoError(t, err)

	return NewSQLiteRepository(db), db
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestSQLite_CreateAndLookup(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, "alice", "hash-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), u.CreatedAt, time.Minute)

	u2, err := repo.Create(ctx, "bob", "hash-b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u2.ID)

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash-a", got.PasswordHash)

	got, err = repo.GetUserByID(ctx, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.UserName)
}

func TestSQLite_NotFound(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DuplicateUsername(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "h1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "h2")
	assert.ErrorIs(t, err, common.ErrorDuplicateUsername)

	assert.Equal(t, 1, countUsers(t, db))

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h1", got.PasswordHash, "first record must be untouched")
}

func TestSQLite_UsernamesAreCaseSensitive(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "h1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Alice", "h2")
	require.NoError(t, err)
}

func TestSQLite_ConcurrentCreateSameUsername(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	const attempts = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dups      int
		others    []error
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, "alice", fmt.Sprintf("hash-%d", i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, common.ErrorDuplicateUsername):
				dups++
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, dups)

	assert.Equal(t, 1, countUsers(t, db))
}

func TestSQLiteTime_Scan(t *testing.T) {
	var st sqliteTime

	require.NoError(t, st.Scan("2026-01-02 03:04:05"))
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), st.Time)

	require.NoError(t, st.Scan([]byte("2026-01-02T03:04:05Z")))
	assert.Equal(t, 2026, st.Year())

	require.NoError(t, st.Scan(int64(0)))
	assert.Equal(t, int64(0), st.Unix())

	assert.Error(t, st.Scan("yesterday"))
	assert.Error(t, st.Scan(3.14))
}
