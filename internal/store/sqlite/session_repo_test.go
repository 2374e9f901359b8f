package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyvibe/internal/domain"
	"studyvibe/internal/security"
	"studyvibe/internal/store/sqlite"
)

func newTestRepo(t *testing.T) *sqlite.SessionRepo {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	enc, err := security.NewEncryptor([]byte("test-enc-key"), nil)
	require.NoError(t, err)
	return sqlite.NewSessionRepo(db, enc)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	user := &domain.User{ID: "1", Username: "demo", Bio: "Demo user", Avatar: "https://example.com/a.svg"}
	require.NoError(t, repo.Save(ctx, user))

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, user, loaded)
}

func TestSessionSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, &domain.User{ID: "1", Username: "demo", Bio: "old"}))
	require.NoError(t, repo.Save(ctx, &domain.User{ID: "1", Username: "demo", Bio: "new"}))

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "new", loaded.Bio)
}

func TestSessionDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(ctx, &domain.User{ID: "1", Username: "demo"}))
	require.NoError(t, repo.Delete(ctx, "1"))

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting an absent session is not an error.
	assert.NoError(t, repo.Delete(ctx, "1"))
}

func TestSessionLoadMissing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	loaded, err := repo.Load(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
