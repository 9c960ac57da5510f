package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/ports"
)

func TestFileSessionStore_RoundTrip(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file means no session")

	user := &entities.User{ID: "u1", Name: "Maria", Login: "maria", Favorites: []string{"a"}}
	require.NoError(t, store.Save(user))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.ID)
	assert.Equal(t, []string{"a"}, loaded.Favorites)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileSessionStore_ClearMissingFile(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, store.Clear())
}

func TestFileSessionStore_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	store := NewFileSessionStore(path)

	require.NoError(t, store.Save(&entities.User{ID: "u1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestSession_CurrentAndClear(t *testing.T) {
	session, err := NewSession(NewMemorySessionStore())
	require.NoError(t, err)

	_, err = session.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, session.LoggedIn())

	user := &entities.User{ID: "u1", Login: "maria", Favorites: []string{"a"}}
	require.NoError(t, session.Set(user))
	assert.True(t, session.LoggedIn())

	current, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)

	// The returned copy must not alias the cached record.
	current.Favorites[0] = "mutated"
	fresh, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fresh.Favorites)

	require.NoError(t, session.Clear())
	assert.False(t, session.LoggedIn())
}

func TestSession_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := NewSession(NewFileSessionStore(path))
	require.NoError(t, err)
	require.NoError(t, first.Set(&entities.User{ID: "u1", Login: "maria"}))

	second, err := NewSession(NewFileSessionStore(path))
	require.NoError(t, err)
	current, err := second.Current()
	require.NoError(t, err)
	assert.Equal(t, "maria", current.Login)
}

func TestSession_RefreshUpdatesCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)

	name := "Maria Souza"
	_, err := env.api.PatchUser(ctx, user.ID, ports.UserPatch{Name: &name})
	require.NoError(t, err)

	refreshed, err := env.session.Refresh(ctx, env.api)
	require.NoError(t, err)
	assert.Equal(t, name, refreshed.Name)

	cached, err := env.session.Current()
	require.NoError(t, err)
	assert.Equal(t, name, cached.Name)
}

func TestSession_RefreshDeletedAccountClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t)

	// Wipe the account behind the session's back.
	other := &entities.User{ID: "ghost"}
	require.NoError(t, env.session.Set(other))

	_, err := env.session.Refresh(context.Background(), env.api)
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
	assert.False(t, env.session.LoggedIn())
}
