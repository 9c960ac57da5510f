package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roteiro/core/internal/adapters/repository"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/infrastructure/server"
	"github.com/roteiro/core/internal/ports"
)

// testEnv is a full stack under test: a real server over the flat-file
// store, a client pointed at it, and direct repository access for seeding.
type testEnv struct {
	api       *Client
	session   *Session
	favorites *Favorites
	users     ports.UserRepository
	items     ports.ItemRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataFile := filepath.Join(t.TempDir(), "db.json")
	cfg := &config.Config{
		App:     config.AppConfig{Name: "roteiro", Version: "test"},
		Storage: config.StorageConfig{Engine: config.EngineFile, FilePath: dataFile},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
		},
	}

	srv, err := server.New(cfg, logger.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)

	store := repository.NewStore(dataFile)
	session, err := NewSession(NewMemorySessionStore())
	require.NoError(t, err)

	api := New(ts.URL)
	return &testEnv{
		api:       api,
		session:   session,
		favorites: NewFavorites(api, session, logger.NewNop()),
		users:     repository.NewUserRepository(store),
		items:     repository.NewItemRepository(store),
	}
}

func (e *testEnv) seedUser(t *testing.T, favorites ...string) *entities.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), &entities.User{
		Name:      "Maria Silva",
		Login:     "maria",
		Favorites: favorites,
	})
	require.NoError(t, err)
	require.NoError(t, e.session.Set(user))
	return user
}

func (e *testEnv) seedItem(t *testing.T, name string) *entities.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), &entities.Item{
		Name:        name,
		Description: "descrição de " + name,
	})
	require.NoError(t, err)
	return item
}

func TestValidFavorites(t *testing.T) {
	catalog := []*entities.Item{{ID: "a"}, {ID: "c"}}

	tests := []struct {
		name string
		favs []string
		want []string
	}{
		{"drops unknown ids", []string{"a", "b", "c"}, []string{"a", "c"}},
		{"drops duplicates keeping first", []string{"a", "c", "a"}, []string{"a", "c"}},
		{"preserves order", []string{"c", "a"}, []string{"c", "a"}},
		{"empty list stays empty", []string{}, []string{}},
		{"all unknown", []string{"x", "y"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validFavorites(tt.favs, catalog))
		})
	}
}

func TestToggled(t *testing.T) {
	tests := []struct {
		name string
		favs []string
		id   string
		want []string
	}{
		{"appends when absent", []string{"a"}, "b", []string{"a", "b"}},
		{"removes when present", []string{"a", "b"}, "b", []string{"a"}},
		{"removes every occurrence", []string{"b", "a", "b"}, "b", []string{"a"}},
		{"appends to empty", nil, "a", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toggled(tt.favs, tt.id))
		})
	}
}

func TestFavorites_ReconcilePrunesStaleIds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	c := env.seedItem(t, "Pão de Açúcar")
	user := env.seedUser(t, a.ID, "vanished-item", c.ID)

	favs, err := env.favorites.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, favs)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, stored.Favorites, "repair is written back to the server")

	cached, err := env.session.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, cached.Favorites, "session cache follows the repair")
}

func TestFavorites_ReconcileCleanListWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	user := env.seedUser(t, a.ID)

	before, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)

	favs, err := env.favorites.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, favs)

	after, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Favorites, after.Favorites)

	// A second pass finds nothing left to repair either.
	favs, err = env.favorites.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, favs)
}

func TestFavorites_LoadResolvesItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	c := env.seedItem(t, "Pão de Açúcar")
	env.seedUser(t, a.ID, "gone", c.ID)

	items, err := env.favorites.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Cristo Redentor", items[0].Name)
	assert.Equal(t, "Pão de Açúcar", items[1].Name)
}

func TestFavorites_ToggleIsItsOwnInverse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.seedItem(t, "Cristo Redentor")
	user := env.seedUser(t)

	favorited, err := env.favorites.Toggle(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{item.ID}, stored.Favorites)

	favorited, err = env.favorites.Toggle(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	stored, err = env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Favorites)
}

func TestFavorites_ToggleUsesLatestServerState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	b := env.seedItem(t, "Pão de Açúcar")
	user := env.seedUser(t)

	// Another session adds a favorite behind this client's back.
	favs := []string{a.ID}
	_, err := env.users.Patch(ctx, user.ID, ports.UserPatch{Favorites: &favs})
	require.NoError(t, err)

	favorited, err := env.favorites.Toggle(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, stored.Favorites, "concurrent favorite survives the toggle")
}

func TestFavorites_ToggleUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t)

	_, err := env.favorites.Toggle(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrItemNotFound)
}

func TestFavorites_RemoveAbsentIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	user := env.seedUser(t, a.ID)

	require.NoError(t, env.favorites.Remove(ctx, "never-favorited"))

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, stored.Favorites)
}

func TestFavorites_Remove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedItem(t, "Cristo Redentor")
	b := env.seedItem(t, "Pão de Açúcar")
	user := env.seedUser(t, a.ID, b.ID)

	require.NoError(t, env.favorites.Remove(ctx, a.ID))

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, stored.Favorites)

	cached, err := env.session.Current()
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, cached.Favorites)
}

func TestFavorites_RequireSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.favorites.Reconcile(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = env.favorites.Toggle(ctx, "any")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	assert.ErrorIs(t, env.favorites.Remove(ctx, "any"), ErrNotLoggedIn)
}
