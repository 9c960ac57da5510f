package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/roteiro/core/internal/adapters/repository"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

type serverEnv struct {
	ts    *httptest.Server
	users ports.UserRepository
	items ports.ItemRepository
}

func newServerEnv(t *testing.T) *serverEnv {
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

	srv, err := New(cfg, logger.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)

	store := repository.NewStore(dataFile)
	return &serverEnv{
		ts:    ts,
		users: repository.NewUserRepository(store),
		items: repository.NewItemRepository(store),
	}
}

func (e *serverEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func errorMessage(t *testing.T, data []byte) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	return body["error"]
}

func TestServer_CreateUserReturns201WithoutPassword(t *testing.T) {
	env := newServerEnv(t)

	resp, data := env.request(t, http.MethodPost, "/usuarios", "", map[string]interface{}{
		"nome":  "Maria Silva",
		"login": "maria",
		"email": "maria@example.com",
		"senha": "segredo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &user))
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "Maria Silva", user["nome"])
	assert.NotContains(t, user, "senha")
	assert.Equal(t, []interface{}{}, user["favorites"])

	stored, err := env.users.GetByLogin(context.Background(), "maria")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo", stored.PasswordHash, "password is hashed at rest")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestServer_DuplicateLoginConflict(t *testing.T) {
	env := newServerEnv(t)

	payload := map[string]interface{}{
		"nome": "Maria", "login": "maria", "email": "maria@example.com", "senha": "segredo",
	}
	resp, _ := env.request(t, http.MethodPost, "/usuarios", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := env.request(t, http.MethodPost, "/usuarios", "", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Usuário já existe", errorMessage(t, data))
}

func TestServer_UserNotFoundBody(t *testing.T) {
	env := newServerEnv(t)

	for _, path := range []string{"/usuarios/missing", "/favoritos/missing"} {
		resp, data := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Usuário não encontrado", errorMessage(t, data), path)
	}
}

func TestServer_ItemNotFoundBody(t *testing.T) {
	env := newServerEnv(t)

	resp, data := env.request(t, http.MethodGet, "/itens/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item não encontrado", errorMessage(t, data))
}

func TestServer_ListItemsDestaqueFilter(t *testing.T) {
	env := newServerEnv(t)
	ctx := context.Background()

	_, err := env.items.Create(ctx, &entities.Item{Name: "Cristo Redentor", Featured: true})
	require.NoError(t, err)
	_, err = env.items.Create(ctx, &entities.Item{Name: "Lençóis Maranhenses", Featured: false})
	require.NoError(t, err)

	resp, data := env.request(t, http.MethodGet, "/itens", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &all))
	assert.Len(t, all, 2)

	// Any non-empty value selects featured items, matching the legacy
	// presence-only check.
	for _, query := range []string{"?destaque=true", "?destaque=1", "?destaque=nope"} {
		resp, data = env.request(t, http.MethodGet, "/itens"+query, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var featured []map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &featured))
		require.Len(t, featured, 1, query)
		assert.Equal(t, "Cristo Redentor", featured[0]["nome"])
	}
}

func TestServer_ListItemsSearch(t *testing.T) {
	env := newServerEnv(t)
	ctx := context.Background()

	_, err := env.items.Create(ctx, &entities.Item{Name: "Cristo Redentor", Description: "Corcovado"})
	require.NoError(t, err)
	_, err = env.items.Create(ctx, &entities.Item{Name: "Pão de Açúcar", Description: "Urca"})
	require.NoError(t, err)

	resp, data := env.request(t, http.MethodGet, "/itens?q=corcovado", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Cristo Redentor", items[0]["nome"])
}

func TestServer_PatchFavoritesAndReadBack(t *testing.T) {
	env := newServerEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, &entities.User{Login: "maria", Name: "Maria"})
	require.NoError(t, err)

	resp, data := env.request(t, http.MethodPatch, "/usuarios/"+user.ID, "", map[string]interface{}{
		"favorites": []string{"a", "b", "a"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var patched map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &patched))
	assert.Equal(t, []interface{}{"a", "b"}, patched["favorites"], "favorites are stored as a set")
	assert.Equal(t, "Maria", patched["nome"], "untouched fields survive")

	resp, data = env.request(t, http.MethodGet, "/favoritos/"+user.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var favs []string
	require.NoError(t, json.Unmarshal(data, &favs))
	assert.Equal(t, []string{"a", "b"}, favs)
}

func TestServer_ListUsersByLogin(t *testing.T) {
	env := newServerEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, &entities.User{Login: "maria", PasswordHash: "hash"})
	require.NoError(t, err)
	_, err = env.users.Create(ctx, &entities.User{Login: "joao", PasswordHash: "hash"})
	require.NoError(t, err)

	resp, data := env.request(t, http.MethodGet, "/usuarios?login=joao", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "joao", users[0]["login"])
	assert.NotContains(t, users[0], "senha")
}

func TestServer_AuthFlow(t *testing.T) {
	env := newServerEnv(t)

	resp, data := env.request(t, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"nome": "Maria", "login": "maria", "email": "maria@example.com", "senha": "segredo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &registered))
	assert.NotEmpty(t, registered["access_token"])

	resp, data = env.request(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"login": "maria", "senha": "segredo",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &loggedIn))
	assert.NotEmpty(t, loggedIn["access_token"])

	resp, data = env.request(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"login": "maria", "senha": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Usuário ou senha inválidos", errorMessage(t, data))
}

func TestServer_ItemMutationsRequireAdmin(t *testing.T) {
	env := newServerEnv(t)

	itemPayload := map[string]interface{}{
		"nome": "Cristo Redentor", "descricao": "Estátua no Corcovado",
	}

	// No token.
	resp, _ := env.request(t, http.MethodPost, "/itens", "", itemPayload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Regular account.
	resp, data := env.request(t, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"nome": "Maria", "login": "maria", "email": "maria@example.com", "senha": "segredo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(data, &auth))

	resp, _ = env.request(t, http.MethodPost, "/itens", auth.AccessToken, itemPayload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin account created directly in the store, then logged in.
	_, err := env.users.Create(context.Background(), &entities.User{
		Login:        "admin",
		Name:         "Admin",
		PasswordHash: bcryptHash(t, "admin"),
		Admin:        true,
	})
	require.NoError(t, err)

	resp, data = env.request(t, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"login": "admin", "senha": "admin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &auth))

	resp, data = env.request(t, http.MethodPost, "/itens", auth.AccessToken, itemPayload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &created))
	assert.NotEmpty(t, created["id"])

	resp, _ = env.request(t, http.MethodDelete, fmt.Sprintf("/itens/%v", created["id"]), auth.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServer_HealthCheck(t *testing.T) {
	env := newServerEnv(t)

	resp, data := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "ok", body["status"])
}
