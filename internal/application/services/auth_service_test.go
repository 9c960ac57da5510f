package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roteiro/core/internal/adapters/repository"
	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

func newTestAuthService(t *testing.T) (*AuthService, ports.UserRepository) {
	t.Helper()
	store := repository.NewStore(filepath.Join(t.TempDir(), "db.json"))
	userRepo := repository.NewUserRepository(store)
	return NewAuthService(
		userRepo,
		config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "roteiro-test"},
		logger.NewNop(),
	), userRepo
}

func registerRequest() ports.RegisterRequest {
	return ports.RegisterRequest{
		Name:     "Maria Silva",
		Login:    "maria",
		Email:    "maria@example.com",
		Password: "segredo",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "maria", resp.User.Login)
	assert.False(t, resp.User.Admin)
	assert.Empty(t, resp.User.PasswordHash, "password must not leave the service")
	assert.NotNil(t, resp.User.Favorites)
}

func TestAuthService_RegisterDuplicateLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, entities.ErrLoginTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo := newTestAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	favs := []string{"item-1", "item-2"}
	_, err = userRepo.Patch(ctx, registered.User.ID, ports.UserPatch{Favorites: &favs})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, ports.LoginRequest{Login: "maria", Password: "segredo"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "maria", resp.User.Login)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Equal(t, favs, resp.User.Favorites, "login returns the stored favorites")
}

func TestAuthService_LoginBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name string
		req  ports.LoginRequest
	}{
		{"wrong password", ports.LoginRequest{Login: "maria", Password: "wrong"}},
		{"unknown login", ports.LoginRequest{Login: "nobody", Password: "segredo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, entities.ErrInvalidCredentials,
				"unknown login and wrong password must be indistinguishable")
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "maria", claims.Login)
	assert.False(t, claims.Admin)
}

func TestAuthService_ValidateTokenWrongSecret(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	other := NewAuthService(
		repository.NewUserRepository(repository.NewStore(filepath.Join(t.TempDir(), "db.json"))),
		config.JWTConfig{Secret: "another-secret", ExpiresIn: time.Hour},
		logger.NewNop(),
	)

	_, err = other.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateTokenGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
