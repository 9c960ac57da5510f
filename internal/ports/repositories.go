package ports

import (
	"context"
	"time"

	"github.com/roteiro/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
//
// Patch follows a read-latest, mutate, write-back contract: the stored
// record is re-read inside the call and the given fields are shallow-merged
// into it before persisting. This is what keeps the favorites toggle
// idempotent regardless of the backing engine.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByLogin(ctx context.Context, login string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	Patch(ctx context.Context, id string, patch UserPatch) (*entities.User, error)
}

// ItemRepository defines the interface for catalog data operations.
type ItemRepository interface {
	List(ctx context.Context, filter ItemFilter) ([]*entities.Item, error)
	GetByID(ctx context.Context, id string) (*entities.Item, error)
	Create(ctx context.Context, item *entities.Item) (*entities.Item, error)
	Update(ctx context.Context, item *entities.Item) (*entities.Item, error)
	Delete(ctx context.Context, id string) error
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// UserFilter narrows user listings.
type UserFilter struct {
	Login *string
}

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	Featured *bool
	Search   *string
}

// UserPatch carries the fields of a shallow-merge user update. Nil fields
// are left untouched. Favorites, when set, replaces the whole list; the
// store deduplicates it, favorites are a set.
type UserPatch struct {
	Name         *string   `json:"nome,omitempty"`
	Login        *string   `json:"login,omitempty"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash *string   `json:"senha,omitempty"`
	Admin        *bool     `json:"admin,omitempty"`
	Favorites    *[]string `json:"favorites,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Login == nil && p.Email == nil &&
		p.PasswordHash == nil && p.Admin == nil && p.Favorites == nil
}
