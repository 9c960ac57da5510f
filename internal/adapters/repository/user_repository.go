package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/ports"
)

// UserRepositoryImpl implements ports.UserRepository over the flat-file store.
type UserRepositoryImpl struct {
	store *Store
}

// NewUserRepository creates a new file-backed user repository
func NewUserRepository(store *Store) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	var users []*entities.User
	err := r.store.View(func(doc *Document) error {
		for _, u := range doc.Users {
			if filter.Login != nil && u.Login != *filter.Login {
				continue
			}
			users = append(users, cloneUser(u))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user *entities.User
	err := r.store.View(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				user = cloneUser(u)
				return nil
			}
		}
		return entities.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user *entities.User
	err := r.store.View(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.Login == login {
				user = cloneUser(u)
				return nil
			}
		}
		return entities.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created := cloneUser(user)
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	if created.Favorites == nil {
		created.Favorites = []string{}
	}

	err := r.store.Update(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.Login == created.Login {
				return entities.ErrLoginTaken
			}
		}
		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cloneUser(created), nil
}

func (r *UserRepositoryImpl) Patch(ctx context.Context, id string, patch ports.UserPatch) (*entities.User, error) {
	var updated *entities.User
	err := r.store.Update(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.ID != id {
				continue
			}
			applyUserPatch(u, patch)
			updated = cloneUser(u)
			return nil
		}
		return entities.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyUserPatch shallow-merges the set fields into the record. Favorites
// replace the stored list and are deduplicated, keeping first occurrences.
func applyUserPatch(u *entities.User, patch ports.UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Login != nil {
		u.Login = *patch.Login
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Admin != nil {
		u.Admin = *patch.Admin
	}
	if patch.Favorites != nil {
		u.Favorites = dedupe(*patch.Favorites)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func cloneUser(u *entities.User) *entities.User {
	clone := *u
	if u.Favorites != nil {
		clone.Favorites = append([]string(nil), u.Favorites...)
	}
	return &clone
}
