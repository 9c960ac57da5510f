package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// Favorites drives the favorites list of the logged-in user: loading it,
// toggling entries and reconciling the stored list against the catalog.
type Favorites struct {
	api     *Client
	session *Session
	logger  *logger.Logger

	mu sync.Mutex
}

// NewFavorites creates a favorites manager bound to a session.
func NewFavorites(api *Client, session *Session, appLogger *logger.Logger) *Favorites {
	return &Favorites{
		api:     api,
		session: session,
		logger:  appLogger,
	}
}

// validFavorites returns favs with duplicates and ids absent from the
// catalog removed. First occurrence wins, order is preserved.
func validFavorites(favs []string, catalog []*entities.Item) []string {
	known := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		known[item.ID] = true
	}

	seen := make(map[string]bool, len(favs))
	valid := make([]string, 0, len(favs))
	for _, id := range favs {
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		valid = append(valid, id)
	}
	return valid
}

// toggled returns favs with id removed when present (every occurrence) or
// appended when absent.
func toggled(favs []string, id string) []string {
	out := make([]string, 0, len(favs)+1)
	found := false
	for _, fav := range favs {
		if fav == id {
			found = true
			continue
		}
		out = append(out, fav)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// Reconcile validates the stored favorites against the current catalog and
// repairs the server record when the validated list is shorter. The repaired
// list is written back once; a subsequent call finds nothing to fix.
func (f *Favorites) Reconcile(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.session.Current()
	if err != nil {
		return nil, err
	}

	user, err := f.api.GetUser(ctx, current.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	catalog, err := f.api.ListItems(ctx, ItemQuery{})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	valid := validFavorites(user.Favorites, catalog)
	if len(valid) != len(user.Favorites) {
		f.logger.Info("Pruning stale favorites",
			"user_id", user.ID,
			"before", len(user.Favorites),
			"after", len(valid),
		)
		patched, err := f.api.PatchUser(ctx, user.ID, ports.UserPatch{Favorites: &valid})
		if err != nil {
			return nil, fmt.Errorf("repair favorites: %w", err)
		}
		user = patched
	}

	user.Favorites = valid
	if err := f.session.Set(user); err != nil {
		return nil, err
	}
	return valid, nil
}

// Load reconciles the favorites list and resolves it to catalog items.
// Ids that vanish between reconciliation and resolution are skipped.
func (f *Favorites) Load(ctx context.Context) ([]*entities.Item, error) {
	favs, err := f.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*entities.Item, 0, len(favs))
	for _, id := range favs {
		item, err := f.api.GetItem(ctx, id)
		if err != nil {
			if errors.Is(err, entities.ErrItemNotFound) {
				f.logger.Warn("Favorite vanished during load", "item_id", id)
				continue
			}
			return nil, fmt.Errorf("fetch item %s: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Toggle flips the membership of itemID in the favorites list and returns
// whether it is a favorite afterwards. The latest server record is the base
// of the edit, so concurrent changes from other sessions are not clobbered
// with a stale list.
func (f *Favorites) Toggle(ctx context.Context, itemID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.session.Current()
	if err != nil {
		return false, err
	}

	if _, err := f.api.GetItem(ctx, itemID); err != nil {
		return false, err
	}

	user, err := f.api.GetUser(ctx, current.ID)
	if err != nil {
		return false, fmt.Errorf("fetch user: %w", err)
	}

	updated := toggled(user.Favorites, itemID)
	patched, err := f.api.PatchUser(ctx, user.ID, ports.UserPatch{Favorites: &updated})
	if err != nil {
		return false, fmt.Errorf("update favorites: %w", err)
	}

	if err := f.session.Set(patched); err != nil {
		return false, err
	}
	return patched.HasFavorite(itemID), nil
}

// Remove drops itemID from the favorites list. Removing an id that is not
// in the list is a no-op.
func (f *Favorites) Remove(ctx context.Context, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.session.Current()
	if err != nil {
		return err
	}

	user, err := f.api.GetUser(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}

	if !user.HasFavorite(itemID) {
		return f.session.Set(user)
	}

	updated := make([]string, 0, len(user.Favorites))
	for _, fav := range user.Favorites {
		if fav != itemID {
			updated = append(updated, fav)
		}
	}

	patched, err := f.api.PatchUser(ctx, user.ID, ports.UserPatch{Favorites: &updated})
	if err != nil {
		return fmt.Errorf("update favorites: %w", err)
	}
	return f.session.Set(patched)
}
