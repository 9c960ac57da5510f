package services

import (
	"context"
	"fmt"
	"time"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// Cache keys for catalog listings.
const (
	cacheKeyAllItems      = "catalog:itens:all"
	cacheKeyFeaturedItems = "catalog:itens:destaque"
)

// CatalogService handles catalog reads and the admin-side item mutations.
// When a cache repository is configured, full and featured listings are
// cached and invalidated on every mutation.
type CatalogService struct {
	itemRepo ports.ItemRepository
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewCatalogService creates a new catalog service. cache may be nil.
func NewCatalogService(itemRepo ports.ItemRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		itemRepo: itemRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListItems lists catalog items, optionally filtered by destaque and a
// free-text search term.
func (s *CatalogService) ListItems(ctx context.Context, filter ports.ItemFilter) ([]*entities.Item, error) {
	key := listCacheKey(filter)

	if s.cache != nil && key != "" {
		var cached []*entities.Item
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache catalog listing", "key", key, "error", err)
		}
	}
	return items, nil
}

// GetItem retrieves a single item.
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entities.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// CreateItem creates a catalog item (admin operation).
func (s *CatalogService) CreateItem(ctx context.Context, req ports.ItemRequest) (*entities.Item, error) {
	item, err := s.itemRepo.Create(ctx, req.ToItem(""))
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("Item created", "item_id", item.ID, "nome", item.Name)
	s.invalidateListings(ctx)
	return item, nil
}

// UpdateItem replaces a catalog item (admin operation).
func (s *CatalogService) UpdateItem(ctx context.Context, id string, req ports.ItemRequest) (*entities.Item, error) {
	item, err := s.itemRepo.Update(ctx, req.ToItem(id))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Item updated", "item_id", id)
	s.invalidateListings(ctx)
	return item, nil
}

// DeleteItem removes a catalog item (admin operation).
func (s *CatalogService) DeleteItem(ctx context.Context, id string) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Item deleted", "item_id", id)
	s.invalidateListings(ctx)
	return nil
}

// listCacheKey returns the cache key for a listing, or "" when the listing
// is not cacheable (free-text searches).
func listCacheKey(filter ports.ItemFilter) string {
	if filter.Search != nil && *filter.Search != "" {
		return ""
	}
	if filter.Featured != nil && *filter.Featured {
		return cacheKeyFeaturedItems
	}
	if filter.Featured == nil {
		return cacheKeyAllItems
	}
	return ""
}

func (s *CatalogService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, key := range []string{cacheKeyAllItems, cacheKeyFeaturedItems} {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to invalidate catalog cache", "key", key, "error", err)
		}
	}
}
