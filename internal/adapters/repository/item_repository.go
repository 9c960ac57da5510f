package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/ports"
)

// ItemRepositoryImpl implements ports.ItemRepository over the flat-file store.
type ItemRepositoryImpl struct {
	store *Store
}

// NewItemRepository creates a new file-backed item repository
func NewItemRepository(store *Store) ports.ItemRepository {
	return &ItemRepositoryImpl{store: store}
}

func (r *ItemRepositoryImpl) List(ctx context.Context, filter ports.ItemFilter) ([]*entities.Item, error) {
	var items []*entities.Item
	err := r.store.View(func(doc *Document) error {
		for _, it := range doc.Items {
			if filter.Featured != nil && it.Featured != *filter.Featured {
				continue
			}
			if filter.Search != nil && !it.MatchesSearch(*filter.Search) {
				continue
			}
			items = append(items, cloneItem(it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entities.Item{}
	}
	return items, nil
}

func (r *ItemRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Item, error) {
	var item *entities.Item
	err := r.store.View(func(doc *Document) error {
		for _, it := range doc.Items {
			if it.ID == id {
				item = cloneItem(it)
				return nil
			}
		}
		return entities.ErrItemNotFound
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepositoryImpl) Create(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	created := cloneItem(item)
	if created.ID == "" {
		created.ID = uuid.New().String()
	}

	err := r.store.Update(func(doc *Document) error {
		doc.Items = append(doc.Items, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cloneItem(created), nil
}

func (r *ItemRepositoryImpl) Update(ctx context.Context, item *entities.Item) (*entities.Item, error) {
	var updated *entities.Item
	err := r.store.Update(func(doc *Document) error {
		for i, it := range doc.Items {
			if it.ID == item.ID {
				doc.Items[i] = cloneItem(item)
				updated = cloneItem(item)
				return nil
			}
		}
		return entities.ErrItemNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ItemRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(doc *Document) error {
		for i, it := range doc.Items {
			if it.ID == id {
				doc.Items = append(doc.Items[:i], doc.Items[i+1:]...)
				return nil
			}
		}
		return entities.ErrItemNotFound
	})
}

func cloneItem(it *entities.Item) *entities.Item {
	clone := *it
	if it.ExtraImages != nil {
		clone.ExtraImages = append([]string(nil), it.ExtraImages...)
	}
	if it.Tips != nil {
		clone.Tips = append([]string(nil), it.Tips...)
	}
	if it.Infrastructure != nil {
		clone.Infrastructure = append([]string(nil), it.Infrastructure...)
	}
	if it.Attractions != nil {
		clone.Attractions = append([]string(nil), it.Attractions...)
	}
	if it.Latitude != nil {
		lat := *it.Latitude
		clone.Latitude = &lat
	}
	if it.Longitude != nil {
		lon := *it.Longitude
		clone.Longitude = &lon
	}
	return &clone
}
