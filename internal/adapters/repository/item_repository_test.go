package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roteiro/core/internal/domain/entities"
	"github.com/roteiro/core/internal/ports"
)

func boolPtr(b bool) *bool { return &b }

func seedCatalog(t *testing.T, repo ports.ItemRepository) (featured, regular *entities.Item) {
	t.Helper()
	ctx := context.Background()

	featured, err := repo.Create(ctx, &entities.Item{
		Name:        "Cristo Redentor",
		Description: "Estátua no topo do Corcovado",
		Featured:    true,
	})
	require.NoError(t, err)

	regular, err = repo.Create(ctx, &entities.Item{
		Name:        "Lençóis Maranhenses",
		Description: "Dunas e lagoas de água doce",
		Featured:    false,
	})
	require.NoError(t, err)
	return featured, regular
}

func TestItemRepository_CreateAndGet(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))
	ctx := context.Background()

	lat, lon := -22.9519, -43.2105
	created, err := repo.Create(ctx, &entities.Item{
		Name:      "Cristo Redentor",
		Latitude:  &lat,
		Longitude: &lon,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cristo Redentor", got.Name)
	require.True(t, got.HasCoordinates())
	assert.Equal(t, lat, *got.Latitude)
}

func TestItemRepository_ListFeatured(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))
	featured, _ := seedCatalog(t, repo)

	items, err := repo.List(context.Background(), ports.ItemFilter{Featured: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, featured.ID, items[0].ID)
}

func TestItemRepository_ListSearch(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))
	_, regular := seedCatalog(t, repo)

	tests := []struct {
		name string
		term string
		want int
	}{
		{"matches name", "lençóis", 1},
		{"matches description", "corcovado", 1},
		{"case insensitive", "CRISTO", 1},
		{"no match", "praia", 0},
		{"empty term matches all", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(context.Background(), ports.ItemFilter{Search: &tt.term})
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}

	term := "dunas"
	items, err := repo.List(context.Background(), ports.ItemFilter{Search: &term})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, regular.ID, items[0].ID)
}

func TestItemRepository_UpdateNotFound(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))

	_, err := repo.Update(context.Background(), &entities.Item{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, entities.ErrItemNotFound)
}

func TestItemRepository_Delete(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))
	featured, regular := seedCatalog(t, repo)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, featured.ID))

	_, err := repo.GetByID(ctx, featured.ID)
	assert.ErrorIs(t, err, entities.ErrItemNotFound)

	items, err := repo.List(ctx, ports.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, regular.ID, items[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, featured.ID), entities.ErrItemNotFound)
}

func TestItemRepository_ClonesAreIsolated(t *testing.T) {
	repo := NewItemRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &entities.Item{
		Name: "Pão de Açúcar",
		Tips: []string{"vá no fim da tarde"},
	})
	require.NoError(t, err)

	created.Tips[0] = "mutated"
	created.Name = "mutated"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pão de Açúcar", got.Name)
	assert.Equal(t, []string{"vá no fim da tarde"}, got.Tips)
}
