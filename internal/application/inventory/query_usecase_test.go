package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain"
)

func newQueryUseCase(s *memStore) *inventory.QueryUseCase {
	return inventory.NewQueryUseCase(&memInventoryRepo{s: s})
}

func TestQueryList_AplicaDefaultsDePaginacion(t *testing.T) {
	s := newMemStore()
	seedCatalog(s)
	seedInventory(s, "inv-1", "prod-1", "store-a", "10")
	uc := newQueryUseCase(s)

	out, err := uc.List(context.Background(), dto.InventoryQueryRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Page.Page, "página por defecto 1")
	assert.Equal(t, 20, out.Page.Limit, "límite por defecto 20")
	assert.Equal(t, 1, out.Page.Total)
	assert.Len(t, out.Items, 1)
}

func TestQueryList_LimiteSeAcotaA100(t *testing.T) {
	s := newMemStore()
	uc := newQueryUseCase(s)

	out, err := uc.List(context.Background(), dto.InventoryQueryRequest{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Page.Limit)
}

func TestQueryList_FiltraPorTiendaYStockBajo(t *testing.T) {
	s := newMemStore()
	seedCatalog(s)
	low := seedInventory(s, "inv-low", "prod-1", "store-a", "3")
	low.ReorderPoint = d("5")
	high := seedInventory(s, "inv-high", "prod-1", "store-b", "50")
	high.ReorderPoint = d("5")
	uc := newQueryUseCase(s)
	ctx := context.Background()

	out, err := uc.List(ctx, dto.InventoryQueryRequest{StoreID: "store-a"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "inv-low", out.Items[0].ID)

	out, err = uc.List(ctx, dto.InventoryQueryRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "solo la fila en o bajo el punto de reorden")
	assert.Equal(t, "inv-low", out.Items[0].ID)
}

func TestQueryList_BuscaPorSKUYNombre(t *testing.T) {
	s := newMemStore()
	seedCatalog(s) // SKU-001 / "Tornillo 3mm"
	seedInventory(s, "inv-1", "prod-1", "store-a", "10")
	uc := newQueryUseCase(s)
	ctx := context.Background()

	out, err := uc.List(ctx, dto.InventoryQueryRequest{Search: "sku-001"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1, "la búsqueda por SKU no distingue mayúsculas")

	out, err = uc.List(ctx, dto.InventoryQueryRequest{Search: "tornillo"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1, "la búsqueda por nombre no distingue mayúsculas")

	out, err = uc.List(ctx, dto.InventoryQueryRequest{Search: "tuerca"})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestQueryGetByID(t *testing.T) {
	s := newMemStore()
	seedInventory(s, "inv-1", "prod-1", "store-a", "10")
	uc := newQueryUseCase(s)
	ctx := context.Background()

	out, err := uc.GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, out.OnHand.Equal(d("10")))

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
