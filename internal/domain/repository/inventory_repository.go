package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// InventoryFilter enumera todos los filtros reconocidos por el listado de inventario
// y sus valores por defecto (aplicados en Normalize).
type InventoryFilter struct {
	Search             string // subcadena sobre SKU o nombre de producto; vacío = sin filtro
	StoreID            string // vacío = todas las tiendas
	Status             string // vacío = cualquier estado
	LowStock           bool   // true = solo filas con on_hand <= reorder_point
	ExpiringWithinDays int    // 0 = sin filtro de vencimiento
	Page               int    // por defecto 1
	Limit              int    // por defecto 20, máximo 100
	SortBy             string // updated_at | on_hand | product_name; por defecto updated_at
	SortOrder          string // asc | desc; por defecto desc
}

// Normalize aplica los valores por defecto documentados.
func (f *InventoryFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	switch f.SortBy {
	case "updated_at", "on_hand", "product_name":
	default:
		f.SortBy = "updated_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

// Offset devuelve el desplazamiento SQL equivalente a la página solicitada.
func (f *InventoryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// InventoryRepository define el puerto para consultar/actualizar registros de
// inventario (DIP). Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE)
// y solo tienen sentido dentro de una transacción.
type InventoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error)
	GetByProductAndStore(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error)
	GetByProductAndStoreForUpdate(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error)

	// Create inserta un registro nuevo; ErrDuplicate si (product_id, store_id) ya existe.
	Create(ctx context.Context, rec *entity.InventoryRecord) error
	// EnsureExists inserta la fila con cantidad cero si no existe (ON CONFLICT DO NOTHING).
	// Resuelve la carrera de find-or-create del destino de un traslado.
	EnsureExists(ctx context.Context, rec *entity.InventoryRecord) error
	// Upsert crea la fila o fusiona los umbrales sobre una existente (importación masiva).
	Upsert(ctx context.Context, rec *entity.InventoryRecord) error
	// UpdateQuantity fija el nuevo OnHand de la fila (llamar con la fila bloqueada).
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error

	List(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryRecord, int, error)
	// ListPage pagina todas las filas por ID para barridos (alertas).
	ListPage(ctx context.Context, afterID string, limit int) ([]*entity.InventoryRecord, error)
}
