package repository

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// Los movimientos son inmutables: solo se insertan y se consultan, nunca se actualizan.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// ListByInventory devuelve movimientos de un inventario, más recientes primero.
	ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByInventory(ctx context.Context, inventoryID string) (int, error)
	// ListByReference devuelve los movimientos que comparten una referencia
	// (ej. el par TRANSFER_OUT/TRANSFER_IN de un traslado).
	ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error)
}
