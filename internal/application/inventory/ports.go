package inventory

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de inventario: o se aplican
// todas las escrituras del callback o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
