package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado en dos fases (solicitud → aprobación/rechazo).
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// Transfer agrupa el par de movimientos TRANSFER_OUT/TRANSFER_IN de un traslado
// entre dos tiendas. Ambos movimientos comparten el ID del traslado como referencia
// y tienen la misma magnitud. Un traslado inmediato nace y se completa en la misma
// transacción; el flujo con aprobación queda en PENDING hasta approve/reject.
type Transfer struct {
	ID            string
	ProductID     string
	SourceStoreID string
	DestStoreID   string
	Quantity      decimal.Decimal // siempre > 0
	Status        string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}
