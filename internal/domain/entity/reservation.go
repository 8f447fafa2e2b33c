package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva de stock. PENDING es el único estado no terminal;
// una reserva nunca vuelve a PENDING después de salir de él.
const (
	ReservationStatusPending   = "PENDING"
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusExpired   = "EXPIRED"
	ReservationStatusCancelled = "CANCELLED"
)

// StockReservation representa una retención temporal de cantidad contra el
// stock disponible de un inventario, a la espera de confirmación de la orden.
type StockReservation struct {
	ID          string
	InventoryID string
	Quantity    decimal.Decimal // siempre > 0
	OrderID     string          // opcional: orden asociada
	Status      string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired indica si la reserva ya venció en el instante dado.
func (r *StockReservation) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IsTerminal indica si la reserva está en un estado final.
func (r *StockReservation) IsTerminal() bool {
	return r.Status != ReservationStatusPending
}
