package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia de reservas de stock (DIP).
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.StockReservation) error
	GetByID(ctx context.Context, id string) (*entity.StockReservation, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockReservation, error)

	// SumActive suma la cantidad de reservas PENDING no vencidas de un inventario
	// en el instante dado. Es la base del cálculo de disponible.
	SumActive(ctx context.Context, inventoryID string, now time.Time) (decimal.Decimal, error)

	// Transition cambia el estado solo si el actual coincide con from (transición
	// guardada). Devuelve false si la fila no estaba en from; así la carrera entre
	// el barrido de expiración y confirm/cancel la gana quien escribe primero.
	Transition(ctx context.Context, id, from, to string, now time.Time) (bool, error)

	// ExpireDue marca EXPIRED toda reserva PENDING ya vencida. Devuelve cuántas expiró.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
