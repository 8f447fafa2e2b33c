package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest body para POST /api/reservations.
type CreateReservationRequest struct {
	InventoryID string          `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	OrderID     string          `json:"order_id,omitempty"`
}

// ConfirmReservationRequest body opcional para confirmar: permite registrar la
// salida como consumo de producción en lugar de venta.
type ConfirmReservationRequest struct {
	AsProductionConsumption bool `json:"as_production_consumption,omitempty"`
}

// ReservationResponse representa una reserva en respuestas HTTP.
type ReservationResponse struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	OrderID     string          `json:"order_id,omitempty"`
	Status      string          `json:"status"`
	ExpiresAt   time.Time       `json:"expires_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
