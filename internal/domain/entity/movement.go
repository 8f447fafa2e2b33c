package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePURCHASE              = "PURCHASE"
	MovementTypeSALE                  = "SALE"
	MovementTypeTransferIn            = "TRANSFER_IN"
	MovementTypeTransferOut           = "TRANSFER_OUT"
	MovementTypeADJUSTMENT            = "ADJUSTMENT"
	MovementTypeProductionConsumption = "PRODUCTION_CONSUMPTION"
)

// StockMovement representa una entrada inmutable del libro de movimientos.
// Quantity es el delta firmado aplicado a OnHand; la suma de deltas de un
// inventario hasta un instante T debe coincidir con su OnHand en T.
type StockMovement struct {
	ID          string
	InventoryID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	Reference   string          // correlaciona pares (ej. id de traslado) u orden
	Description string
	CreatedAt   time.Time
	CreatedBy   string // UserID que ejecutó la operación
}

// IsDecrement indica si el tipo de movimiento resta stock.
func IsDecrement(movementType string) bool {
	switch movementType {
	case MovementTypeSALE, MovementTypeTransferOut, MovementTypeProductionConsumption:
		return true
	}
	return false
}

// ValidMovementType valida que el tipo pertenezca al catálogo de movimientos.
func ValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypePURCHASE, MovementTypeSALE, MovementTypeTransferIn,
		MovementTypeTransferOut, MovementTypeADJUSTMENT, MovementTypeProductionConsumption:
		return true
	}
	return false
}
