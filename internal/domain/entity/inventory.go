package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de inventario.
const (
	InventoryStatusActive       = "ACTIVE"
	InventoryStatusInactive     = "INACTIVE"
	InventoryStatusDiscontinued = "DISCONTINUED"
)

// InventoryRecord representa el stock actual de un producto en una tienda.
// Identidad única por (ProductID, StoreID). OnHand nunca puede quedar negativo;
// solo se muta a través del libro de movimientos o de un traslado entre tiendas.
type InventoryRecord struct {
	ID              string
	ProductID       string
	StoreID         string
	OnHand          decimal.Decimal
	MinimumStock    decimal.Decimal
	MaximumStock    *decimal.Decimal // nil = sin tope de exceso
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	Status          string
	Location        string // pasillo/estante dentro de la tienda
	ExpiryDate      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
