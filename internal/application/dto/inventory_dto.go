package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements.
// Quantity es positiva; el signo del delta lo determina el tipo, salvo ADJUSTMENT
// que acepta cantidad firmada.
type RecordMovementRequest struct {
	InventoryID string          `json:"inventory_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
}

// MovementResponse representa un movimiento del libro en respuestas HTTP.
type MovementResponse struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CreatedBy   string          `json:"created_by,omitempty"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// InventoryQueryRequest filtros del listado de inventario. Todos opcionales;
// los valores por defecto se documentan en repository.InventoryFilter.
type InventoryQueryRequest struct {
	Search             string `query:"search"`
	StoreID            string `query:"store_id"`
	Status             string `query:"status"`
	LowStock           bool   `query:"low_stock"`
	ExpiringWithinDays int    `query:"expiring_within_days"`
	Page               int    `query:"page"`
	Limit              int    `query:"limit"`
	SortBy             string `query:"sort_by"`
	SortOrder          string `query:"sort_order"`
}

// InventoryResponse representa un registro de inventario en respuestas HTTP.
type InventoryResponse struct {
	ID              string           `json:"id"`
	ProductID       string           `json:"product_id"`
	StoreID         string           `json:"store_id"`
	OnHand          decimal.Decimal  `json:"on_hand"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    *decimal.Decimal `json:"maximum_stock,omitempty"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	Status          string           `json:"status"`
	Location        string           `json:"location,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// InventoryListResponse listado paginado de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
