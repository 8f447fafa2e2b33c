package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow fila de importación masiva de inventario. El SKU se resuelve contra
// el catálogo de productos; la tienda viene en el request, no por fila.
type ImportRow struct {
	SKU             string           `json:"sku"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinimumStock    decimal.Decimal  `json:"minimum_stock"`
	MaximumStock    *decimal.Decimal `json:"maximum_stock,omitempty"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	Location        string           `json:"location,omitempty"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`

	// ParseError lo fija el decodificador CSV cuando un campo numérico de la
	// fila es ilegible; la fila se reporta como fallida en el resumen.
	ParseError string `json:"-"`
}

// ImportRequest body para POST /api/inventory/import.
type ImportRequest struct {
	StoreID string      `json:"store_id"`
	Rows    []ImportRow `json:"rows"`
}

// ImportRowError error asociado a una fila concreta de la importación.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportSummary resumen estructurado de la importación: cuántas filas entraron
// y el detalle de las que fallaron. Nunca todo-o-nada.
type ImportSummary struct {
	Succeeded int              `json:"succeeded"`
	Failed    []ImportRowError `json:"failed"`
}
