package entity

import "time"

// Product representa un producto o SKU del catálogo (multi-tienda).
// El stock por tienda vive en InventoryRecord, nunca aquí.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
