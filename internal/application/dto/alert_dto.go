package dto

import "github.com/shopspring/decimal"

// AlertDTO alerta de stock derivada de un registro de inventario.
type AlertDTO struct {
	InventoryID  string          `json:"inventory_id"`
	ProductID    string          `json:"product_id"`
	StoreID      string          `json:"store_id"`
	Severity     string          `json:"severity"` // HIGH | MEDIUM | EXCESS
	OnHand       decimal.Decimal `json:"on_hand"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// AlertListResponse respuesta de GET /api/alerts.
type AlertListResponse struct {
	Total  int        `json:"total"`
	Alerts []AlertDTO `json:"alerts"`
}
