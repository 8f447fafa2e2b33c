package dto

import "github.com/shopspring/decimal"

// TransferRequest body para POST /api/transfers.
// TwoPhase=true crea la solicitud en PENDING a la espera de approve/reject.
type TransferRequest struct {
	SourceStoreID string          `json:"source_store_id"`
	DestStoreID   string          `json:"dest_store_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	TwoPhase      bool            `json:"two_phase,omitempty"`
}

// TransferResponse resultado de un traslado.
type TransferResponse struct {
	TransferID           string             `json:"transfer_id"`
	Status               string             `json:"status"`
	SourceInventory      *InventoryResponse `json:"source_inventory,omitempty"`
	DestinationInventory *InventoryResponse `json:"destination_inventory,omitempty"`
}
