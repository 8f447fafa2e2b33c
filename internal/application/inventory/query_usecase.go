package inventory

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// QueryUseCase listados de inventario con filtros explícitos y paginación.
type QueryUseCase struct {
	invRepo repository.InventoryRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(invRepo repository.InventoryRepository) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo}
}

// List aplica los filtros reconocidos (con sus valores por defecto) y devuelve
// la página solicitada junto con el total.
func (uc *QueryUseCase) List(ctx context.Context, in dto.InventoryQueryRequest) (*dto.InventoryListResponse, error) {
	filter := repository.InventoryFilter{
		Search:             in.Search,
		StoreID:            in.StoreID,
		Status:             in.Status,
		LowStock:           in.LowStock,
		ExpiringWithinDays: in.ExpiringWithinDays,
		Page:               in.Page,
		Limit:              in.Limit,
		SortBy:             in.SortBy,
		SortOrder:          in.SortOrder,
	}
	filter.Normalize()

	records, total, err := uc.invRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, *toInventoryResponse(rec))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: filter.Page, Limit: filter.Limit, Total: total},
	}, nil
}

// GetByID devuelve un registro de inventario; ErrNotFound si no existe.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(rec), nil
}

func toInventoryResponse(rec *entity.InventoryRecord) *dto.InventoryResponse {
	if rec == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:              rec.ID,
		ProductID:       rec.ProductID,
		StoreID:         rec.StoreID,
		OnHand:          rec.OnHand,
		MinimumStock:    rec.MinimumStock,
		MaximumStock:    rec.MaximumStock,
		ReorderPoint:    rec.ReorderPoint,
		ReorderQuantity: rec.ReorderQuantity,
		Status:          rec.Status,
		Location:        rec.Location,
		ExpiryDate:      rec.ExpiryDate,
		UpdatedAt:       rec.UpdatedAt,
	}
}
