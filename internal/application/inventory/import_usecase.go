package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ImportUseCase carga masiva de inventario: valida referencias de producto fila a
// fila y hace upsert por fila. A diferencia de record() y transfer(), la carga es
// deliberadamente no atómica en conjunto: los errores se reportan por fila y las
// filas válidas entran igual.
type ImportUseCase struct {
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *ImportUseCase {
	return &ImportUseCase{invRepo: invRepo, productRepo: productRepo, storeRepo: storeRepo}
}

// Import valida la tienda y cada fila (SKU contra catálogo, cantidades), arma los
// registros y delega en BatchUpsert. Devuelve siempre el resumen estructurado.
func (uc *ImportUseCase) Import(ctx context.Context, in dto.ImportRequest) (*dto.ImportSummary, error) {
	if in.StoreID == "" || len(in.Rows) == 0 {
		return nil, domain.ErrInvalidInput
	}
	store, err := uc.storeRepo.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	summary := &dto.ImportSummary{Failed: []dto.ImportRowError{}}
	now := time.Now()
	var records []*entity.InventoryRecord
	var recordRows []int

	for i, row := range in.Rows {
		if err := validateImportRow(row); err != nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Row: i, Error: err.Error()})
			continue
		}
		product, err := uc.productRepo.GetBySKU(ctx, row.SKU)
		if err != nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Row: i, Error: err.Error()})
			continue
		}
		if product == nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Row: i, Error: fmt.Sprintf("producto no encontrado: %s", row.SKU)})
			continue
		}
		records = append(records, &entity.InventoryRecord{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			StoreID:         in.StoreID,
			OnHand:          row.Quantity,
			MinimumStock:    row.MinimumStock,
			MaximumStock:    row.MaximumStock,
			ReorderPoint:    row.ReorderPoint,
			ReorderQuantity: row.ReorderQuantity,
			Status:          entity.InventoryStatusActive,
			Location:        row.Location,
			ExpiryDate:      row.ExpiryDate,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		recordRows = append(recordRows, i)
	}

	uc.batchUpsert(ctx, records, recordRows, summary)
	return summary, nil
}

// batchUpsert aplica el upsert fila a fila acumulando éxitos y fallos en el resumen.
func (uc *ImportUseCase) batchUpsert(ctx context.Context, records []*entity.InventoryRecord, rows []int, summary *dto.ImportSummary) {
	for i, rec := range records {
		if err := uc.invRepo.Upsert(ctx, rec); err != nil {
			summary.Failed = append(summary.Failed, dto.ImportRowError{Row: rows[i], Error: err.Error()})
			continue
		}
		summary.Succeeded++
	}
}

func validateImportRow(row dto.ImportRow) error {
	if row.ParseError != "" {
		return errors.New(row.ParseError)
	}
	if row.SKU == "" {
		return fmt.Errorf("sku requerido")
	}
	if row.Quantity.LessThan(decimal.Zero) {
		return fmt.Errorf("cantidad negativa")
	}
	if row.ReorderPoint.LessThan(decimal.Zero) || row.MinimumStock.LessThan(decimal.Zero) {
		return fmt.Errorf("umbral negativo")
	}
	if row.MaximumStock != nil && row.MaximumStock.LessThan(decimal.Zero) {
		return fmt.Errorf("stock máximo negativo")
	}
	return nil
}
