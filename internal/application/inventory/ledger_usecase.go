package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// LedgerUseCase registra movimientos en el libro de stock y mantiene el OnHand
// materializado consistente con él. Cada registro bloquea la fila de inventario
// (SELECT FOR UPDATE), aplica el delta y agrega el movimiento en una transacción.
type LedgerUseCase struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository
	movRepo  repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, invRepo repository.InventoryRepository, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, invRepo: invRepo, movRepo: movRepo}
}

// signedDelta normaliza el signo según el tipo: las salidas (SALE, TRANSFER_OUT,
// PRODUCTION_CONSUMPTION) restan, las entradas suman. ADJUSTMENT respeta el signo
// que trae la cantidad.
func signedDelta(movementType string, quantity decimal.Decimal) decimal.Decimal {
	if movementType == entity.MovementTypeADJUSTMENT {
		return quantity
	}
	if entity.IsDecrement(movementType) {
		return quantity.Abs().Neg()
	}
	return quantity.Abs()
}

// RecordMovement valida la entrada, bloquea la fila de inventario, aplica el delta
// y persiste el movimiento. Falla con ErrInsufficientStock si el OnHand resultante
// quedaría negativo; nunca deja un movimiento sin su delta aplicado.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.InventoryID == "" || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeADJUSTMENT && in.Quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	delta := signedDelta(in.Type, in.Quantity)
	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		InventoryID: in.InventoryID,
		Type:        in.Type,
		Quantity:    delta,
		Reference:   in.Reference,
		Description: in.Description,
		CreatedAt:   now,
		CreatedBy:   userID,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		_ repository.ReservationRepository,
		_ repository.TransferRepository,
	) error {
		// Bloquea la fila de inventario para serializar lecturas/escrituras concurrentes
		rec, err := invRepo.GetByIDForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		newQty := rec.OnHand.Add(delta)
		if newQty.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		if err := invRepo.UpdateQuantity(ctx, rec.ID, newQty); err != nil {
			return err
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// GetHistory devuelve el historial paginado de movimientos de un inventario,
// más recientes primero.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, inventoryID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if inventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	rec, err := uc.invRepo.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	movements, err := uc.movRepo.ListByInventory(ctx, inventoryID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByInventory(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		InventoryID: m.InventoryID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}
