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

// TransferUseCase orquesta traslados atómicos de stock entre dos tiendas:
// débito en origen, crédito en destino y dos movimientos del libro compartiendo
// el ID del traslado como referencia, todo en una transacción. Soporta el flujo
// inmediato y el de dos fases (solicitud PENDING → approve/reject).
type TransferUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	transferRepo repository.TransferRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	transferRepo repository.TransferRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		transferRepo: transferRepo,
	}
}

// Transfer valida catálogo y ejecuta el traslado. Con TwoPhase la solicitud queda
// en PENDING sin tocar stock hasta Approve.
func (uc *TransferUseCase) Transfer(ctx context.Context, userID string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.ProductID == "" || in.SourceStoreID == "" || in.DestStoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceStoreID == in.DestStoreID || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar que producto y tiendas existan
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	source, err := uc.storeRepo.GetByID(ctx, in.SourceStoreID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.storeRepo.GetByID(ctx, in.DestStoreID)
	if err != nil {
		return nil, err
	}
	if source == nil || dest == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SourceStoreID: in.SourceStoreID,
		DestStoreID:   in.DestStoreID,
		Quantity:      in.Quantity,
		Status:        entity.TransferStatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     userID,
	}

	if in.TwoPhase {
		if err := uc.transferRepo.Create(ctx, transfer); err != nil {
			return nil, err
		}
		return &dto.TransferResponse{TransferID: transfer.ID, Status: transfer.Status}, nil
	}

	var sourceInv, destInv *entity.InventoryRecord
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		_ repository.ReservationRepository,
		transferRepo repository.TransferRepository,
	) error {
		transfer.Status = entity.TransferStatusCompleted
		if err := transferRepo.Create(ctx, transfer); err != nil {
			return err
		}
		sourceInv, destInv = nil, nil
		var moveErr error
		sourceInv, destInv, moveErr = uc.move(ctx, invRepo, movRepo, transfer, now)
		return moveErr
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferResponse{
		TransferID:           transfer.ID,
		Status:               transfer.Status,
		SourceInventory:      toInventoryResponse(sourceInv),
		DestinationInventory: toInventoryResponse(destInv),
	}, nil
}

// Approve ejecuta el movimiento atómico de un traslado PENDING (flujo dos fases).
func (uc *TransferUseCase) Approve(ctx context.Context, userID, transferID string) (*dto.TransferResponse, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var (
		transfer           *entity.Transfer
		sourceInv, destInv *entity.InventoryRecord
	)
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		_ repository.ReservationRepository,
		transferRepo repository.TransferRepository,
	) error {
		tr, err := transferRepo.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		if tr.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		ok, err := transferRepo.Transition(ctx, tr.ID, entity.TransferStatusPending, entity.TransferStatusCompleted, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		tr.Status = entity.TransferStatusCompleted
		tr.UpdatedAt = now
		// Los movimientos quedan atribuidos a quien aprueba, no a quien solicitó
		moveTr := *tr
		moveTr.CreatedBy = userID
		sourceInv, destInv, err = uc.move(ctx, invRepo, movRepo, &moveTr, now)
		if err != nil {
			return err
		}
		transfer = tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferResponse{
		TransferID:           transfer.ID,
		Status:               transfer.Status,
		SourceInventory:      toInventoryResponse(sourceInv),
		DestinationInventory: toInventoryResponse(destInv),
	}, nil
}

// Reject marca CANCELLED una solicitud PENDING sin efecto en stock. Idempotente
// sobre una solicitud ya cancelada.
func (uc *TransferUseCase) Reject(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var transfer *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.MovementRepository,
		_ repository.ReservationRepository,
		transferRepo repository.TransferRepository,
	) error {
		tr, err := transferRepo.GetByIDForUpdate(ctx, transferID)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		switch tr.Status {
		case entity.TransferStatusCancelled:
			transfer = tr
			return nil
		case entity.TransferStatusPending:
			if _, err := transferRepo.Transition(ctx, tr.ID, entity.TransferStatusPending, entity.TransferStatusCancelled, now); err != nil {
				return err
			}
			tr.Status = entity.TransferStatusCancelled
			tr.UpdatedAt = now
			transfer = tr
			return nil
		default:
			return domain.ErrInvalidState
		}
	})
	if err != nil {
		return nil, err
	}
	return &dto.TransferResponse{TransferID: transfer.ID, Status: transfer.Status}, nil
}

// move aplica el par débito/crédito dentro de la transacción del caller.
// El destino se asegura con un upsert de fila en cero (ON CONFLICT DO NOTHING) y
// ambas filas se bloquean en un orden global fijo (lexicográfico por tienda) para
// no interbloquearse con un traslado concurrente en sentido contrario.
func (uc *TransferUseCase) move(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	tr *entity.Transfer,
	now time.Time,
) (*entity.InventoryRecord, *entity.InventoryRecord, error) {
	source, err := invRepo.GetByProductAndStore(ctx, tr.ProductID, tr.SourceStoreID)
	if err != nil {
		return nil, nil, err
	}
	if source == nil {
		return nil, nil, domain.ErrNotFound
	}

	if err := invRepo.EnsureExists(ctx, &entity.InventoryRecord{
		ID:        uuid.New().String(),
		ProductID: tr.ProductID,
		StoreID:   tr.DestStoreID,
		OnHand:    decimal.Zero,
		Status:    entity.InventoryStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return nil, nil, err
	}

	// Orden global fijo de bloqueo
	firstStore, secondStore := tr.SourceStoreID, tr.DestStoreID
	if secondStore < firstStore {
		firstStore, secondStore = secondStore, firstStore
	}
	first, err := invRepo.GetByProductAndStoreForUpdate(ctx, tr.ProductID, firstStore)
	if err != nil {
		return nil, nil, err
	}
	second, err := invRepo.GetByProductAndStoreForUpdate(ctx, tr.ProductID, secondStore)
	if err != nil {
		return nil, nil, err
	}
	if first == nil || second == nil {
		return nil, nil, domain.ErrNotFound
	}

	sourceRec, destRec := first, second
	if first.StoreID != tr.SourceStoreID {
		sourceRec, destRec = second, first
	}

	if sourceRec.OnHand.LessThan(tr.Quantity) {
		return nil, nil, domain.ErrInsufficientStock
	}
	sourceRec.OnHand = sourceRec.OnHand.Sub(tr.Quantity)
	destRec.OnHand = destRec.OnHand.Add(tr.Quantity)
	if err := invRepo.UpdateQuantity(ctx, sourceRec.ID, sourceRec.OnHand); err != nil {
		return nil, nil, err
	}
	if err := invRepo.UpdateQuantity(ctx, destRec.ID, destRec.OnHand); err != nil {
		return nil, nil, err
	}

	// Par de movimientos con la misma referencia (ID del traslado)
	if err := movRepo.Create(ctx, &entity.StockMovement{
		ID:          uuid.New().String(),
		InventoryID: sourceRec.ID,
		Type:        entity.MovementTypeTransferOut,
		Quantity:    tr.Quantity.Neg(),
		Reference:   tr.ID,
		Description: tr.Notes,
		CreatedAt:   now,
		CreatedBy:   tr.CreatedBy,
	}); err != nil {
		return nil, nil, err
	}
	if err := movRepo.Create(ctx, &entity.StockMovement{
		ID:          uuid.New().String(),
		InventoryID: destRec.ID,
		Type:        entity.MovementTypeTransferIn,
		Quantity:    tr.Quantity,
		Reference:   tr.ID,
		Description: tr.Notes,
		CreatedAt:   now,
		CreatedBy:   tr.CreatedBy,
	}); err != nil {
		return nil, nil, err
	}
	return sourceRec, destRec, nil
}
