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

// DefaultReservationTTL vigencia por defecto de una reserva.
const DefaultReservationTTL = 30 * time.Minute

// ReservationUseCase gestiona retenciones temporales contra el stock disponible:
// crear, confirmar (la retención se vuelve movimiento del libro), cancelar y expirar.
// disponible = OnHand − Σ(cantidad de reservas PENDING no vencidas).
type ReservationUseCase struct {
	txRunner TxRunner
	resRepo  repository.ReservationRepository
	ttl      time.Duration
}

// NewReservationUseCase construye el caso de uso. ttl <= 0 usa el valor por defecto.
func NewReservationUseCase(txRunner TxRunner, resRepo repository.ReservationRepository, ttl time.Duration) *ReservationUseCase {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}
	return &ReservationUseCase{txRunner: txRunner, resRepo: resRepo, ttl: ttl}
}

// Create retiene cantidad contra el stock disponible de un inventario. La lectura
// del disponible y la inserción de la reserva van en una sola transacción con la
// fila de inventario bloqueada; sin eso, dos llamadas concurrentes podrían
// sobrevender en conjunto.
func (uc *ReservationUseCase) Create(ctx context.Context, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if in.InventoryID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	reservation := &entity.StockReservation{
		ID:          uuid.New().String(),
		InventoryID: in.InventoryID,
		Quantity:    in.Quantity,
		OrderID:     in.OrderID,
		Status:      entity.ReservationStatusPending,
		ExpiresAt:   now.Add(uc.ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.MovementRepository,
		resRepo repository.ReservationRepository,
		_ repository.TransferRepository,
	) error {
		// El FOR UPDATE serializa contra confirmaciones y traslados del mismo inventario
		rec, err := invRepo.GetByIDForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		reserved, err := resRepo.SumActive(ctx, in.InventoryID, now)
		if err != nil {
			return err
		}
		available := rec.OnHand.Sub(reserved)
		if in.Quantity.GreaterThan(available) {
			return domain.ErrInsufficientStock
		}
		return resRepo.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(reservation), nil
}

// Confirm convierte una reserva PENDING no vencida en un movimiento de salida
// (SALE, o PRODUCTION_CONSUMPTION si asProduction) y descuenta el OnHand.
// Una reserva ya vencida se marca EXPIRED y la confirmación falla con ErrInvalidState.
func (uc *ReservationUseCase) Confirm(ctx context.Context, userID, reservationID string, asProduction bool) (*dto.ReservationResponse, error) {
	if reservationID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var confirmed *entity.StockReservation

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		resRepo repository.ReservationRepository,
		_ repository.TransferRepository,
	) error {
		res, err := resRepo.GetByIDForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.Status != entity.ReservationStatusPending {
			return domain.ErrInvalidState
		}
		if res.IsExpired(now) {
			// Expiración perezosa: se materializa aquí si el barrido no llegó antes
			_, err := resRepo.Transition(ctx, res.ID, entity.ReservationStatusPending, entity.ReservationStatusExpired, now)
			if err != nil {
				return err
			}
			return domain.ErrInvalidState
		}

		rec, err := invRepo.GetByIDForUpdate(ctx, res.InventoryID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		newQty := rec.OnHand.Sub(res.Quantity)
		if newQty.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}

		ok, err := resRepo.Transition(ctx, res.ID, entity.ReservationStatusPending, entity.ReservationStatusConfirmed, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}
		if err := invRepo.UpdateQuantity(ctx, rec.ID, newQty); err != nil {
			return err
		}

		movementType := entity.MovementTypeSALE
		if asProduction {
			movementType = entity.MovementTypeProductionConsumption
		}
		reference := res.OrderID
		if reference == "" {
			reference = res.ID
		}
		if err := movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			InventoryID: res.InventoryID,
			Type:        movementType,
			Quantity:    res.Quantity.Neg(),
			Reference:   reference,
			Description: "confirmación de reserva",
			CreatedAt:   now,
			CreatedBy:   userID,
		}); err != nil {
			return err
		}

		res.Status = entity.ReservationStatusConfirmed
		res.UpdatedAt = now
		confirmed = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(confirmed), nil
}

// Cancel marca la reserva CANCELLED sin efecto en el libro. Idempotente: cancelar
// una reserva ya cancelada no hace nada; cancelar una CONFIRMED o EXPIRED falla
// con ErrInvalidState.
func (uc *ReservationUseCase) Cancel(ctx context.Context, reservationID string) (*dto.ReservationResponse, error) {
	if reservationID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var cancelled *entity.StockReservation

	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.MovementRepository,
		resRepo repository.ReservationRepository,
		_ repository.TransferRepository,
	) error {
		res, err := resRepo.GetByIDForUpdate(ctx, reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		switch res.Status {
		case entity.ReservationStatusCancelled:
			cancelled = res
			return nil
		case entity.ReservationStatusPending:
			if _, err := resRepo.Transition(ctx, res.ID, entity.ReservationStatusPending, entity.ReservationStatusCancelled, now); err != nil {
				return err
			}
			res.Status = entity.ReservationStatusCancelled
			res.UpdatedAt = now
			cancelled = res
			return nil
		default:
			return domain.ErrInvalidState
		}
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(cancelled), nil
}

// ExpireDue marca EXPIRED toda reserva PENDING ya vencida (barrido periódico).
// Idempotente y segura frente a confirm/cancel concurrentes: la transición está
// guardada por estado, quien escribe primero gana.
func (uc *ReservationUseCase) ExpireDue(ctx context.Context) (int64, error) {
	return uc.resRepo.ExpireDue(ctx, time.Now())
}

func toReservationResponse(r *entity.StockReservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:          r.ID,
		InventoryID: r.InventoryID,
		Quantity:    r.Quantity,
		OrderID:     r.OrderID,
		Status:      r.Status,
		ExpiresAt:   r.ExpiresAt,
		CreatedAt:   r.CreatedAt,
	}
}
