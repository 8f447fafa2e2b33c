package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL.
// La tabla stock_reservations está indexada por (inventory_id, status, expires_at)
// para que el cálculo de disponible sea barato.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una reserva nueva.
func (r *ReservationRepo) Create(ctx context.Context, reservation *entity.StockReservation) error {
	query := `
		INSERT INTO stock_reservations (id, inventory_id, quantity, order_id, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	orderID := (*string)(nil)
	if reservation.OrderID != "" {
		orderID = &reservation.OrderID
	}
	_, err := r.q.Exec(ctx, query,
		reservation.ID, reservation.InventoryID, reservation.Quantity, orderID,
		reservation.Status, reservation.ExpiresAt, reservation.CreatedAt, reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.StockReservation, error) {
	query := `
		SELECT id, inventory_id, quantity, order_id, status, expires_at, created_at, updated_at
		FROM stock_reservations WHERE id = $1`
	return scanReservation(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate obtiene la reserva y bloquea la fila (SELECT FOR UPDATE).
func (r *ReservationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockReservation, error) {
	query := `
		SELECT id, inventory_id, quantity, order_id, status, expires_at, created_at, updated_at
		FROM stock_reservations WHERE id = $1 FOR UPDATE`
	return scanReservation(r.q.QueryRow(ctx, query, id))
}

// SumActive suma la cantidad de reservas PENDING no vencidas de un inventario.
// El predicado de vencimiento excluye las expiradas aunque el barrido no las
// haya marcado todavía.
func (r *ReservationRepo) SumActive(ctx context.Context, inventoryID string, now time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_reservations
		WHERE inventory_id = $1 AND status = $2 AND expires_at > $3`
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, query, inventoryID, entity.ReservationStatusPending, now).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active reservations: %w", err)
	}
	return sum, nil
}

// Transition cambia el estado solo si el actual coincide con from. Devuelve false
// si otra escritura llegó primero (guardia de transición).
func (r *ReservationRepo) Transition(ctx context.Context, id, from, to string, now time.Time) (bool, error) {
	query := `UPDATE stock_reservations SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, from, to, now)
	if err != nil {
		return false, fmt.Errorf("transition reservation: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ExpireDue marca EXPIRED toda reserva PENDING ya vencida.
func (r *ReservationRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE stock_reservations SET status = $2, updated_at = $1
		WHERE status = $3 AND expires_at <= $1`
	cmd, err := r.q.Exec(ctx, query, now, entity.ReservationStatusExpired, entity.ReservationStatusPending)
	if err != nil {
		return 0, fmt.Errorf("expire due reservations: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanReservation(row pgx.Row) (*entity.StockReservation, error) {
	var res entity.StockReservation
	var orderID *string
	err := row.Scan(&res.ID, &res.InventoryID, &res.Quantity, &orderID,
		&res.Status, &res.ExpiresAt, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan reservation: %w", err)
	}
	if orderID != nil {
		res.OrderID = *orderID
	}
	return &res, nil
}
